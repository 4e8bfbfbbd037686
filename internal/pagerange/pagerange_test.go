// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pagerange

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		pageCount int
		want      PageRange
	}{
		{
			name:      "single pages",
			input:     "3,7",
			pageCount: 10,
			want:      PageRange{2, 6},
		},
		{
			name:      "simple range",
			input:     "1-5",
			pageCount: 10,
			want:      PageRange{0, 1, 2, 3, 4},
		},
		{
			name:      "mixed ranges and singles",
			input:     "1-3,6,9-12",
			pageCount: 15,
			want:      PageRange{0, 1, 2, 5, 8, 9, 10, 11},
		},
		{
			name:      "empty string selects all pages",
			input:     "",
			pageCount: 5,
			want:      PageRange{0, 1, 2, 3, 4},
		},
		{
			name:      "blank string selects all pages",
			input:     "   ",
			pageCount: 3,
			want:      PageRange{0, 1, 2},
		},
		{
			name:      "whitespace around tokens",
			input:     " 2 , 4 - 5 ",
			pageCount: 10,
			want:      PageRange{1, 3, 4},
		},
		{
			name:      "overlapping tokens deduplicate",
			input:     "1-4,3-6,4",
			pageCount: 10,
			want:      PageRange{0, 1, 2, 3, 4, 5},
		},
		{
			name:      "order independent of input",
			input:     "9,1-2,5",
			pageCount: 10,
			want:      PageRange{0, 1, 4, 8},
		},
		{
			name:      "single page range",
			input:     "4-4",
			pageCount: 10,
			want:      PageRange{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, tt.pageCount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		pageCount int
	}{
		{"missing end bound", "5-", 10},
		{"missing start bound", "-5", 10},
		{"start exceeds end", "7-3", 10},
		{"non-numeric token", "abc", 10},
		{"non-numeric bound", "2-x", 10},
		{"empty token between commas", "1,,3", 10},
		{"trailing comma", "1,", 10},
		{"double dash", "3--5", 10},
		{"decimal number", "1.5", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, tt.pageCount)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParse_OutOfRange(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		pageCount int
	}{
		{"single page past end", "11", 10},
		{"range end past end", "8-12", 10},
		{"zero page", "0", 10},
		{"zero range start", "0-3", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, tt.pageCount)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestParse_ErrorNamesToken(t *testing.T) {
	_, err := Parse("1,being,3", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"being"`)
}

func TestParse_EmptyDocument(t *testing.T) {
	_, err := Parse("1", 0)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformed))
}
