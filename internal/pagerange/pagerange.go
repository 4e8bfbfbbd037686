// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagerange parses human-entered page range strings like
// "1-3,6,9-12" into ordered sets of zero-based page indices.
// Implements: prd002-selection.
package pagerange

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrMalformed reports a syntax violation in a range string: a non-numeric
// or empty token, a missing range bound, or a range whose start exceeds its
// end. The wrapped message names the offending token.
var ErrMalformed = errors.New("malformed page range")

// ErrOutOfRange reports a syntactically valid page number outside
// [1, pageCount].
var ErrOutOfRange = errors.New("page out of range")

// PageRange is a strictly ascending sequence of unique zero-based page
// indices. It is built once per request and must not be mutated afterwards.
type PageRange []int

// Parse converts a comma-separated range string into a PageRange. Tokens are
// 1-based single page numbers ("7") or inclusive ranges ("2-5"); whitespace
// around tokens is ignored; overlaps are deduplicated and the result is
// ascending regardless of token order. An empty or blank input selects every
// page. Parse is a pure function of (s, pageCount) and reports the first
// offending token it finds.
func Parse(s string, pageCount int) (PageRange, error) {
	if pageCount <= 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	if strings.TrimSpace(s) == "" {
		all := make(PageRange, pageCount)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	seen := make(map[int]bool)
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		first, last, err := parseToken(token, pageCount)
		if err != nil {
			return nil, err
		}
		for p := first; p <= last; p++ {
			seen[p-1] = true
		}
	}

	indices := make(PageRange, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices, nil
}

// parseToken resolves one token to an inclusive 1-based [first, last] span.
func parseToken(token string, pageCount int) (first, last int, err error) {
	if token == "" {
		return 0, 0, fmt.Errorf("%w: empty token", ErrMalformed)
	}

	if a, b, isRange := strings.Cut(token, "-"); isRange {
		first, err = parseBound(token, a, pageCount)
		if err != nil {
			return 0, 0, err
		}
		last, err = parseBound(token, b, pageCount)
		if err != nil {
			return 0, 0, err
		}
		if first > last {
			return 0, 0, fmt.Errorf("%w: start exceeds end in %q", ErrMalformed, token)
		}
		return first, last, nil
	}

	first, err = parseBound(token, token, pageCount)
	if err != nil {
		return 0, 0, err
	}
	return first, first, nil
}

// parseBound converts one 1-based page number and checks document bounds.
// token is the full token for error messages; bound is the number to parse.
func parseBound(token, bound string, pageCount int) (int, error) {
	bound = strings.TrimSpace(bound)
	if bound == "" {
		return 0, fmt.Errorf("%w: missing bound in %q", ErrMalformed, token)
	}
	for _, r := range bound {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q is not a page number", ErrMalformed, token)
		}
	}
	n, err := strconv.Atoi(bound)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a page number", ErrMalformed, token)
	}
	if n < 1 || n > pageCount {
		return 0, fmt.Errorf("%w: page %d (document has %d pages)", ErrOutOfRange, n, pageCount)
	}
	return n, nil
}
