// Package input cleans submitted sentences before they reach the parser.
package input

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxSize is 4KB, far above any sentence a student would type.
const DefaultMaxSize = 4096

var (
	ErrTooLarge    = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8 = errors.New("input contains invalid UTF-8 sequences")
)

// Sanitize enforces a size limit (in bytes, 0 means DefaultMaxSize),
// validates UTF-8 and strips control characters.
// Tabs and line breaks become spaces so that pasted text stays one line.
func Sanitize(s string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxSize
	}

	// 1. Enforce Size Limit
	if len(s) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrTooLarge, len(s), limit)
	}

	// 2. Validate UTF-8
	if !utf8.ValidString(s) {
		return "", ErrInvalidUTF8
	}

	// 3. Strip Control Characters
	// Fast path: if no control chars, return as is.
	if strings.IndexFunc(s, unicode.IsControl) < 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			b.WriteByte(' ')
		case !unicode.IsControl(r):
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}
