// Package sanitize cleans caller-supplied parameters before they reach the
// query composer. Malformed input never errors; it degrades to empty.
package sanitize

import "strings"

// unsafe lists characters that would break the structured-query encoding
// (HTML/script delimiters, quotes, backslashes).
const unsafe = "<>\"'`\\"

// Clean strips unsafe and control characters from a string value and trims
// surrounding whitespace. Returns "" when nothing survives.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(unsafe, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Number reduces a string to a numeric literal: digits, an optional leading
// minus, and at most one decimal point. Anything without a digit reduces
// to "".
func Number(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	sawDigit := false
	sawDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			sawDigit = true
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		case r == '.' && !sawDot:
			sawDot = true
			b.WriteRune(r)
		}
	}
	if !sawDigit {
		return ""
	}
	return b.String()
}

// List comma-splits a parameter value and cleans each item. Empty items are
// dropped; an empty result slice is legal and means "no filter".
func List(s string) []string {
	return split(s, Clean)
}

// IDList comma-splits a parameter value into numeric items. Items that do
// not reduce to a number are dropped.
func IDList(s string) []string {
	return split(s, Number)
}

func split(s string, clean func(string) string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := clean(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
