package utils

import (
	"strings"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeKey lowercases and trims a supplier name for map lookups and
// run-merge comparisons.
func NormalizeKey(s string) string {
	return strings.ToLower(NormalizeSpace(s))
}

// SplitLines splits a multi-line cell into cleaned, non-empty lines.
// ORGA cells often stack several entries into one cell with embedded newlines.
func SplitLines(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, "\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// LineAt returns the idx-th cleaned line of a multi-line cell, or "" when the
// cell has fewer lines than the sibling cell that drove the fan-out.
func LineAt(raw string, idx int) string {
	lines := SplitLines(raw)
	if idx < 0 || idx >= len(lines) {
		return ""
	}
	return lines[idx]
}

// FirstLine keeps only the first line of a cell, trimmed. Supplier cells
// sometimes carry a second annotation line that must not leak into names.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// SafeFilenamePart strips characters that break Content-Disposition or the
// local filesystem, and caps length.
func SafeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", "&", "_")
	s = replacer.Replace(s)
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
