package client

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/unidoc/unioffice/document"

	"vouchergen/internal/domain"
	"vouchergen/internal/utils"
)

// Label patterns that introduce traveller names, in priority order. A
// generic "Name:" is deliberately absent: it matches company fields like
// "Firmen Name:".
var inlineNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Kundennamen?:\s*(.+)`),
	regexp.MustCompile(`(?i)Traveller\s*names?:\s*(.+)`),
	regexp.MustCompile(`(?i)Client\s*names?:\s*(.+)`),
	regexp.MustCompile(`(?i)Guest\s*names?:\s*(.+)`),
	regexp.MustCompile(`(?i)Reisende[nr]?:\s*(.+)`),
	regexp.MustCompile(`(?i)Gast(?:name)?:\s*(.+)`),
	regexp.MustCompile(`(?i)Teilnehmer:\s*(.+)`),
}

// The same labels standing alone on a line, with names on the lines below.
var headerNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^Kundennamen?:?\s*$`),
	regexp.MustCompile(`(?i)^Traveller\s*names?:?\s*$`),
	regexp.MustCompile(`(?i)^Client\s*names?:?\s*$`),
	regexp.MustCompile(`(?i)^Guest\s*names?:?\s*$`),
	regexp.MustCompile(`(?i)^Reisende[nr]?:?\s*$`),
	regexp.MustCompile(`(?i)^Teilnehmer:?\s*$`),
}

// Field labels that end a multi-line name block.
var sectionStopWords = []string{
	"firmen", "typ", "datum", "link", "b&b", "übernachtung",
	"geschäftsbedingungen", "storno", "einreise", "impf",
}

var (
	trailingAnnotation = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	titlePrefix        = regexp.MustCompile(`^(Herr|Frau|Mr\.?|Mrs\.?|Ms\.?|Dr\.?)\s+`)
	andSplitter        = regexp.MustCompile(`(?i)\s+and\s+`)
)

// ParseSingle extracts traveller names from a SINGLE confirmation .docx.
// Names come only from a labelled field in the document; a file without
// one fails with a ValidationError rather than guessing.
func ParseSingle(r io.ReaderAt, size int64) ([]string, error) {
	doc, err := document.Read(r, size)
	if err != nil {
		return nil, domain.ValidationError{Field: "client_file", Msg: "cannot read confirmation document", Err: err}
	}

	var paragraphs []string
	for _, p := range doc.Paragraphs() {
		var sb strings.Builder
		for _, run := range p.Runs() {
			sb.WriteString(run.Text())
		}
		paragraphs = append(paragraphs, strings.TrimSpace(sb.String()))
	}

	if names := namesFromParagraphs(paragraphs); len(names) > 0 {
		utils.LogEvent("", "client", "parse_single", "extracted "+strings.Join(names, ", "))
		return names, nil
	}

	return nil, domain.ValidationError{
		Field: "client_file",
		Msg:   "no traveller name field found (expected Kundennamen:, Traveller names:, or similar)",
	}
}

// ParseSingleFile is a convenience wrapper for callers holding a path.
func ParseSingleFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.InternalError{Msg: "open confirmation document", Err: err}
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, domain.InternalError{Msg: "stat confirmation document", Err: err}
	}
	return ParseSingle(f, st.Size())
}

func namesFromParagraphs(paragraphs []string) []string {
	for i, text := range paragraphs {
		if text == "" {
			continue
		}

		for _, pat := range inlineNamePatterns {
			m := pat.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			raw := strings.TrimSpace(m[1])
			if len(raw) < 3 || isAllDigits(raw) {
				continue
			}
			if names := validNames(splitNameString(raw)); len(names) > 0 {
				return names
			}
		}

		for _, pat := range headerNamePatterns {
			if !pat.MatchString(text) {
				continue
			}
			if names := namesBelowHeader(paragraphs, i); len(names) > 0 {
				return names
			}
		}
	}
	return nil
}

// namesBelowHeader collects name-shaped lines following a bare label until a
// blank line or the next labelled field.
func namesBelowHeader(paragraphs []string, headerIdx int) []string {
	var names []string
	limit := headerIdx + 10
	if limit > len(paragraphs) {
		limit = len(paragraphs)
	}

	for j := headerIdx + 1; j < limit; j++ {
		text := paragraphs[j]
		if text == "" {
			if len(names) > 0 {
				break
			}
			continue
		}
		if strings.Contains(text, ":") && containsStopWord(text) {
			break
		}
		if !looksLikeName(text) {
			continue
		}

		name := trailingAnnotation.ReplaceAllString(text, "")
		name = strings.TrimSpace(titlePrefix.ReplaceAllString(name, ""))
		if len(name) >= 2 {
			names = append(names, name)
		}
	}
	return names
}

func looksLikeName(text string) bool {
	for _, prefix := range []string{"Herr ", "Frau ", "Mr ", "Mrs ", "Ms ", "Dr "} {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	first := rune(text[0])
	return first >= 'A' && first <= 'Z' && len(strings.Fields(text)) >= 2
}

func containsStopWord(text string) bool {
	low := strings.ToLower(text)
	for _, kw := range sectionStopWords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

// splitNameString breaks a raw name field into individual travellers.
// "Thomas & Petra Thonhauser" expands the shared last name onto both.
func splitNameString(raw string) []string {
	if strings.Contains(raw, " & ") && strings.Count(raw, " ") <= 4 {
		parts := strings.SplitN(raw, " & ", 2)
		second := strings.Fields(strings.TrimSpace(parts[1]))
		if len(parts) == 2 && len(second) >= 2 {
			lastName := second[len(second)-1]
			first := strings.TrimSpace(parts[0])
			if !strings.Contains(first, lastName) {
				return []string{first + " " + lastName, strings.TrimSpace(parts[1])}
			}
		}
	}

	switch {
	case strings.Contains(raw, ", "):
		return trimAll(strings.Split(raw, ", "))
	case strings.Contains(raw, " & "):
		return trimAll(strings.Split(raw, " & "))
	case andSplitter.MatchString(raw):
		return trimAll(andSplitter.Split(raw, -1))
	default:
		return []string{strings.TrimSpace(raw)}
	}
}

func trimAll(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func validNames(names []string) []string {
	var out []string
	for _, n := range names {
		if len(strings.TrimSpace(n)) >= 2 {
			out = append(out, n)
		}
	}
	return out
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
