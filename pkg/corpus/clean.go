package corpus

import (
	"regexp"
	"strings"
)

var (
	startMarkers = []string{
		"*** start of",
		"***start of",
		"*start of the project gutenberg",
		"start of the project gutenberg",
	}
	endMarkers = []string{
		"*** end of",
		"***end of",
		"*end of the project gutenberg",
		"end of the project gutenberg",
	}
	// startFallbacks are tried in order when no start marker is present.
	startFallbacks = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\*\*\*.*?\n\n`),
		regexp.MustCompile(`(?i)chapter [i1]\s*\n`),
		regexp.MustCompile(`(?i)chapter one\s*\n`),
	}
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	excessSpaces   = regexp.MustCompile(` +`)
	titleLine      = regexp.MustCompile(`(?m)^Title:[ \t]*(.+?)[ \t\r]*$`)
)

// StripBoilerplate removes the Project Gutenberg header and footer from text
// and squeezes runs of blank lines and spaces. The body starts after the line
// holding the first start marker found (or, failing that, after the first
// fallback pattern that matches) and ends before the line holding the last
// end marker. Text without markers is only squeezed.
func StripBoilerplate(text string) string {
	lower := asciiLower(text)

	start := -1
	for _, marker := range startMarkers {
		if idx := strings.Index(lower, marker); idx != -1 {
			start = indexFrom(text, '\n', idx)
			break
		}
	}
	if start == -1 {
		for _, pattern := range startFallbacks {
			if loc := pattern.FindStringIndex(text); loc != nil {
				start = loc[1]
				break
			}
		}
	}

	end := len(text)
	for _, marker := range endMarkers {
		if idx := strings.LastIndex(lower, marker); idx != -1 {
			end = strings.LastIndexByte(text[:idx], '\n')
			break
		}
	}

	if start != -1 && end > start {
		text = text[start:end]
	}

	text = excessNewlines.ReplaceAllString(text, "\n\n")
	text = excessSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ExtractTitle returns the value of the "Title:" header line of a Gutenberg
// text, or "" if there is none.
func ExtractTitle(text string) string {
	m := titleLine.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// asciiLower lowercases ASCII letters only, so byte offsets in the result
// line up with the input.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// indexFrom returns the index of the first c at or after from, or -1.
func indexFrom(s string, c byte, from int) int {
	i := strings.IndexByte(s[from:], c)
	if i == -1 {
		return -1
	}
	return from + i
}
