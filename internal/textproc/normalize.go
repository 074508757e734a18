// Package textproc normalizes journal text before classification.
package textproc

import (
	"regexp"
	"strings"
)

// Filler tokens removed during normalization. Matched per token after
// stripping punctuation.
var fillerWords = map[string]bool{
	"um": true, "uh": true, "er": true, "ah": true, "eh": true,
	"hmm": true, "hm": true, "like": true, "you know": true,
	"well": true, "so": true, "actually": true, "basically": true,
	"literally": true, "sort of": true, "kind of": true, "i mean": true,
	"you see": true, "right": true, "okay": true, "ok": true,
}

var (
	nonWordRe    = regexp.MustCompile(`[^\w]`)
	spaceRe      = regexp.MustCompile(`\s+`)
	punctSpaceRe = regexp.MustCompile(`\s+([,.!?;:])`)
	punctPairRe  = regexp.MustCompile(`([,.!?;:])\s*([,.!?;:])`)
)

// Normalize lower-cases the text, strips filler words, collapses runs of three
// or more identical characters to two, collapses whitespace, and removes
// whitespace before punctuation. Idempotent: Normalize(Normalize(s)) ==
// Normalize(s). Returns "" for empty or whitespace-only input.
func Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = CleanFillerWords(text)
	text = CollapseRepeatedChars(text)
	text = NormalizeSpaces(text)

	text = punctSpaceRe.ReplaceAllString(text, "$1")
	text = punctPairRe.ReplaceAllString(text, "$1$2")

	return text
}

// CleanFillerWords removes tokens whose punctuation-stripped form is a known
// filler word.
func CleanFillerWords(text string) string {
	words := strings.Fields(text)
	filtered := words[:0]
	for _, word := range words {
		clean := nonWordRe.ReplaceAllString(strings.ToLower(word), "")
		if !fillerWords[clean] {
			filtered = append(filtered, word)
		}
	}
	return strings.Join(filtered, " ")
}

// CollapseRepeatedChars reduces runs of 3+ identical characters to 2,
// e.g. "sooo" -> "soo".
func CollapseRepeatedChars(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run <= 2 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeSpaces collapses whitespace runs to a single space and trims the
// ends.
func NormalizeSpaces(text string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}
