package subtitle

import (
	"regexp"
	"strings"
)

// Cleaning is ordered: later steps assume the artifacts removed by earlier
// steps are gone. Changing the order changes output.
var (
	speakerLabelRe = regexp.MustCompile(`^(?:（[^）]*）|\([^)]*\))\s*`)
	noteLeadingRe  = regexp.MustCompile(`^[♪♫♬]+`)
	noteTrailingRe = regexp.MustCompile(`[♪♫♬]+$`)
	noteIsolatedRe = regexp.MustCompile(`\s(?:[♪♫♬]+\s+)+`)
	overrideRe     = regexp.MustCompile(`\{[^}]*\}`)
	htmlTagRe      = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe   = regexp.MustCompile(`[\s\x{3000}]+`)
)

// Clean normalizes raw dialogue text: speaker labels, decoration glyphs,
// markup, and whitespace are stripped. Pure and total; never fails.
func Clean(raw string) string {
	// A single leading speaker annotation like （教師） or (先生).
	text := speakerLabelRe.ReplaceAllString(raw, "")

	// Music notes acting as free-standing decoration. Consecutive isolated
	// runs go in one replacement so a shared separator is not consumed
	// twice. A note glued inside a word stays put.
	text = noteLeadingRe.ReplaceAllString(text, "")
	text = noteTrailingRe.ReplaceAllString(text, "")
	text = noteIsolatedRe.ReplaceAllString(text, " ")

	// ASS forced line breaks and leftover markup.
	text = strings.ReplaceAll(text, `\N`, " ")
	text = overrideRe.ReplaceAllString(text, "")
	text = htmlTagRe.ReplaceAllString(text, "")

	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

var symbolStripRe = regexp.MustCompile(`[♪♫♬〜～~\s.,!?。、]+`)

// IsOnlySymbols reports whether text carries no content beyond decoration
// glyphs, tildes, whitespace, and basic punctuation.
func IsOnlySymbols(text string) bool {
	return symbolStripRe.ReplaceAllString(text, "") == ""
}

// HasJapaneseContent reports whether text contains at least one hiragana,
// katakana, or CJK ideograph code point.
func HasJapaneseContent(text string) bool {
	for _, r := range text {
		if isJapaneseRune(r) {
			return true
		}
	}
	return false
}

func isJapaneseRune(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) || // hiragana
		(r >= 0x30A0 && r <= 0x30FF) || // katakana
		(r >= 0x4E00 && r <= 0x9FAF) // CJK ideographs
}
