package analyze

import (
	"regexp"

	"github.com/animelens/animelens/internal/jlpt"
)

// The fallback segmenter approximates word boundaries with script-run
// regexes when no morphological tokenizer is available. It is a degraded
// mode: conjugation handling is limited to "kanji stem plus trailing
// hiragana", which captures most inflected verbs and adjectives.
var segmentPatterns = []*regexp.Regexp{
	// kanji run with optional hiragana tail (conjugated stems)
	regexp.MustCompile(`[\x{4E00}-\x{9FAF}]+[\x{3040}-\x{309F}]*`),
	// hiragana runs of two or more
	regexp.MustCompile(`[\x{3040}-\x{309F}]{2,}`),
	// katakana runs of two or more
	regexp.MustCompile(`[\x{30A0}-\x{30FF}]{2,}`),
}

// Segment extracts candidate words from raw text, in pattern order,
// deduplicated, with standalone case particles dropped.
func Segment(text string) []string {
	var words []string
	seen := make(map[string]struct{})
	for _, re := range segmentPatterns {
		for _, match := range re.FindAllString(text, -1) {
			if jlpt.IsParticle(match) {
				continue
			}
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			words = append(words, match)
		}
	}
	return words
}

// IsKana reports whether every rune of s is hiragana or katakana.
func IsKana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF)) {
			return false
		}
	}
	return true
}
