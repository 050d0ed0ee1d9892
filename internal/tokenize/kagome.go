package tokenize

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/animelens/animelens/internal/analyze"
)

// KagomeTokenizer wraps the kagome morphological analyzer with the IPA
// dictionary. It is the real tokenizer collaborator; the annotator's
// fallback segmenter covers the case where this one is not wired in.
type KagomeTokenizer struct {
	t *tokenizer.Tokenizer
}

// New initializes a kagome tokenizer. The IPA dictionary is embedded in the
// dependency, so no external data files are needed.
func New() (*KagomeTokenizer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize kagome tokenizer: %w", err)
	}
	return &KagomeTokenizer{t: t}, nil
}

// Tokenize splits text into morphemes. Readings come back in katakana from
// the IPA dictionary and are converted to hiragana for learner display.
func (k *KagomeTokenizer) Tokenize(text string) ([]analyze.Token, error) {
	ktoks := k.t.Tokenize(text)

	out := make([]analyze.Token, 0, len(ktoks))
	for _, kt := range ktoks {
		pos := "不明"
		if p := kt.POS(); len(p) > 0 && p[0] != "*" {
			pos = strings.Join(trimPOS(p), ",")
		}

		reading := kt.Surface
		if r, ok := kt.Reading(); ok && r != "*" {
			reading = KatakanaToHiragana(r)
		}

		base := kt.Surface
		if b, ok := kt.BaseForm(); ok && b != "" && b != "*" {
			base = b
		}

		out = append(out, analyze.Token{
			Surface:      kt.Surface,
			Reading:      reading,
			PartOfSpeech: pos,
			BaseForm:     base,
		})
	}
	return out, nil
}

// trimPOS drops the unset "*" levels of the 4-level IPA part-of-speech.
func trimPOS(pos []string) []string {
	out := pos[:0:0]
	for _, p := range pos {
		if p == "*" {
			break
		}
		out = append(out, p)
	}
	return out
}

// KatakanaToHiragana converts katakana runes to their hiragana
// counterparts, leaving everything else untouched.
func KatakanaToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}
