package analyze

import (
	"strings"
	"unicode/utf8"

	"github.com/animelens/animelens/internal/jlpt"
)

// DefaultVocabLimit caps how many vocabulary entries one sentence reports.
const DefaultVocabLimit = 10

// Annotator produces the linguistic breakdown of a sentence. It holds only
// immutable rule tables, so one instance serves any number of concurrent
// callers.
type Annotator struct {
	tables     *jlpt.Tables
	vocabLimit int
}

type Option func(*Annotator)

// WithVocabLimit overrides the vocabulary cap.
func WithVocabLimit(limit int) Option {
	return func(a *Annotator) {
		if limit > 0 {
			a.vocabLimit = limit
		}
	}
}

func NewAnnotator(tables *jlpt.Tables, opts ...Option) *Annotator {
	a := &Annotator{
		tables:     tables,
		vocabLimit: DefaultVocabLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Annotate analyzes one sentence. Pass the tokens of a morphological
// tokenizer when available; with an empty token slice the annotator falls
// back to regex word extraction. Annotate never fails: missing dictionary
// entries and missing tokens degrade to placeholder output.
func (a *Annotator) Annotate(text string, tokens []Token) SentenceAnalysis {
	candidates := a.vocabCandidates(text, tokens)

	infos := make([]jlpt.VocabInfo, len(candidates))
	known := make([]bool, len(candidates))
	for i, c := range candidates {
		if info, ok := a.tables.LookupVocab(c.word); ok {
			infos[i], known[i] = info, true
		} else if info, ok := a.tables.LookupVocab(c.base); ok {
			infos[i], known[i] = info, true
		}
	}

	level := a.classify(text, infos, known)

	vocabulary := make([]VocabularyEntry, 0, len(candidates))
	for i, c := range candidates {
		entry := VocabularyEntry{Word: c.word, BaseForm: c.base}
		if known[i] {
			entry.Reading = infos[i].Reading
			entry.Meaning = infos[i].Meaning
			entry.Level = infos[i].Level
		} else {
			// Placeholder for a dictionary miss. A pure-kana word reads as
			// itself; anything with kanji needs a real lookup.
			entry.Reading = c.word
			if !IsKana(c.word) {
				entry.Reading = UnknownReading
			}
			entry.Meaning = UnknownMeaning
			entry.Level = level
		}
		vocabulary = append(vocabulary, entry)
	}

	if tokens == nil {
		tokens = []Token{}
	}
	return SentenceAnalysis{
		OriginalText:   text,
		Tokens:         tokens,
		Level:          level,
		GrammarMatches: a.detectGrammar(text),
		Vocabulary:     vocabulary,
	}
}

type candidate struct {
	word string
	base string
}

// contentPOS are the part-of-speech categories kept for vocabulary:
// nouns, verbs, adjectives, adjectival nouns, adverbs. Particles and
// auxiliaries never match these prefixes.
var contentPOS = []string{"名詞", "動詞", "形容詞", "形状詞", "副詞"}

func isContentWord(pos string) bool {
	for _, p := range contentPOS {
		if strings.HasPrefix(pos, p) {
			return true
		}
	}
	return false
}

// vocabCandidates picks the words worth reporting, first-seen order, capped
// at the vocabulary limit.
func (a *Annotator) vocabCandidates(text string, tokens []Token) []candidate {
	var candidates []candidate

	if len(tokens) > 0 {
		seen := make(map[string]struct{})
		for _, tok := range tokens {
			if !isContentWord(tok.PartOfSpeech) {
				continue
			}
			if _, ok := seen[tok.Surface]; ok {
				continue
			}
			seen[tok.Surface] = struct{}{}
			base := tok.BaseForm
			if base == "" {
				base = tok.Surface
			}
			candidates = append(candidates, candidate{word: tok.Surface, base: base})
			if len(candidates) == a.vocabLimit {
				break
			}
		}
		return candidates
	}

	for _, word := range Segment(text) {
		candidates = append(candidates, candidate{word: word, base: word})
		if len(candidates) == a.vocabLimit {
			break
		}
	}
	return candidates
}

// classify assigns the sentence level. Recognized vocabulary decides it
// (hardest word wins); only when nothing was recognized does the length
// heuristic apply, so short unknown sentences still get an answer.
func (a *Annotator) classify(text string, infos []jlpt.VocabInfo, known []bool) jlpt.Level {
	level := jlpt.N5
	recognized := false
	for i, info := range infos {
		if known[i] {
			recognized = true
			level = jlpt.Harder(level, info.Level)
		}
	}
	if recognized {
		return level
	}

	length := utf8.RuneCountInString(text)
	switch {
	case length > 25 && containsKanji(text):
		return jlpt.N2
	case length > 20:
		return jlpt.N3
	case length > 12:
		return jlpt.N4
	default:
		return jlpt.N5
	}
}

func containsKanji(text string) bool {
	for _, r := range text {
		if r >= 0x4E00 && r <= 0x9FAF {
			return true
		}
	}
	return false
}

// simpleSentenceMatch is synthesized when no rule fires, so that a sentence
// never reports zero grammar patterns.
var simpleSentenceMatch = GrammarMatch{
	Pattern:     "Phrase simple",
	Description: "Structure de phrase déclarative simple.",
	Level:       jlpt.N5,
	Example:     "これは本です (Ceci est un livre)",
}

// detectGrammar walks the ordered rule list and emits one match per firing
// rule. Rules are not suppressed by specificity: a sentence containing
// ています also fires the plain ます rule, and both are reported.
func (a *Annotator) detectGrammar(text string) []GrammarMatch {
	var matches []GrammarMatch
	for _, rule := range a.tables.GrammarRules() {
		for _, sig := range rule.Signatures {
			if !strings.Contains(text, sig) {
				continue
			}
			matches = append(matches, GrammarMatch{
				Pattern:           rule.Pattern,
				Description:       rule.Description,
				Level:             rule.Level,
				Example:           rule.Example,
				ExampleInSentence: sig,
				PedagogicalNote:   rule.Note,
			})
			break
		}
	}
	if len(matches) == 0 {
		matches = append(matches, simpleSentenceMatch)
	}
	return matches
}
