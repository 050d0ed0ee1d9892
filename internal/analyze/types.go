package analyze

import "github.com/animelens/animelens/internal/jlpt"

// Token is one morpheme of a sentence, as produced by a morphological
// tokenizer. Consumed read-only.
type Token struct {
	Surface      string `json:"surface"`
	Reading      string `json:"reading"`
	PartOfSpeech string `json:"partOfSpeech"`
	BaseForm     string `json:"baseForm"`
}

// Tokenizer splits raw Japanese text into morphemes. The annotator works
// without one; callers then get the regex-based fallback extraction.
type Tokenizer interface {
	Tokenize(text string) ([]Token, error)
}

// GrammarMatch is one grammar rule detected in a sentence.
type GrammarMatch struct {
	Pattern           string     `json:"pattern"`
	Description       string     `json:"description"`
	Level             jlpt.Level `json:"jlptLevel"`
	Example           string     `json:"example"`
	ExampleInSentence string     `json:"exampleInSentence,omitempty"`
	PedagogicalNote   string     `json:"pedagogicalNote,omitempty"`
}

// VocabularyEntry is one salient word of a sentence, either resolved from
// the vocabulary table or synthesized as a placeholder.
type VocabularyEntry struct {
	Word     string     `json:"word"`
	BaseForm string     `json:"baseForm"`
	Reading  string     `json:"reading"`
	Meaning  string     `json:"meaning"`
	Level    jlpt.Level `json:"jlptLevel"`
}

// Placeholder values for words the vocabulary table does not know. Kept as
// distinct sentinels so tests can tell a genuine dictionary miss from real
// dictionary content.
const (
	UnknownReading = "(lecture à vérifier)"
	UnknownMeaning = "(traduction à vérifier)"
)

// SentenceAnalysis is the complete linguistic breakdown of one sentence.
// Built once, never mutated afterward.
type SentenceAnalysis struct {
	OriginalText   string            `json:"originalText"`
	Tokens         []Token           `json:"tokens"`
	Level          jlpt.Level        `json:"jlptLevel"`
	GrammarMatches []GrammarMatch    `json:"grammarPatterns"`
	Vocabulary     []VocabularyEntry `json:"vocabulary"`
}
