package jlpt

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/animelens/animelens/pkg/log"
)

//go:embed data/*.json
var dataFiles embed.FS

// VocabInfo is the dictionary-side record for a known word.
type VocabInfo struct {
	Reading string `json:"reading"`
	Meaning string `json:"meaning"`
	Level   Level  `json:"jlptLevel"`
}

// GrammarRule is one entry of the ordered grammar pattern list. A rule
// fires when any of its literal signatures occurs in the sentence text.
// Rule order is the output order of matches, so the slice must never be
// reordered after load.
type GrammarRule struct {
	Pattern     string   `json:"pattern"`
	Signatures  []string `json:"signatures"`
	Description string   `json:"description"`
	Level       Level    `json:"jlptLevel"`
	Example     string   `json:"example"`
	Note        string   `json:"note,omitempty"`
}

// Tables holds the process-wide lookup data: the vocabulary table and the
// ordered grammar rule list. Built once, read-only afterward, so it is safe
// to share across goroutines without locking.
type Tables struct {
	vocab map[string]VocabInfo
	rules []GrammarRule
}

var (
	loadOnce sync.Once
	loaded   *Tables
	loadErr  error
)

// Load parses the embedded rule data. The result is cached; every call
// after the first returns the same immutable tables.
func Load() (*Tables, error) {
	loadOnce.Do(func() {
		loaded, loadErr = loadTables()
	})
	return loaded, loadErr
}

func loadTables() (*Tables, error) {
	type vocabEntry struct {
		Word string `json:"word"`
		VocabInfo
	}

	raw, err := dataFiles.ReadFile("data/jlpt_vocab.json")
	if err != nil {
		return nil, fmt.Errorf("read vocabulary data: %w", err)
	}
	var entries []vocabEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse vocabulary data: %w", err)
	}

	vocab := make(map[string]VocabInfo, len(entries))
	for _, e := range entries {
		if e.Word == "" || !e.Level.Valid() {
			return nil, fmt.Errorf("invalid vocabulary entry %q (level %q)", e.Word, e.Level)
		}
		vocab[e.Word] = e.VocabInfo
	}

	raw, err = dataFiles.ReadFile("data/grammar_patterns.json")
	if err != nil {
		return nil, fmt.Errorf("read grammar data: %w", err)
	}
	var rules []GrammarRule
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("parse grammar data: %w", err)
	}
	for _, r := range rules {
		if r.Pattern == "" || len(r.Signatures) == 0 || !r.Level.Valid() {
			return nil, fmt.Errorf("invalid grammar rule %q", r.Pattern)
		}
	}

	log.Info("Loaded %d vocabulary entries and %d grammar rules", len(vocab), len(rules))
	return &Tables{vocab: vocab, rules: rules}, nil
}

// LookupVocab returns the dictionary record for word, matching the exact
// surface or base form. No fuzzy matching.
func (t *Tables) LookupVocab(word string) (VocabInfo, bool) {
	info, ok := t.vocab[word]
	return info, ok
}

// GrammarRules returns the ordered rule list. Callers must not modify it.
func (t *Tables) GrammarRules() []GrammarRule {
	return t.rules
}

// VocabSize returns the number of vocabulary entries.
func (t *Tables) VocabSize() int {
	return len(t.vocab)
}

// particles are the case particles the fallback segmenter filters out when
// they surface as standalone single-character matches.
var particles = map[string]struct{}{
	"は": {}, "が": {}, "を": {}, "に": {}, "へ": {}, "で": {}, "と": {},
}

// IsParticle reports whether s is one of the common case particles.
func IsParticle(s string) bool {
	_, ok := particles[s]
	return ok
}
