package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	words := Segment("私は日本語を勉強しています")
	// Kanji runs with hiragana tails come first, then hiragana runs.
	assert.Contains(t, words, "勉強しています")
	assert.Contains(t, words, "日本語を")
	assert.NotContains(t, words, "は")
	assert.NotContains(t, words, "を")
}

func TestSegmentKatakana(t *testing.T) {
	words := Segment("コーヒーとケーキ")
	assert.Contains(t, words, "コーヒー")
	assert.Contains(t, words, "ケーキ")
	assert.NotContains(t, words, "と")
}

func TestSegmentDeduplicates(t *testing.T) {
	words := Segment("猫と猫")
	count := 0
	for _, w := range words {
		if w == "猫" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSegmentEmpty(t *testing.T) {
	assert.Empty(t, Segment(""))
	assert.Empty(t, Segment("English only"))
}

func TestIsKana(t *testing.T) {
	assert.True(t, IsKana("ひらがな"))
	assert.True(t, IsKana("カタカナ"))
	assert.True(t, IsKana("まぜカナ"))
	assert.False(t, IsKana("漢字"))
	assert.False(t, IsKana("かん字"))
	assert.False(t, IsKana("abc"))
	assert.False(t, IsKana(""))
}
