package jlpt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelOrdering(t *testing.T) {
	for i := 1; i < len(Levels); i++ {
		assert.Greater(t, Levels[i].Rank(), Levels[i-1].Rank(),
			"%s must rank above %s", Levels[i], Levels[i-1])
	}
}

func TestHarder(t *testing.T) {
	assert.Equal(t, N2, Harder(N5, N2))
	assert.Equal(t, N2, Harder(N2, N5))
	assert.Equal(t, N1, Harder(N1, N1))
	assert.Equal(t, N3, Harder(N3, Level("bogus")))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, N1, ParseLevel("N1"))
	assert.Equal(t, N5, ParseLevel("N5"))
	assert.Equal(t, N5, ParseLevel(""))
	assert.Equal(t, N5, ParseLevel("N6"))
}

func TestValid(t *testing.T) {
	for _, l := range Levels {
		assert.True(t, l.Valid())
	}
	assert.False(t, Level("Unknown").Valid())
	assert.False(t, Level("").Valid())
}
