package jlpt

// Level is a JLPT proficiency level. N5 is the easiest, N1 the hardest.
type Level string

const (
	N5 Level = "N5"
	N4 Level = "N4"
	N3 Level = "N3"
	N2 Level = "N2"
	N1 Level = "N1"
)

// Levels lists all levels from easiest to hardest.
var Levels = []Level{N5, N4, N3, N2, N1}

var levelRanks = map[Level]int{
	N5: 1,
	N4: 2,
	N3: 3,
	N2: 4,
	N1: 5,
}

// Rank returns the difficulty rank of the level, 1 (N5) through 5 (N1).
// Unknown levels rank 0, below every valid level.
func (l Level) Rank() int {
	return levelRanks[l]
}

// Valid reports whether l is one of the five JLPT levels.
func (l Level) Valid() bool {
	_, ok := levelRanks[l]
	return ok
}

// Harder returns the harder of a and b.
func Harder(a, b Level) Level {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// ParseLevel maps a level string to a Level. Anything unrecognized
// falls back to N5 so that callers always get a usable level.
func ParseLevel(s string) Level {
	l := Level(s)
	if l.Valid() {
		return l
	}
	return N5
}
