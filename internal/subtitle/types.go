package subtitle

// Format identifies a supported subtitle container format.
type Format string

const (
	FormatSRT Format = "srt"
	FormatASS Format = "ass"
)

// Entry is a single cleaned dialogue entry. IDs follow the source file and
// are not guaranteed unique or monotonic for malformed input.
type Entry struct {
	ID        int    `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Text      string `json:"text"`
}
