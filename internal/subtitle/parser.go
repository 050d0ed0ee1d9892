package subtitle

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/animelens/animelens/pkg/log"
)

// SRT timecode pair: 00:02:16,612 --> 00:02:19,376
var srtTimecodeRe = regexp.MustCompile(`(\d{2}:\d{2}:\d{2},\d{3}) --> (\d{2}:\d{2}:\d{2},\d{3})`)

var blockSplitRe = regexp.MustCompile(`\n\s*\n`)

// Parse converts raw subtitle content into ordered dialogue entries.
// Parsing is best-effort: subtitle files in the wild are frequently
// non-conformant, so malformed blocks are dropped instead of failing the
// whole file. Entries whose cleaned text has no Japanese content are
// filtered out as well. Parse never fails; unparseable content yields an
// empty slice.
func Parse(content string, format Format) []Entry {
	switch format {
	case FormatASS:
		return parseASS(content)
	default:
		return parseSRT(content)
	}
}

func parseSRT(content string) []Entry {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var entries []Entry
	for _, block := range blockSplitRe.Split(content, -1) {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 3 {
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			continue
		}
		times := srtTimecodeRe.FindStringSubmatch(lines[1])
		if times == nil {
			continue
		}

		text := Clean(strings.Join(lines[2:], "\n"))
		if !keepText(text) {
			continue
		}

		entries = append(entries, Entry{
			ID:        id,
			StartTime: times[1],
			EndTime:   times[2],
			Text:      text,
		})
	}

	log.Debug("Parsed %d SRT entries", len(entries))
	return entries
}

// assMetaFields is the number of reserved fields before the dialogue text:
// layer, start, end, style, actor, three margins, and effect. The text
// itself may legally contain commas, so it is everything after field 9.
const assMetaFields = 9

func parseASS(content string) []Entry {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var entries []Entry
	id := 0
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Dialogue:") {
			continue
		}

		parts := strings.SplitN(strings.TrimPrefix(line, "Dialogue:"), ",", assMetaFields+1)
		if len(parts) < assMetaFields+1 {
			continue
		}

		// Inline override blocks are presentation directives, not dialogue.
		raw := overrideRe.ReplaceAllString(parts[assMetaFields], "")
		text := Clean(raw)
		if !keepText(text) {
			continue
		}

		// ASS carries no per-line id; number retained lines from 1.
		id++
		entries = append(entries, Entry{
			ID:        id,
			StartTime: strings.TrimSpace(parts[1]),
			EndTime:   strings.TrimSpace(parts[2]),
			Text:      text,
		})
	}

	log.Debug("Parsed %d ASS entries", len(entries))
	return entries
}

// keepText is the shared drop policy: an entry survives only if its cleaned
// text is non-empty, not pure decoration, and actually Japanese.
func keepText(text string) bool {
	return text != "" && !IsOnlySymbols(text) && HasJapaneseContent(text)
}
