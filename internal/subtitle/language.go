package subtitle

import (
	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// DetectLanguage guesses the dominant language of the parsed entries by
// majority vote over per-line detection.
func DetectLanguage(entries []Entry) language.Tag {
	if len(entries) == 0 {
		return language.Und
	}

	langMap := make(map[string]int)
	for _, entry := range entries {
		lang := whatlanggo.DetectLang(entry.Text).Iso6391()
		langMap[lang]++
	}

	var topLang string
	var topCount int
	for lang, count := range langMap {
		if count > topCount {
			topLang = lang
			topCount = count
		}
	}

	return language.All.Make(topLang)
}
