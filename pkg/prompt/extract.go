package prompt

import (
	"strings"
	"unicode/utf8"
)

const (
	subjectLimit   = 30
	sceneLimit     = 50
	minNounLength  = 3
	fallbackScene  = "detailed environment with natural elements"
	sceneMarker    = "in"
	elementsPrompt = "detailed textures, realistic materials, proper scale, atmospheric perspective"
)

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "but": {}, "with": {}, "from": {},
	"to": {}, "at": {}, "by": {}, "for": {}, "in": {}, "on": {},
}

// looksLikeNoun is a length and stopword filter, nothing more. Stopwords match
// case-sensitively.
func looksLikeNoun(word string) bool {
	if utf8.RuneCountInString(word) <= minNounLength {
		return false
	}
	_, stop := stopwords[word]
	return !stop
}

// ExtractSubject collects noun-looking words, split on single spaces, until
// the collected text grows past 30 characters. The length check runs after
// each append, so the result may overrun the limit by one word.
func ExtractSubject(text string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Split(text, " ") {
		if !looksLikeNoun(word) {
			continue
		}
		b.WriteString(word)
		b.WriteByte(' ')
		n += utf8.RuneCountInString(word) + 1
		if n > subjectLimit {
			break
		}
	}
	return trimControl(b.String())
}

// ExtractScene returns the text from the first "in" onwards, at most 50
// characters. The match is a plain substring search, so "painting" counts.
func ExtractScene(text string) string {
	idx := strings.Index(text, sceneMarker)
	if idx < 0 {
		return fallbackScene
	}
	return truncateRunes(text[idx:], sceneLimit)
}

// ExtractElements ignores its input.
func ExtractElements(string) string {
	return elementsPrompt
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// trimControl strips leading and trailing spaces and ASCII control
// characters, leaving other Unicode whitespace alone.
func trimControl(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}
