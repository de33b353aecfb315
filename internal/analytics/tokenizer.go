package analytics

import (
	"iter"
	"unicode"
)

// Tokenize splits review text into a lazy, restartable sequence of lowercase
// word tokens. Any rune that is not a letter or digit is a delimiter, so
// punctuation is stripped and hyphenated compounds split into separate
// tokens. Stop words are dropped. Empty text yields an empty sequence.
func Tokenize(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		var word []rune
		flush := func() bool {
			if len(word) == 0 {
				return true
			}
			tok := string(word)
			word = word[:0]
			if isStopWord(tok) {
				return true
			}
			return yield(tok)
		}
		for _, r := range text {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				word = append(word, unicode.ToLower(r))
				continue
			}
			if !flush() {
				return
			}
		}
		flush()
	}
}
