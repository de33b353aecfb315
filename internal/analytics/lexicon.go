package analytics

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"guestpulse/internal/domain"
)

// ParseWordList reads one word per line into lex with the given polarity.
// Blank lines and `;`-prefixed comment lines are skipped, words are
// case-normalized. The Hu-Liu opinion lexicon files ship in this format.
func ParseWordList(r io.Reader, p domain.Polarity, lex domain.Lexicon) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, ";") {
			continue
		}
		lex[strings.ToLower(w)] = p
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("parse %s word list: %w", p, err)
	}
	return nil
}

// NewLexicon builds a lexicon from a positive and a negative word list.
// A word present in both lists keeps the negative polarity (last write wins,
// matching the load order).
func NewLexicon(positive, negative io.Reader) (domain.Lexicon, error) {
	lex := make(domain.Lexicon, 8192)
	if err := ParseWordList(positive, domain.Positive, lex); err != nil {
		return nil, err
	}
	if err := ParseWordList(negative, domain.Negative, lex); err != nil {
		return nil, err
	}
	return lex, nil
}
