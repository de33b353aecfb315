package analytics

import (
	"iter"
	"sort"

	"guestpulse/internal/domain"
)

// ScoreReview counts tokens with each polarity and derives the aggregate
// score and label. Tokens absent from the lexicon are ignored. A pure
// function of the token multiset: order never affects the result, and an
// empty sequence yields the all-zero Neutral sentiment.
func ScoreReview(lex domain.Lexicon, tokens iter.Seq[string]) domain.Sentiment {
	var s domain.Sentiment
	for tok := range tokens {
		switch lex[tok] {
		case domain.Positive:
			s.PositiveWords++
		case domain.Negative:
			s.NegativeWords++
		}
	}
	s.Score = s.PositiveWords - s.NegativeWords
	s.Label = LabelFor(s.Score)
	return s
}

// LabelFor maps a sentiment score to its label. Scores in [-1, 1] are
// Neutral: the dead zone is deliberately wider than strict sign.
func LabelFor(score int) domain.SentimentLabel {
	switch {
	case score > 1:
		return domain.LabelPositive
	case score < -1:
		return domain.LabelNegative
	default:
		return domain.LabelNeutral
	}
}

// EnrichReview joins a review with its sentiment.
func EnrichReview(lex domain.Lexicon, r domain.Review) domain.EnrichedReview {
	return domain.EnrichedReview{
		Review:    r,
		Sentiment: ScoreReview(lex, Tokenize(r.Text)),
	}
}

// TopWords counts every lexicon-matched word of the given polarity across
// all reviews and returns the n most frequent. Ties are broken by first
// encounter in the scan (reviews in slice order, tokens in text order), so
// identical input always produces the identical list.
func TopWords(lex domain.Lexicon, reviews []domain.Review, p domain.Polarity, n int) []domain.WordCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	seq := 0
	for _, r := range reviews {
		for tok := range Tokenize(r.Text) {
			if lex[tok] != p {
				continue
			}
			if _, ok := counts[tok]; !ok {
				firstSeen[tok] = seq
				seq++
			}
			counts[tok]++
		}
	}

	out := make([]domain.WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, domain.WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return firstSeen[out[i].Word] < firstSeen[out[j].Word]
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
