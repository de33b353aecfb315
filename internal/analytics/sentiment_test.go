package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"guestpulse/internal/domain"
)

func testLexicon() domain.Lexicon {
	return domain.Lexicon{
		"great":    domain.Positive,
		"spotless": domain.Positive,
		"lovely":   domain.Positive,
		"friendly": domain.Positive,
		"awful":    domain.Negative,
		"dirty":    domain.Negative,
		"broken":   domain.Negative,
	}
}

func TestScoreReview(t *testing.T) {
	lex := testLexicon()
	cases := []struct {
		name  string
		text  string
		pos   int
		neg   int
		score int
		label domain.SentimentLabel
	}{
		{"two positive", "great room, spotless bathroom", 2, 0, 2, domain.LabelPositive},
		{"one positive is neutral", "great location", 1, 0, 1, domain.LabelNeutral},
		{"balanced", "great view but dirty floor", 1, 1, 0, domain.LabelNeutral},
		{"one negative is neutral", "dirty carpet", 0, 1, -1, domain.LabelNeutral},
		{"two negative", "awful service and dirty sheets", 0, 2, -2, domain.LabelNegative},
		{"no lexicon words", "we stayed three nights", 0, 0, 0, domain.LabelNeutral},
		{"empty text", "", 0, 0, 0, domain.LabelNeutral},
		{"repeated word counts each time", "great great great", 3, 0, 3, domain.LabelPositive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := ScoreReview(lex, Tokenize(tc.text))
			require.Equal(t, tc.pos, s.PositiveWords)
			require.Equal(t, tc.neg, s.NegativeWords)
			require.Equal(t, tc.score, s.Score)
			require.Equal(t, tc.label, s.Label)
		})
	}
}

func TestLabelFor_DeadZone(t *testing.T) {
	require.Equal(t, domain.LabelPositive, LabelFor(2))
	require.Equal(t, domain.LabelNeutral, LabelFor(1))
	require.Equal(t, domain.LabelNeutral, LabelFor(0))
	require.Equal(t, domain.LabelNeutral, LabelFor(-1))
	require.Equal(t, domain.LabelNegative, LabelFor(-2))
}

func TestTopWords_CountThenFirstSeen(t *testing.T) {
	lex := testLexicon()
	reviews := []domain.Review{
		{ID: 1, Text: "great stay, spotless room, great staff"},
		{ID: 2, Text: "lovely spotless lobby"},
		{ID: 3, Text: "lovely view"},
	}

	// great 2, spotless 2, lovely 2; tie broken by first encounter.
	got := TopWords(lex, reviews, domain.Positive, 10)
	require.Equal(t, []domain.WordCount{
		{Word: "great", Count: 2},
		{Word: "spotless", Count: 2},
		{Word: "lovely", Count: 2},
	}, got)
}

func TestTopWords_TruncatesAndFiltersPolarity(t *testing.T) {
	lex := testLexicon()
	reviews := []domain.Review{
		{ID: 1, Text: "great great spotless but dirty dirty dirty"},
	}

	pos := TopWords(lex, reviews, domain.Positive, 1)
	require.Equal(t, []domain.WordCount{{Word: "great", Count: 2}}, pos)

	neg := TopWords(lex, reviews, domain.Negative, 10)
	require.Equal(t, []domain.WordCount{{Word: "dirty", Count: 3}}, neg)
}

func TestTopWords_Empty(t *testing.T) {
	require.Empty(t, TopWords(testLexicon(), nil, domain.Positive, 5))
}
