package analytics

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize_PunctuationAndCase(t *testing.T) {
	got := slices.Collect(Tokenize("Lovely stay!! Great pool, friendly staff."))
	require.Equal(t, []string{"lovely", "stay", "great", "pool", "friendly", "staff"}, got)
}

func TestTokenize_HyphensSplit(t *testing.T) {
	// "in" is a stop word, so check-in contributes only "check".
	got := slices.Collect(Tokenize("check-in was smooth"))
	require.Equal(t, []string{"check", "smooth"}, got)
}

func TestTokenize_DigitsKept(t *testing.T) {
	got := slices.Collect(Tokenize("room 101 on floor 3"))
	require.Equal(t, []string{"room", "101", "floor", "3"}, got)
}

func TestTokenize_StopWordsDropped(t *testing.T) {
	got := slices.Collect(Tokenize("the staff were very helpful and the view was amazing"))
	require.Equal(t, []string{"staff", "helpful", "view", "amazing"}, got)
}

func TestTokenize_EmptyText(t *testing.T) {
	require.Empty(t, slices.Collect(Tokenize("")))
	require.Empty(t, slices.Collect(Tokenize("  ... !!! ")))
}

func TestTokenize_Restartable(t *testing.T) {
	seq := Tokenize("great great room")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Equal(t, first, second)
	require.Equal(t, []string{"great", "great", "room"}, first)
}

func TestTokenize_EarlyStop(t *testing.T) {
	seq := Tokenize("one two three four")
	var got []string
	for tok := range seq {
		got = append(got, tok)
		if len(got) == 2 {
			break
		}
	}
	require.Len(t, got, 2)
}
