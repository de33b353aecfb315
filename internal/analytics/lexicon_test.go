package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"guestpulse/internal/domain"
)

func TestParseWordList_SkipsCommentsAndBlanks(t *testing.T) {
	in := strings.NewReader("; Hu-Liu style header\n;\n\ngreat\nSpotless\n  lovely  \n")
	lex := make(domain.Lexicon)
	require.NoError(t, ParseWordList(in, domain.Positive, lex))

	require.Len(t, lex, 3)
	require.Equal(t, domain.Positive, lex["great"])
	require.Equal(t, domain.Positive, lex["spotless"])
	require.Equal(t, domain.Positive, lex["lovely"])
}

func TestNewLexicon_NegativeWinsOnOverlap(t *testing.T) {
	lex, err := NewLexicon(
		strings.NewReader("great\ncheap\n"),
		strings.NewReader("dirty\ncheap\n"),
	)
	require.NoError(t, err)

	require.Equal(t, domain.Positive, lex["great"])
	require.Equal(t, domain.Negative, lex["dirty"])
	require.Equal(t, domain.Negative, lex["cheap"])
	require.Len(t, lex, 3)
}
