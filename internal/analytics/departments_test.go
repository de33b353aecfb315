package analytics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"guestpulse/internal/domain"
)

func TestAttribute_MultipleDepartments(t *testing.T) {
	m := DefaultKeywordMap()
	got := m.Attribute("The front desk staff were great and the room was spotless")
	require.Equal(t, []string{"Front Desk", "Housekeeping"}, got)
}

func TestAttribute_DedupWithinDepartment(t *testing.T) {
	m := DefaultKeywordMap()
	// check-in and check-out both belong to Front Desk; one mention only.
	got := m.Attribute("Smooth check-in and an even smoother check-out")
	require.Equal(t, []string{"Front Desk"}, got)
}

func TestAttribute_CaseInsensitive(t *testing.T) {
	m := DefaultKeywordMap()
	require.Equal(t, []string{"Spa & Leisure"}, m.Attribute("LOVED THE POOL"))
}

func TestAttribute_NoMatchAndEmpty(t *testing.T) {
	m := DefaultKeywordMap()
	require.Empty(t, m.Attribute("a perfectly ordinary stay"))
	require.Empty(t, m.Attribute(""))
}

func TestDepartmentRollup(t *testing.T) {
	m := DefaultKeywordMap()
	reviews := []domain.EnrichedReview{
		{
			Review:    domain.Review{ID: 1, OverallRating: 9, Text: "spotless room"},
			Sentiment: domain.Sentiment{Score: 2},
		},
		{
			Review:    domain.Review{ID: 2, OverallRating: 4, Text: "dirty towels"},
			Sentiment: domain.Sentiment{Score: -2},
		},
		{
			Review:    domain.Review{ID: 3, OverallRating: 10, Text: "wonderful pool"},
			Sentiment: domain.Sentiment{Score: 1},
		},
	}

	got := DepartmentRollup(m, reviews)
	require.Equal(t, []domain.DepartmentStats{
		{Department: "Spa & Leisure", Mentions: 1, AvgRating: 10, AvgSentiment: 1, PctPositive: 100},
		{Department: "Housekeeping", Mentions: 2, AvgRating: 6.5, AvgSentiment: 0, PctPositive: 50},
	}, got)
}

func TestDepartmentRollup_Empty(t *testing.T) {
	require.Empty(t, DepartmentRollup(DefaultKeywordMap(), nil))
}

func TestLoadKeywordMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.toml")
	content := `[departments]
"Front Desk" = ["Reception", " reception ", "concierge"]
Parking = ["valet", "garage"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := LoadKeywordMap(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Front Desk", "Parking"}, m.Departments())
	// normalized: lowercased, trimmed, de-duplicated
	require.Equal(t, []string{"reception", "concierge"}, m["Front Desk"])
	require.Equal(t, []string{"valet", "garage"}, m["Parking"])
}

func TestLoadKeywordMap_Errors(t *testing.T) {
	_, err := LoadKeywordMap(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.toml")
	require.NoError(t, os.WriteFile(empty, []byte(""), 0o644))
	_, err = LoadKeywordMap(empty)
	require.ErrorContains(t, err, "no departments")
}
