package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"guestpulse/internal/domain"
)

func TestPivotWider_ColumnUnionAndFill(t *testing.T) {
	cells := []Cell{
		{Row: "Suite", Col: "Q1", Value: 9.5},
		{Row: "Standard", Col: "Q2", Value: 7.0},
	}

	w := PivotWider(cells, 0)
	require.Equal(t, []string{"Q1", "Q2"}, w.Columns)
	require.Equal(t, []WideRow{
		{Key: "Standard", Values: []float64{0, 7.0}},
		{Key: "Suite", Values: []float64{9.5, 0}},
	}, w.Rows)
}

func TestPivotWider_Empty(t *testing.T) {
	w := PivotWider(nil, 0)
	require.Empty(t, w.Columns)
	require.Empty(t, w.Rows)
}

func TestPivotRoundTrip(t *testing.T) {
	cells := []Cell{
		{Row: "Deluxe", Col: "Q1", Value: 8.2},
		{Row: "Deluxe", Col: "Q3", Value: 8.9},
		{Row: "Standard", Col: "Q1", Value: 6.4},
	}

	back := PivotLonger(PivotWider(cells, -1), -1)
	require.ElementsMatch(t, cells, back)
}

func TestRatingCells_MeansAndOrder(t *testing.T) {
	mk := func(id int64, rating int, room, quarter string) domain.EnrichedReview {
		return domain.EnrichedReview{Review: domain.Review{
			ID: id, OverallRating: rating, RoomType: room, Quarter: quarter,
		}}
	}
	got := RatingCells([]domain.EnrichedReview{
		mk(1, 8, "Suite", "Q1"),
		mk(2, 10, "Suite", "Q1"),
		mk(3, 6, "Standard", "Q2"),
	})
	require.Equal(t, []domain.RatingCell{
		{RoomType: "Standard", Quarter: "Q2", AvgRating: 6},
		{RoomType: "Suite", Quarter: "Q1", AvgRating: 9},
	}, got)
}

func TestRatingsWide(t *testing.T) {
	w := RatingsWide([]domain.RatingCell{
		{RoomType: "Suite", Quarter: "Q1", AvgRating: 9},
		{RoomType: "Standard", Quarter: "Q2", AvgRating: 6},
	})
	require.Equal(t, []string{"Q1", "Q2"}, w.Columns)
	require.Equal(t, "Standard", w.Rows[0].Key)
	require.Equal(t, []float64{0, 6}, w.Rows[0].Values)
}

func TestMeltRatings(t *testing.T) {
	reviews := []domain.EnrichedReview{
		{Review: domain.Review{
			ID: 7, Cleanliness: 9, Service: 8, Location: 10, Facilities: 7, ValueForMoney: 6,
		}},
		{Review: domain.Review{
			ID: 8, Cleanliness: 5, Service: 5, Location: 5, Facilities: 5, ValueForMoney: 5,
		}},
	}

	got := MeltRatings(reviews)
	require.Len(t, got, 10)

	require.Equal(t, domain.RatingLongRow{ReviewID: 7, Category: "cleanliness", Label: "Cleanliness", Score: 9}, got[0])
	require.Equal(t, domain.RatingLongRow{ReviewID: 7, Category: "value_for_money", Label: "Value for Money", Score: 6}, got[4])
	require.Equal(t, domain.RatingLongRow{ReviewID: 8, Category: "service", Label: "Service", Score: 5}, got[6])
}

func TestMeltRatings_Empty(t *testing.T) {
	require.Empty(t, MeltRatings(nil))
}
