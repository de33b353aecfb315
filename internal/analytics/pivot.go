package analytics

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"guestpulse/internal/domain"
)

// Cell is one (row, column, value) triple of a long-form table.
type Cell struct {
	Row   string  `json:"row"`
	Col   string  `json:"col"`
	Value float64 `json:"value"`
}

// WideRow is one row of a wide table; Values aligns with WideTable.Columns.
type WideRow struct {
	Key    string    `json:"key"`
	Values []float64 `json:"values"`
}

// WideTable is the wide layout: one row per distinct row key, one column per
// distinct column value observed anywhere in the input.
type WideTable struct {
	Columns []string  `json:"columns"`
	Rows    []WideRow `json:"rows"`
}

// PivotWider reshapes long-form cells into a wide table. The column set is
// the union of column values across the whole input, not just those present
// for a given row, so combinations never observed come out as the fill
// value. Rows and columns are sorted for deterministic output.
func PivotWider(cells []Cell, fill float64) WideTable {
	colSet := make(map[string]struct{})
	rowSet := make(map[string]struct{})
	for _, c := range cells {
		colSet[c.Col] = struct{}{}
		rowSet[c.Row] = struct{}{}
	}

	cols := make([]string, 0, len(colSet))
	for c := range colSet {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	colIdx := make(map[string]int, len(cols))
	for i, c := range cols {
		colIdx[c] = i
	}

	keys := make([]string, 0, len(rowSet))
	for k := range rowSet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]WideRow, len(keys))
	rowIdx := make(map[string]int, len(keys))
	for i, k := range keys {
		vals := make([]float64, len(cols))
		for j := range vals {
			vals[j] = fill
		}
		rows[i] = WideRow{Key: k, Values: vals}
		rowIdx[k] = i
	}
	for _, c := range cells {
		rows[rowIdx[c.Row]].Values[colIdx[c.Col]] = c.Value
	}
	return WideTable{Columns: cols, Rows: rows}
}

// PivotLonger reshapes a wide table back to long-form cells, dropping cells
// still holding the fill value. Pivoting long -> wide -> long reproduces the
// original set of non-default triples.
func PivotLonger(w WideTable, fill float64) []Cell {
	var out []Cell
	for _, row := range w.Rows {
		for j, v := range row.Values {
			if v == fill {
				continue
			}
			out = append(out, Cell{Row: row.Key, Col: w.Columns[j], Value: v})
		}
	}
	return out
}

// RatingCells computes the mean overall rating per (room type, quarter)
// pair, in long form, sorted by room type then quarter.
func RatingCells(reviews []domain.EnrichedReview) []domain.RatingCell {
	type key struct{ room, quarter string }
	sums := make(map[key][]float64)
	for _, r := range reviews {
		k := key{r.RoomType, r.Quarter}
		sums[k] = append(sums[k], float64(r.OverallRating))
	}
	out := make([]domain.RatingCell, 0, len(sums))
	for k, ratings := range sums {
		out = append(out, domain.RatingCell{
			RoomType:  k.room,
			Quarter:   k.quarter,
			AvgRating: stat.Mean(ratings, nil),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RoomType != out[j].RoomType {
			return out[i].RoomType < out[j].RoomType
		}
		return out[i].Quarter < out[j].Quarter
	})
	return out
}

// RatingsWide lays rating cells out as rows = room type, columns = quarter,
// with 0 filling (room, quarter) combinations never observed.
func RatingsWide(cells []domain.RatingCell) WideTable {
	long := make([]Cell, len(cells))
	for i, c := range cells {
		long[i] = Cell{Row: c.RoomType, Col: c.Quarter, Value: c.AvgRating}
	}
	return PivotWider(long, 0)
}

// ratingPrefix is the naming convention shared by the designated rating
// columns of the tabular export; melting strips it from the category key.
const ratingPrefix = "rating_"

// ratingColumns lists the designated value columns in output order, with
// the human-readable label each melted category carries.
var ratingColumns = []struct {
	Column string
	Label  string
}{
	{ratingPrefix + "cleanliness", "Cleanliness"},
	{ratingPrefix + "service", "Service"},
	{ratingPrefix + "location", "Location"},
	{ratingPrefix + "facilities", "Facilities"},
	{ratingPrefix + "value_for_money", "Value for Money"},
}

func subRating(r domain.Review, column string) int {
	switch column {
	case ratingPrefix + "cleanliness":
		return r.Cleanliness
	case ratingPrefix + "service":
		return r.Service
	case ratingPrefix + "location":
		return r.Location
	case ratingPrefix + "facilities":
		return r.Facilities
	case ratingPrefix + "value_for_money":
		return r.ValueForMoney
	}
	return 0
}

// MeltRatings reshapes the review table long: one row per (review, rating
// category), category key stripped of the column prefix, label attached.
// Row count is always len(reviews) x len(ratingColumns).
func MeltRatings(reviews []domain.EnrichedReview) []domain.RatingLongRow {
	out := make([]domain.RatingLongRow, 0, len(reviews)*len(ratingColumns))
	for _, r := range reviews {
		for _, col := range ratingColumns {
			out = append(out, domain.RatingLongRow{
				ReviewID: r.ID,
				Category: strings.TrimPrefix(col.Column, ratingPrefix),
				Label:    col.Label,
				Score:    subRating(r.Review, col.Column),
			})
		}
	}
	return out
}
