package domain

import "time"

// RunInfo identifies one completed analysis run.
type RunInfo struct {
	ID           string
	StartedAt    time.Time
	Duration     time.Duration
	Reviews      int
	LexiconWords int
}

// WordCount is one row of a top-N word frequency table.
type WordCount struct {
	Word  string
	Count int
}

// DepartmentStats is the satisfaction rollup for one department.
type DepartmentStats struct {
	Department   string
	Mentions     int
	AvgRating    float64
	AvgSentiment float64
	PctPositive  float64 // share of mentioning reviews with sentiment score > 0
}

// NPSRow holds segment counts and the resulting score for one group.
type NPSRow struct {
	Reviews    int
	Promoters  int
	Passives   int
	Detractors int
	NPS        float64 // (promoters - detractors) / reviews * 100, one decimal
}

// MonthNPS is the NPS rollup for one calendar month.
type MonthNPS struct {
	Month     int
	MonthName string
	NPSRow
}

// TripTypeNPS is the NPS rollup for one trip type.
type TripTypeNPS struct {
	TripType string
	NPSRow
	AvgRating float64
}

// ResponseBucketStats is the rollup for one response-speed bucket.
type ResponseBucketStats struct {
	Bucket       string
	Reviews      int
	AvgRating    float64
	AvgSentiment float64
	PctPromoter  float64
}

// RatingCell is one cell of the room-type x quarter rating table, stored in
// long form; the wide layout is derived on read.
type RatingCell struct {
	RoomType  string
	Quarter   string
	AvgRating float64
}

// RatingLongRow is one row of the melted rating table: one review crossed
// with one rating category.
type RatingLongRow struct {
	ReviewID int64
	Category string // prefix-stripped column key, e.g. "cleanliness"
	Label    string // display label, e.g. "Cleanliness"
	Score    int
}
