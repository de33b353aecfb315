package domain

// Review is one cleaned guest review as delivered by the ETL stage:
// de-duplicated, typed, with sub-ratings already imputed. The core never
// mutates it, only derives new fields.
type Review struct {
	ID            int64
	OverallRating int // 1..10

	// Sub-ratings, 1..10, non-null after imputation.
	Cleanliness   int
	Service       int
	Location      int
	Facilities    int
	ValueForMoney int

	Text string // free-text body, possibly empty

	TripType       string
	RoomType       string
	BookingChannel string
	LoyaltyTier    string

	Month     int // 1..12
	MonthName string
	Quarter   string // e.g. "Q1"

	ResponseTimeHours *float64 // nil when management never responded
	ResponseBucket    string   // pre-derived categorical, "" when not yet derived
}

// Sentiment is the per-review lexicon scoring result.
type Sentiment struct {
	PositiveWords int
	NegativeWords int
	Score         int // PositiveWords - NegativeWords
	Label         SentimentLabel
}

// EnrichedReview is a Review joined with its Sentiment.
type EnrichedReview struct {
	Review
	Sentiment
}
