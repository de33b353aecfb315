package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by read paths when the requested row set does not
// exist (no runs yet, unknown run ID).
var ErrNotFound = errors.New("domain: not found")

type AnalyticsRepository interface {
	// Write paths
	SaveRun(ctx context.Context, run RunInfo) error
	SaveEnrichedReviews(ctx context.Context, runID string, rs []EnrichedReview) error
	SaveWordCounts(ctx context.Context, runID string, polarity Polarity, ws []WordCount) error
	SaveDepartmentStats(ctx context.Context, runID string, ds []DepartmentStats) error
	SaveNPS(ctx context.Context, runID string, global NPSRow, byMonth []MonthNPS, byTrip []TripTypeNPS) error
	SaveResponseBuckets(ctx context.Context, runID string, bs []ResponseBucketStats) error
	SaveRatingCells(ctx context.Context, runID string, cs []RatingCell) error
	SaveRatingLong(ctx context.Context, runID string, rows []RatingLongRow) error

	// Read paths
	ListCleanReviews(ctx context.Context) ([]Review, error)
	LatestRun(ctx context.Context) (RunInfo, error)
	GetNPS(ctx context.Context, runID string) (NPSRow, error)
	ListMonthNPS(ctx context.Context, runID string) ([]MonthNPS, error)
	ListTripTypeNPS(ctx context.Context, runID string) ([]TripTypeNPS, error)
	ListDepartmentStats(ctx context.Context, runID string) ([]DepartmentStats, error)
	ListWordCounts(ctx context.Context, runID string, polarity Polarity, limit int) ([]WordCount, error)
	ListResponseBuckets(ctx context.Context, runID string) ([]ResponseBucketStats, error)
	ListRatingCells(ctx context.Context, runID string) ([]RatingCell, error)
	ListRatingLong(ctx context.Context, runID string, limit int) ([]RatingLongRow, error)
}

// LexiconSource loads the word->polarity lexicon once at startup.
type LexiconSource interface {
	Load(ctx context.Context) (Lexicon, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
