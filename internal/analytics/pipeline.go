// Package analytics is the review analytics core: tokenization, lexicon
// sentiment scoring, department keyword attribution, NPS segmentation and
// rollups, and the wide/long rating reshapes. Every operation is a pure
// function over an immutable snapshot of the cleaned review table; the
// pipeline only parallelizes work that shares no state.
package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"guestpulse/internal/domain"
)

// Config carries the pipeline knobs.
type Config struct {
	Keywords KeywordMap // department keyword map; nil means the built-in map
	TopN     int        // size of the top-word tables; <= 0 means 15
	Workers  int        // sentiment scoring concurrency; <= 0 means 8
}

func (c Config) withDefaults() Config {
	if c.Keywords == nil {
		c.Keywords = DefaultKeywordMap()
	}
	if c.TopN <= 0 {
		c.TopN = 15
	}
	if c.Workers <= 0 {
		c.Workers = 8
	}
	return c
}

// Report is the full output of one analysis run: the enriched review table
// plus every aggregate table, each independently consumable downstream.
type Report struct {
	Run domain.RunInfo

	Reviews []domain.EnrichedReview

	TopPositive []domain.WordCount
	TopNegative []domain.WordCount

	Departments []domain.DepartmentStats

	NPS           domain.NPSRow
	NPSByMonth    []domain.MonthNPS
	NPSByTripType []domain.TripTypeNPS

	ResponseBuckets []domain.ResponseBucketStats

	RatingCells []domain.RatingCell
	RatingsWide WideTable
	RatingsLong []domain.RatingLongRow
}

// Run executes the whole pipeline over an already-cleaned review table.
// Sentiment scoring completes and is joined onto the table before any
// aggregate that reads the score (departments, response buckets) starts;
// the remaining aggregates fan out concurrently and are merged at the end.
func Run(ctx context.Context, cfg Config, reviews []domain.Review, lex domain.Lexicon) (Report, error) {
	cfg = cfg.withDefaults()
	start := time.Now()

	if err := ValidateReviews(reviews); err != nil {
		return Report{}, fmt.Errorf("validate reviews: %w", err)
	}

	// Stage 1: sentiment enrichment. Index-addressed writes, so no locking.
	enriched := make([]domain.EnrichedReview, len(reviews))
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup
	for i, r := range reviews {
		if err := sem.Acquire(ctx, 1); err != nil {
			return Report{}, err
		}
		wg.Add(1)
		go func(i int, r domain.Review) {
			defer wg.Done()
			defer sem.Release(1)
			if r.ResponseBucket == "" {
				r.ResponseBucket = ResponseBucket(r.ResponseTimeHours)
			}
			enriched[i] = EnrichReview(lex, r)
		}(i, r)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	// Stage 2: independent aggregates over the read-only enriched table.
	rep := Report{Reviews: enriched}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		rep.TopPositive = TopWords(lex, reviews, domain.Positive, cfg.TopN)
		return nil
	})
	g.Go(func() error {
		rep.TopNegative = TopWords(lex, reviews, domain.Negative, cfg.TopN)
		return nil
	})
	g.Go(func() error {
		rep.Departments = DepartmentRollup(cfg.Keywords, enriched)
		return nil
	})
	g.Go(func() error {
		var err error
		if rep.NPS, err = GlobalNPS(enriched); err != nil {
			return err
		}
		if rep.NPSByMonth, err = NPSByMonth(enriched); err != nil {
			return err
		}
		rep.NPSByTripType, err = NPSByTripType(enriched)
		return err
	})
	g.Go(func() error {
		rep.ResponseBuckets = ResponseBucketRollup(enriched)
		return nil
	})
	g.Go(func() error {
		rep.RatingCells = RatingCells(enriched)
		rep.RatingsWide = RatingsWide(rep.RatingCells)
		return nil
	})
	g.Go(func() error {
		rep.RatingsLong = MeltRatings(enriched)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	rep.Run = domain.RunInfo{
		ID:           uuid.NewString(),
		StartedAt:    start,
		Duration:     time.Since(start),
		Reviews:      len(reviews),
		LexiconWords: len(lex),
	}
	return rep, nil
}
