package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"guestpulse/internal/adapters/observability"
	"guestpulse/internal/analytics"
	"guestpulse/internal/domain"
)

// AnalysisService runs the whole analytics pipeline over the cleaned review
// table and persists the resulting report tables.
type AnalysisService struct {
	repo    domain.AnalyticsRepository
	lexicon domain.LexiconSource
	cache   domain.Cache
	cfg     analytics.Config
}

func NewAnalysisService(r domain.AnalyticsRepository, l domain.LexiconSource, cache domain.Cache, cfg analytics.Config) *AnalysisService {
	return &AnalysisService{repo: r, lexicon: l, cache: cache, cfg: cfg}
}

// Run executes one analysis: load reviews, load the lexicon, compute, persist.
// The fresh run only becomes visible to readers once everything is saved.
func (s *AnalysisService) Run(ctx context.Context) (domain.RunInfo, error) {
	t := time.Now()
	reviews, err := s.repo.ListCleanReviews(ctx)
	if err != nil {
		return domain.RunInfo{}, fmt.Errorf("list clean reviews: %w", err)
	}
	observability.ObserveStage("load", time.Since(t))
	log.Info().Int("reviews", len(reviews)).Msg("cleaned reviews loaded")

	t = time.Now()
	lex, err := s.lexicon.Load(ctx)
	if err != nil {
		return domain.RunInfo{}, fmt.Errorf("load lexicon: %w", err)
	}
	observability.ObserveStage("lexicon", time.Since(t))
	log.Info().Int("words", len(lex)).Msg("lexicon loaded")

	t = time.Now()
	rep, err := analytics.Run(ctx, s.cfg, reviews, lex)
	observability.ObserveStage("analyze", time.Since(t))
	observability.ObserveRun(err, time.Since(t), len(reviews))
	if err != nil {
		return domain.RunInfo{}, fmt.Errorf("run pipeline: %w", err)
	}

	t = time.Now()
	if err := s.persist(ctx, rep); err != nil {
		return domain.RunInfo{}, err
	}
	observability.ObserveStage("persist", time.Since(t))

	// Readers resolve tables through the latest run; dropping the cached run
	// pointer is enough to make them pick up the new tables.
	if s.cache != nil {
		_ = s.cache.Del(ctx, latestRunKey)
	}

	log.Info().
		Str("run", rep.Run.ID).
		Dur("duration", rep.Run.Duration).
		Int("reviews", rep.Run.Reviews).
		Float64("nps", rep.NPS.NPS).
		Msg("analysis run complete")
	return rep.Run, nil
}

func (s *AnalysisService) persist(ctx context.Context, rep analytics.Report) error {
	runID := rep.Run.ID
	if err := s.repo.SaveEnrichedReviews(ctx, runID, rep.Reviews); err != nil {
		return fmt.Errorf("save enriched reviews: %w", err)
	}
	if err := s.repo.SaveWordCounts(ctx, runID, domain.Positive, rep.TopPositive); err != nil {
		return fmt.Errorf("save positive word counts: %w", err)
	}
	if err := s.repo.SaveWordCounts(ctx, runID, domain.Negative, rep.TopNegative); err != nil {
		return fmt.Errorf("save negative word counts: %w", err)
	}
	if err := s.repo.SaveDepartmentStats(ctx, runID, rep.Departments); err != nil {
		return fmt.Errorf("save department stats: %w", err)
	}
	if err := s.repo.SaveNPS(ctx, runID, rep.NPS, rep.NPSByMonth, rep.NPSByTripType); err != nil {
		return fmt.Errorf("save nps rollups: %w", err)
	}
	if err := s.repo.SaveResponseBuckets(ctx, runID, rep.ResponseBuckets); err != nil {
		return fmt.Errorf("save response buckets: %w", err)
	}
	if err := s.repo.SaveRatingCells(ctx, runID, rep.RatingCells); err != nil {
		return fmt.Errorf("save rating cells: %w", err)
	}
	if err := s.repo.SaveRatingLong(ctx, runID, rep.RatingsLong); err != nil {
		return fmt.Errorf("save long ratings: %w", err)
	}
	// Run row last: readers only ever see fully persisted runs.
	if err := s.repo.SaveRun(ctx, rep.Run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}
