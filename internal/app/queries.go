package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"guestpulse/internal/analytics"
	"guestpulse/internal/domain"
)

const latestRunKey = "report:latest_run"

// ReportService serves the persisted report tables of the latest analysis
// run, with a cache in front of every read path.
type ReportService struct {
	repo     domain.AnalyticsRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewReportService(r domain.AnalyticsRepository, c domain.Cache, ttl time.Duration) *ReportService {
	return &ReportService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *ReportService) ttlSec() int { return int(s.cacheTTL.Seconds()) }

// LatestRun resolves the most recent completed run. All table reads are
// keyed by run ID, so everything downstream of a cached run stays coherent.
func (s *ReportService) LatestRun(ctx context.Context) (domain.RunInfo, error) {
	var run domain.RunInfo
	if ok, _ := s.cache.Get(ctx, latestRunKey, &run); ok {
		return run, nil
	}
	run, err := s.repo.LatestRun(ctx)
	if err != nil {
		return domain.RunInfo{}, err
	}
	_ = s.cache.Set(ctx, latestRunKey, run, s.ttlSec())
	return run, nil
}

func (s *ReportService) GetNPS(ctx context.Context) (domain.NPSRow, error) {
	run, err := s.LatestRun(ctx)
	if err != nil {
		return domain.NPSRow{}, err
	}
	key := fmt.Sprintf("report:%s:nps", run.ID)
	var row domain.NPSRow
	if ok, _ := s.cache.Get(ctx, key, &row); ok {
		return row, nil
	}
	row, err = s.repo.GetNPS(ctx, run.ID)
	if err != nil {
		return domain.NPSRow{}, err
	}
	_ = s.cache.Set(ctx, key, row, s.ttlSec())
	return row, nil
}

func (s *ReportService) MonthNPS(ctx context.Context) ([]domain.MonthNPS, error) {
	return cachedList(ctx, s, "nps_monthly", s.repo.ListMonthNPS)
}

func (s *ReportService) TripTypeNPS(ctx context.Context) ([]domain.TripTypeNPS, error) {
	return cachedList(ctx, s, "nps_trip_type", s.repo.ListTripTypeNPS)
}

func (s *ReportService) Departments(ctx context.Context) ([]domain.DepartmentStats, error) {
	return cachedList(ctx, s, "departments", s.repo.ListDepartmentStats)
}

func (s *ReportService) ResponseBuckets(ctx context.Context) ([]domain.ResponseBucketStats, error) {
	return cachedList(ctx, s, "response_buckets", s.repo.ListResponseBuckets)
}

func (s *ReportService) Words(ctx context.Context, p domain.Polarity, limit int) ([]domain.WordCount, error) {
	run, err := s.LatestRun(ctx)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("report:%s:words:%s:%d", run.ID, p, limit)
	var out []domain.WordCount
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out, err = s.repo.ListWordCounts(ctx, run.ID, p, limit)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, out, s.ttlSec())
	return out, nil
}

// RatingsWide pivots the stored rating cells into the wide room-type x
// quarter layout on the way out.
func (s *ReportService) RatingsWide(ctx context.Context) (analytics.WideTable, error) {
	run, err := s.LatestRun(ctx)
	if err != nil {
		return analytics.WideTable{}, err
	}
	key := fmt.Sprintf("report:%s:ratings_wide", run.ID)
	var w analytics.WideTable
	if ok, _ := s.cache.Get(ctx, key, &w); ok {
		return w, nil
	}
	cells, err := s.repo.ListRatingCells(ctx, run.ID)
	if err != nil {
		return analytics.WideTable{}, err
	}
	w = analytics.RatingsWide(cells)
	_ = s.cache.Set(ctx, key, w, s.ttlSec())
	return w, nil
}

func (s *ReportService) RatingsLong(ctx context.Context, limit int) ([]domain.RatingLongRow, error) {
	run, err := s.LatestRun(ctx)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("report:%s:ratings_long:%d", run.ID, limit)
	var out []domain.RatingLongRow
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out, err = s.repo.ListRatingLong(ctx, run.ID, limit)
	if err != nil {
		return nil, err
	}
	// size guard, long ratings are reviews x categories
	if b, _ := json.Marshal(out); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, out, s.ttlSec())
	}
	return out, nil
}

// cachedList is the shared cache-aside read for run-scoped tables. Slices
// are copied before caching so callers can't mutate the cached value.
func cachedList[T any](ctx context.Context, s *ReportService, table string, fetch func(context.Context, string) ([]T, error)) ([]T, error) {
	run, err := s.LatestRun(ctx)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("report:%s:%s", run.ID, table)
	var out []T
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out, err = fetch(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	cp := make([]T, len(out))
	copy(cp, out)
	_ = s.cache.Set(ctx, key, cp, s.ttlSec())
	return cp, nil
}
