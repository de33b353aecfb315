//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"guestpulse/internal/domain"
	mysqlrepo "guestpulse/internal/storage/mysql"
)

func pfloat(f float64) *float64 { return &f }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func seedCleanReview(t *testing.T, db *sql.DB, r domain.Review) {
	t.Helper()
	const q = "INSERT INTO reviews_clean" +
		" (id, overall_rating, cleanliness, service, location, facilities, value_for_money," +
		" `text`, trip_type, room_type, booking_channel, loyalty_tier, `month`, month_name, quarter," +
		" response_time_hours, response_bucket)" +
		" VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)"
	var hours any
	if r.ResponseTimeHours != nil {
		hours = *r.ResponseTimeHours
	}
	var bucket any
	if r.ResponseBucket != "" {
		bucket = r.ResponseBucket
	}
	if _, err := db.Exec(q,
		r.ID, r.OverallRating, r.Cleanliness, r.Service, r.Location, r.Facilities, r.ValueForMoney,
		r.Text, r.TripType, r.RoomType, r.BookingChannel, r.LoyaltyTier, r.Month, r.MonthName, r.Quarter,
		hours, bucket,
	); err != nil {
		t.Fatalf("seed review %d: %v", r.ID, err)
	}
}

func TestRepo_MySQL_SaveAndQuery(t *testing.T) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=guestpulse",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "guestpulse")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	seedCleanReview(t, db, domain.Review{
		ID: 1, OverallRating: 9, Cleanliness: 9, Service: 10, Location: 8, Facilities: 8, ValueForMoney: 9,
		Text: "The front desk staff were great and the room was spotless",
		TripType: "Business", RoomType: "Deluxe", BookingChannel: "Direct", LoyaltyTier: "Gold",
		Month: 3, MonthName: "March", Quarter: "Q1",
		ResponseTimeHours: pfloat(0.5), ResponseBucket: "Under 1 hour",
	})
	seedCleanReview(t, db, domain.Review{
		ID: 2, OverallRating: 4, Cleanliness: 3, Service: 4, Location: 7, Facilities: 5, ValueForMoney: 4,
		Text: "Dirty bathroom and a broken shower",
		TripType: "Leisure", RoomType: "Standard", BookingChannel: "OTA", LoyaltyTier: "None",
		Month: 4, MonthName: "April", Quarter: "Q2",
	})

	reviews, err := repo.ListCleanReviews(ctx)
	if err != nil {
		t.Fatalf("ListCleanReviews: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
	if reviews[0].ID != 1 || reviews[0].ResponseTimeHours == nil || *reviews[0].ResponseTimeHours != 0.5 {
		t.Fatalf("unexpected first review: %+v", reviews[0])
	}
	if reviews[1].ResponseTimeHours != nil || reviews[1].ResponseBucket != "" {
		t.Fatalf("expected NULL response fields on second review: %+v", reviews[1])
	}

	// No runs yet.
	if _, err := repo.LatestRun(ctx); err != domain.ErrNotFound {
		t.Fatalf("LatestRun on empty table: want ErrNotFound, got %v", err)
	}

	runID := "run-itest-1"
	enriched := []domain.EnrichedReview{
		{Review: reviews[0], Sentiment: domain.Sentiment{PositiveWords: 2, NegativeWords: 0, Score: 2, Label: domain.LabelPositive}},
		{Review: reviews[1], Sentiment: domain.Sentiment{PositiveWords: 0, NegativeWords: 2, Score: -2, Label: domain.LabelNegative}},
	}
	if err := repo.SaveEnrichedReviews(ctx, runID, enriched); err != nil {
		t.Fatalf("SaveEnrichedReviews: %v", err)
	}
	if err := repo.SaveWordCounts(ctx, runID, domain.Positive, []domain.WordCount{
		{Word: "great", Count: 4}, {Word: "spotless", Count: 2},
	}); err != nil {
		t.Fatalf("SaveWordCounts: %v", err)
	}
	if err := repo.SaveDepartmentStats(ctx, runID, []domain.DepartmentStats{
		{Department: "Front Desk", Mentions: 1, AvgRating: 9, AvgSentiment: 2, PctPositive: 100},
		{Department: "Housekeeping", Mentions: 2, AvgRating: 6.5, AvgSentiment: 0, PctPositive: 50},
	}); err != nil {
		t.Fatalf("SaveDepartmentStats: %v", err)
	}
	global := domain.NPSRow{Reviews: 2, Promoters: 1, Passives: 0, Detractors: 1, NPS: 0}
	byMonth := []domain.MonthNPS{
		{Month: 3, MonthName: "March", NPSRow: domain.NPSRow{Reviews: 1, Promoters: 1, NPS: 100}},
		{Month: 4, MonthName: "April", NPSRow: domain.NPSRow{Reviews: 1, Detractors: 1, NPS: -100}},
	}
	byTrip := []domain.TripTypeNPS{
		{TripType: "Business", NPSRow: domain.NPSRow{Reviews: 1, Promoters: 1, NPS: 100}, AvgRating: 9},
		{TripType: "Leisure", NPSRow: domain.NPSRow{Reviews: 1, Detractors: 1, NPS: -100}, AvgRating: 4},
	}
	if err := repo.SaveNPS(ctx, runID, global, byMonth, byTrip); err != nil {
		t.Fatalf("SaveNPS: %v", err)
	}
	if err := repo.SaveResponseBuckets(ctx, runID, []domain.ResponseBucketStats{
		{Bucket: "Under 1 hour", Reviews: 1, AvgRating: 9, AvgSentiment: 2, PctPromoter: 100},
		{Bucket: "No response", Reviews: 1, AvgRating: 4, AvgSentiment: -2, PctPromoter: 0},
	}); err != nil {
		t.Fatalf("SaveResponseBuckets: %v", err)
	}
	if err := repo.SaveRatingCells(ctx, runID, []domain.RatingCell{
		{RoomType: "Deluxe", Quarter: "Q1", AvgRating: 9},
		{RoomType: "Standard", Quarter: "Q2", AvgRating: 4},
	}); err != nil {
		t.Fatalf("SaveRatingCells: %v", err)
	}
	if err := repo.SaveRatingLong(ctx, runID, []domain.RatingLongRow{
		{ReviewID: 1, Category: "cleanliness", Label: "Cleanliness", Score: 9},
		{ReviewID: 1, Category: "service", Label: "Service", Score: 10},
	}); err != nil {
		t.Fatalf("SaveRatingLong: %v", err)
	}
	if err := repo.SaveRun(ctx, domain.RunInfo{
		ID: runID, StartedAt: time.Now().UTC(), Duration: 42 * time.Millisecond,
		Reviews: 2, LexiconWords: 4,
	}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	latest, err := repo.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if latest.ID != runID || latest.Reviews != 2 {
		t.Fatalf("unexpected latest run: %+v", latest)
	}

	nps, err := repo.GetNPS(ctx, runID)
	if err != nil {
		t.Fatalf("GetNPS: %v", err)
	}
	if nps != global {
		t.Fatalf("GetNPS: got %+v want %+v", nps, global)
	}
	if _, err := repo.GetNPS(ctx, "no-such-run"); err != domain.ErrNotFound {
		t.Fatalf("GetNPS missing run: want ErrNotFound, got %v", err)
	}

	months, err := repo.ListMonthNPS(ctx, runID)
	if err != nil {
		t.Fatalf("ListMonthNPS: %v", err)
	}
	if len(months) != 2 || months[0].Month != 3 || months[1].NPS != -100 {
		t.Fatalf("unexpected month rows: %+v", months)
	}

	trips, err := repo.ListTripTypeNPS(ctx, runID)
	if err != nil {
		t.Fatalf("ListTripTypeNPS: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("unexpected trip rows: %+v", trips)
	}

	words, err := repo.ListWordCounts(ctx, runID, domain.Positive, 1)
	if err != nil {
		t.Fatalf("ListWordCounts: %v", err)
	}
	if len(words) != 1 || words[0].Word != "great" || words[0].Count != 4 {
		t.Fatalf("unexpected word rows: %+v", words)
	}

	buckets, err := repo.ListResponseBuckets(ctx, runID)
	if err != nil {
		t.Fatalf("ListResponseBuckets: %v", err)
	}
	if len(buckets) != 2 || buckets[0].Bucket != "Under 1 hour" {
		t.Fatalf("unexpected bucket rows: %+v", buckets)
	}

	cells, err := repo.ListRatingCells(ctx, runID)
	if err != nil {
		t.Fatalf("ListRatingCells: %v", err)
	}
	if len(cells) != 2 {
		t.Fatalf("unexpected rating cells: %+v", cells)
	}

	long, err := repo.ListRatingLong(ctx, runID, 10)
	if err != nil {
		t.Fatalf("ListRatingLong: %v", err)
	}
	if len(long) != 2 {
		t.Fatalf("unexpected long rows: %+v", long)
	}

	// Idempotent re-save of the same run must not error or duplicate.
	if err := repo.SaveWordCounts(ctx, runID, domain.Positive, []domain.WordCount{
		{Word: "great", Count: 5},
	}); err != nil {
		t.Fatalf("re-save word counts: %v", err)
	}
	words, err = repo.ListWordCounts(ctx, runID, domain.Positive, 10)
	if err != nil {
		t.Fatalf("ListWordCounts after upsert: %v", err)
	}
	if len(words) != 2 || words[0].Count != 5 {
		t.Fatalf("upsert did not replace count: %+v", words)
	}
}
