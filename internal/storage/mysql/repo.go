package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"guestpulse/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// batchExec builds one multi-row INSERT ... ON DUPLICATE KEY UPDATE from the
// collected placeholder groups and args.
func (r *Repo) batchExec(ctx context.Context, prefix, onDup string, values []string, args []any) error {
	if len(values) == 0 {
		return nil
	}
	sqlStr := prefix + strings.Join(values, ",") + onDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) SaveRun(ctx context.Context, run domain.RunInfo) error {
	_, err := r.db.ExecContext(ctx, insertRunSQL,
		run.ID,
		run.StartedAt.UTC(),
		run.Duration.Milliseconds(),
		run.Reviews,
		run.LexiconWords,
	)
	return err
}

func (r *Repo) SaveEnrichedReviews(ctx context.Context, runID string, rs []domain.EnrichedReview) error {
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*6)
	for _, rv := range rs {
		values = append(values, "(?,?,?,?,?,?)")
		args = append(args, runID, rv.ID, rv.PositiveWords, rv.NegativeWords, rv.Score, rv.Label.String())
	}
	return r.batchExec(ctx, insertEnrichedPrefix, insertEnrichedOnDup, values, args)
}

func (r *Repo) SaveWordCounts(ctx context.Context, runID string, p domain.Polarity, ws []domain.WordCount) error {
	values := make([]string, 0, len(ws))
	args := make([]any, 0, len(ws)*5)
	for i, w := range ws {
		values = append(values, "(?,?,?,?,?)")
		args = append(args, runID, p.String(), i, w.Word, w.Count)
	}
	return r.batchExec(ctx, insertWordsPrefix, insertWordsOnDup, values, args)
}

func (r *Repo) SaveDepartmentStats(ctx context.Context, runID string, ds []domain.DepartmentStats) error {
	values := make([]string, 0, len(ds))
	args := make([]any, 0, len(ds)*6)
	for _, d := range ds {
		values = append(values, "(?,?,?,?,?,?)")
		args = append(args, runID, d.Department, d.Mentions, d.AvgRating, d.AvgSentiment, d.PctPositive)
	}
	return r.batchExec(ctx, insertDeptPrefix, insertDeptOnDup, values, args)
}

func (r *Repo) SaveNPS(ctx context.Context, runID string, global domain.NPSRow, byMonth []domain.MonthNPS, byTrip []domain.TripTypeNPS) error {
	if _, err := r.db.ExecContext(ctx, insertNPSGlobalSQL,
		runID, global.Reviews, global.Promoters, global.Passives, global.Detractors, global.NPS,
	); err != nil {
		return err
	}

	values := make([]string, 0, len(byMonth))
	args := make([]any, 0, len(byMonth)*8)
	for _, m := range byMonth {
		values = append(values, "(?,?,?,?,?,?,?,?)")
		args = append(args, runID, m.Month, m.MonthName, m.Reviews, m.Promoters, m.Passives, m.Detractors, m.NPS)
	}
	if err := r.batchExec(ctx, insertNPSMonthPrefix, insertNPSMonthOnDup, values, args); err != nil {
		return err
	}

	values = values[:0]
	args = args[:0]
	for _, t := range byTrip {
		values = append(values, "(?,?,?,?,?,?,?,?)")
		args = append(args, runID, t.TripType, t.Reviews, t.Promoters, t.Passives, t.Detractors, t.NPS, t.AvgRating)
	}
	return r.batchExec(ctx, insertNPSTripPrefix, insertNPSTripOnDup, values, args)
}

func (r *Repo) SaveResponseBuckets(ctx context.Context, runID string, bs []domain.ResponseBucketStats) error {
	values := make([]string, 0, len(bs))
	args := make([]any, 0, len(bs)*7)
	for i, b := range bs {
		values = append(values, "(?,?,?,?,?,?,?)")
		args = append(args, runID, i, b.Bucket, b.Reviews, b.AvgRating, b.AvgSentiment, b.PctPromoter)
	}
	return r.batchExec(ctx, insertBucketPrefix, insertBucketOnDup, values, args)
}

func (r *Repo) SaveRatingCells(ctx context.Context, runID string, cs []domain.RatingCell) error {
	values := make([]string, 0, len(cs))
	args := make([]any, 0, len(cs)*4)
	for _, c := range cs {
		values = append(values, "(?,?,?,?)")
		args = append(args, runID, c.RoomType, c.Quarter, c.AvgRating)
	}
	return r.batchExec(ctx, insertRatingCellPrefix, insertRatingCellOnDup, values, args)
}

func (r *Repo) SaveRatingLong(ctx context.Context, runID string, rows []domain.RatingLongRow) error {
	values := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*5)
	for _, row := range rows {
		values = append(values, "(?,?,?,?,?)")
		args = append(args, runID, row.ReviewID, row.Category, row.Label, row.Score)
	}
	return r.batchExec(ctx, insertRatingLongPrefix, insertRatingLongOnDup, values, args)
}

func (r *Repo) ListCleanReviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listCleanReviewsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		var respHours sql.NullFloat64
		var respBucket sql.NullString
		if err := rows.Scan(
			&rv.ID,
			&rv.OverallRating,
			&rv.Cleanliness,
			&rv.Service,
			&rv.Location,
			&rv.Facilities,
			&rv.ValueForMoney,
			&rv.Text,
			&rv.TripType,
			&rv.RoomType,
			&rv.BookingChannel,
			&rv.LoyaltyTier,
			&rv.Month,
			&rv.MonthName,
			&rv.Quarter,
			&respHours,
			&respBucket,
		); err != nil {
			return nil, err
		}
		if respHours.Valid {
			h := respHours.Float64
			rv.ResponseTimeHours = &h
		}
		if respBucket.Valid {
			rv.ResponseBucket = respBucket.String
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repo) LatestRun(ctx context.Context) (domain.RunInfo, error) {
	var run domain.RunInfo
	var started time.Time
	var durationMS int64
	err := r.db.QueryRowContext(ctx, latestRunSQL).Scan(
		&run.ID, &started, &durationMS, &run.Reviews, &run.LexiconWords,
	)
	if err == sql.ErrNoRows {
		return domain.RunInfo{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.RunInfo{}, err
	}
	run.StartedAt = started
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return run, nil
}

func (r *Repo) GetNPS(ctx context.Context, runID string) (domain.NPSRow, error) {
	var row domain.NPSRow
	err := r.db.QueryRowContext(ctx, getNPSSQL, runID).Scan(
		&row.Reviews, &row.Promoters, &row.Passives, &row.Detractors, &row.NPS,
	)
	if err == sql.ErrNoRows {
		return domain.NPSRow{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.NPSRow{}, err
	}
	return row, nil
}

func (r *Repo) ListMonthNPS(ctx context.Context, runID string) ([]domain.MonthNPS, error) {
	rows, err := r.db.QueryContext(ctx, listMonthNPSSQL, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MonthNPS
	for rows.Next() {
		var m domain.MonthNPS
		if err := rows.Scan(&m.Month, &m.MonthName, &m.Reviews, &m.Promoters, &m.Passives, &m.Detractors, &m.NPS); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) ListTripTypeNPS(ctx context.Context, runID string) ([]domain.TripTypeNPS, error) {
	rows, err := r.db.QueryContext(ctx, listTripNPSSQL, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TripTypeNPS
	for rows.Next() {
		var t domain.TripTypeNPS
		if err := rows.Scan(&t.TripType, &t.Reviews, &t.Promoters, &t.Passives, &t.Detractors, &t.NPS, &t.AvgRating); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) ListDepartmentStats(ctx context.Context, runID string) ([]domain.DepartmentStats, error) {
	rows, err := r.db.QueryContext(ctx, listDeptSQL, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DepartmentStats
	for rows.Next() {
		var d domain.DepartmentStats
		if err := rows.Scan(&d.Department, &d.Mentions, &d.AvgRating, &d.AvgSentiment, &d.PctPositive); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repo) ListWordCounts(ctx context.Context, runID string, p domain.Polarity, limit int) ([]domain.WordCount, error) {
	rows, err := r.db.QueryContext(ctx, listWordsSQL, runID, p.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WordCount
	for rows.Next() {
		var w domain.WordCount
		if err := rows.Scan(&w.Word, &w.Count); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *Repo) ListResponseBuckets(ctx context.Context, runID string) ([]domain.ResponseBucketStats, error) {
	rows, err := r.db.QueryContext(ctx, listBucketsSQL, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ResponseBucketStats
	for rows.Next() {
		var b domain.ResponseBucketStats
		if err := rows.Scan(&b.Bucket, &b.Reviews, &b.AvgRating, &b.AvgSentiment, &b.PctPromoter); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) ListRatingCells(ctx context.Context, runID string) ([]domain.RatingCell, error) {
	rows, err := r.db.QueryContext(ctx, listRatingCellsSQL, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RatingCell
	for rows.Next() {
		var c domain.RatingCell
		if err := rows.Scan(&c.RoomType, &c.Quarter, &c.AvgRating); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) ListRatingLong(ctx context.Context, runID string, limit int) ([]domain.RatingLongRow, error) {
	rows, err := r.db.QueryContext(ctx, listRatingLongSQL, runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RatingLongRow
	for rows.Next() {
		var row domain.RatingLongRow
		if err := rows.Scan(&row.ReviewID, &row.Category, &row.Label, &row.Score); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
