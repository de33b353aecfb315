package mysql

const insertRunSQL = `
INSERT INTO analysis_runs
  (id, started_at, duration_ms, reviews, lexicon_words)
VALUES
  (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  duration_ms   = VALUES(duration_ms),
  reviews       = VALUES(reviews),
  lexicon_words = VALUES(lexicon_words)
`

// One row per (run, review); original review fields live in reviews_clean
// and join back in via review_id.
const insertEnrichedPrefix = "INSERT INTO reviews_enriched\n  (run_id, review_id, positive_words, negative_words, sentiment_score, sentiment_label)\nVALUES "

const insertEnrichedOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  positive_words  = VALUES(positive_words),\n" +
	"  negative_words  = VALUES(negative_words),\n" +
	"  sentiment_score = VALUES(sentiment_score),\n" +
	"  sentiment_label = VALUES(sentiment_label)\n"

// `pos` preserves the ranked order of the word tables.
const insertWordsPrefix = "INSERT INTO word_frequencies\n  (run_id, polarity, pos, word, cnt)\nVALUES "

const insertWordsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  pos = VALUES(pos),\n" +
	"  cnt = VALUES(cnt)\n"

const insertDeptPrefix = "INSERT INTO department_stats\n  (run_id, department, mentions, avg_rating, avg_sentiment, pct_positive)\nVALUES "

const insertDeptOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  mentions      = VALUES(mentions),\n" +
	"  avg_rating    = VALUES(avg_rating),\n" +
	"  avg_sentiment = VALUES(avg_sentiment),\n" +
	"  pct_positive  = VALUES(pct_positive)\n"

const insertNPSGlobalSQL = `
INSERT INTO nps_global
  (run_id, reviews, promoters, passives, detractors, nps)
VALUES
  (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  reviews    = VALUES(reviews),
  promoters  = VALUES(promoters),
  passives   = VALUES(passives),
  detractors = VALUES(detractors),
  nps        = VALUES(nps)
`

const insertNPSMonthPrefix = "INSERT INTO nps_monthly\n  (run_id, month, month_name, reviews, promoters, passives, detractors, nps)\nVALUES "

const insertNPSMonthOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  month_name = VALUES(month_name),\n" +
	"  reviews    = VALUES(reviews),\n" +
	"  promoters  = VALUES(promoters),\n" +
	"  passives   = VALUES(passives),\n" +
	"  detractors = VALUES(detractors),\n" +
	"  nps        = VALUES(nps)\n"

const insertNPSTripPrefix = "INSERT INTO nps_trip_type\n  (run_id, trip_type, reviews, promoters, passives, detractors, nps, avg_rating)\nVALUES "

const insertNPSTripOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  reviews    = VALUES(reviews),\n" +
	"  promoters  = VALUES(promoters),\n" +
	"  passives   = VALUES(passives),\n" +
	"  detractors = VALUES(detractors),\n" +
	"  nps        = VALUES(nps),\n" +
	"  avg_rating = VALUES(avg_rating)\n"

const insertBucketPrefix = "INSERT INTO response_buckets\n  (run_id, pos, bucket, reviews, avg_rating, avg_sentiment, pct_promoter)\nVALUES "

const insertBucketOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  pos           = VALUES(pos),\n" +
	"  reviews       = VALUES(reviews),\n" +
	"  avg_rating    = VALUES(avg_rating),\n" +
	"  avg_sentiment = VALUES(avg_sentiment),\n" +
	"  pct_promoter  = VALUES(pct_promoter)\n"

const insertRatingCellPrefix = "INSERT INTO rating_cells\n  (run_id, room_type, quarter, avg_rating)\nVALUES "

const insertRatingCellOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  avg_rating = VALUES(avg_rating)\n"

const insertRatingLongPrefix = "INSERT INTO rating_long\n  (run_id, review_id, category, label, score)\nVALUES "

const insertRatingLongOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  label = VALUES(label),\n" +
	"  score = VALUES(score)\n"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const listCleanReviewsSQL = `
SELECT
  id,
  overall_rating,
  cleanliness,
  service,
  location,
  facilities,
  value_for_money,
  ` + "`text`" + `,
  trip_type,
  room_type,
  booking_channel,
  loyalty_tier,
  month,
  month_name,
  quarter,
  response_time_hours,
  response_bucket
FROM reviews_clean
ORDER BY id
`

const latestRunSQL = `
SELECT id, started_at, duration_ms, reviews, lexicon_words
FROM analysis_runs
ORDER BY started_at DESC, id DESC
LIMIT 1
`

const getNPSSQL = `
SELECT reviews, promoters, passives, detractors, nps
FROM nps_global
WHERE run_id = ?
`

const listMonthNPSSQL = `
SELECT month, month_name, reviews, promoters, passives, detractors, nps
FROM nps_monthly
WHERE run_id = ?
ORDER BY month
`

const listTripNPSSQL = `
SELECT trip_type, reviews, promoters, passives, detractors, nps, avg_rating
FROM nps_trip_type
WHERE run_id = ?
ORDER BY nps DESC, trip_type
`

const listDeptSQL = `
SELECT department, mentions, avg_rating, avg_sentiment, pct_positive
FROM department_stats
WHERE run_id = ?
ORDER BY avg_rating DESC, department
`

const listWordsSQL = `
SELECT word, cnt
FROM word_frequencies
WHERE run_id = ? AND polarity = ?
ORDER BY pos
LIMIT ?
`

const listBucketsSQL = `
SELECT bucket, reviews, avg_rating, avg_sentiment, pct_promoter
FROM response_buckets
WHERE run_id = ?
ORDER BY pos
`

const listRatingCellsSQL = `
SELECT room_type, quarter, avg_rating
FROM rating_cells
WHERE run_id = ?
ORDER BY room_type, quarter
`

const listRatingLongSQL = `
SELECT review_id, category, label, score
FROM rating_long
WHERE run_id = ?
ORDER BY review_id, category
LIMIT ?
`
