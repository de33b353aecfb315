package analytics

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"guestpulse/internal/domain"
)

// ErrEmptyGroup is returned when an NPS is requested for a group with no
// members. Grouping the input never yields empty partitions, so hitting this
// means an upstream contract was violated; the caller gets an explicit error
// instead of a NaN.
var ErrEmptyGroup = errors.New("analytics: undefined NPS for empty group")

// Classify segments a guest by overall rating: Promoter >= 9, Passive 7-8,
// Detractor <= 6.
func Classify(overallRating int) domain.NPSCategory {
	switch {
	case overallRating >= 9:
		return domain.Promoter
	case overallRating >= 7:
		return domain.Passive
	default:
		return domain.Detractor
	}
}

// ComputeNPS is (promoters - detractors) / total * 100, one decimal place.
func ComputeNPS(promoters, detractors, total int) (float64, error) {
	if total == 0 {
		return 0, ErrEmptyGroup
	}
	return round1(float64(promoters-detractors) / float64(total) * 100), nil
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

type npsAcc struct {
	promoters  int
	passives   int
	detractors int
	ratings    []float64
	sentiments []float64
	monthName  string
}

func (a *npsAcc) add(r domain.EnrichedReview) {
	switch Classify(r.OverallRating) {
	case domain.Promoter:
		a.promoters++
	case domain.Passive:
		a.passives++
	default:
		a.detractors++
	}
	a.ratings = append(a.ratings, float64(r.OverallRating))
	a.sentiments = append(a.sentiments, float64(r.Score))
}

func (a *npsAcc) row() (domain.NPSRow, error) {
	total := len(a.ratings)
	nps, err := ComputeNPS(a.promoters, a.detractors, total)
	if err != nil {
		return domain.NPSRow{}, err
	}
	return domain.NPSRow{
		Reviews:    total,
		Promoters:  a.promoters,
		Passives:   a.passives,
		Detractors: a.detractors,
		NPS:        nps,
	}, nil
}

// GlobalNPS computes the whole-dataset NPS row.
func GlobalNPS(reviews []domain.EnrichedReview) (domain.NPSRow, error) {
	var acc npsAcc
	for _, r := range reviews {
		acc.add(r)
	}
	return acc.row()
}

// NPSByMonth rolls NPS up per calendar month, ascending by month number.
func NPSByMonth(reviews []domain.EnrichedReview) ([]domain.MonthNPS, error) {
	accs := make(map[int]*npsAcc)
	for _, r := range reviews {
		acc := accs[r.Month]
		if acc == nil {
			acc = &npsAcc{monthName: r.MonthName}
			accs[r.Month] = acc
		}
		acc.add(r)
	}

	months := make([]int, 0, len(accs))
	for m := range accs {
		months = append(months, m)
	}
	sort.Ints(months)

	out := make([]domain.MonthNPS, 0, len(months))
	for _, m := range months {
		row, err := accs[m].row()
		if err != nil {
			return nil, err
		}
		out = append(out, domain.MonthNPS{Month: m, MonthName: accs[m].monthName, NPSRow: row})
	}
	return out, nil
}

// NPSByTripType rolls NPS up per trip type with the mean overall rating
// attached, sorted descending by NPS.
func NPSByTripType(reviews []domain.EnrichedReview) ([]domain.TripTypeNPS, error) {
	accs := make(map[string]*npsAcc)
	for _, r := range reviews {
		acc := accs[r.TripType]
		if acc == nil {
			acc = &npsAcc{}
			accs[r.TripType] = acc
		}
		acc.add(r)
	}

	out := make([]domain.TripTypeNPS, 0, len(accs))
	for trip, acc := range accs {
		row, err := acc.row()
		if err != nil {
			return nil, err
		}
		out = append(out, domain.TripTypeNPS{
			TripType:  trip,
			NPSRow:    row,
			AvgRating: stat.Mean(acc.ratings, nil),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NPS != out[j].NPS {
			return out[i].NPS > out[j].NPS
		}
		return out[i].TripType < out[j].TripType
	})
	return out, nil
}

// Response-speed bucket labels, slowest last. NoResponseBucket collects
// reviews with no response time at all; they never enter response-time
// means elsewhere.
const NoResponseBucket = "No response"

var responseBucketOrder = []string{
	"Under 1 hour",
	"1-6 hours",
	"6-24 hours",
	"Over 24 hours",
	NoResponseBucket,
}

// ResponseBucket derives the response-speed bucket from raw hours. The
// cleaned table normally arrives with the bucket pre-derived; this helper
// fills it when only the raw value is present.
func ResponseBucket(hours *float64) string {
	switch {
	case hours == nil:
		return NoResponseBucket
	case *hours < 1:
		return "Under 1 hour"
	case *hours <= 6:
		return "1-6 hours"
	case *hours <= 24:
		return "6-24 hours"
	default:
		return "Over 24 hours"
	}
}

// ResponseBucketRollup aggregates per response-speed bucket: review count,
// mean overall rating, mean sentiment score, and percentage of Promoters.
// Buckets come back fastest first, with any unknown labels appended
// alphabetically.
func ResponseBucketRollup(reviews []domain.EnrichedReview) []domain.ResponseBucketStats {
	accs := make(map[string]*npsAcc)
	for _, r := range reviews {
		bucket := r.ResponseBucket
		if bucket == "" {
			bucket = ResponseBucket(r.ResponseTimeHours)
		}
		acc := accs[bucket]
		if acc == nil {
			acc = &npsAcc{}
			accs[bucket] = acc
		}
		acc.add(r)
	}

	rank := make(map[string]int, len(responseBucketOrder))
	for i, b := range responseBucketOrder {
		rank[b] = i
	}

	out := make([]domain.ResponseBucketStats, 0, len(accs))
	for bucket, acc := range accs {
		n := len(acc.ratings)
		out = append(out, domain.ResponseBucketStats{
			Bucket:       bucket,
			Reviews:      n,
			AvgRating:    stat.Mean(acc.ratings, nil),
			AvgSentiment: stat.Mean(acc.sentiments, nil),
			PctPromoter:  float64(acc.promoters) / float64(n) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iKnown := rank[out[i].Bucket]
		rj, jKnown := rank[out[j].Bucket]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return out[i].Bucket < out[j].Bucket
		}
	})
	return out
}
