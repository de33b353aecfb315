package analytics

import (
	"fmt"

	"guestpulse/internal/domain"
)

// ValidateReviews fails fast on input-contract violations the ETL stage is
// supposed to have rejected: ratings outside 1..10, duplicate IDs, negative
// response times, months outside 1..12. Runs once on entry; the first
// violation aborts the run with a descriptive error.
func ValidateReviews(reviews []domain.Review) error {
	seen := make(map[int64]struct{}, len(reviews))
	for _, r := range reviews {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("review %d: duplicate id", r.ID)
		}
		seen[r.ID] = struct{}{}

		if err := checkRating(r.ID, "overall", r.OverallRating); err != nil {
			return err
		}
		subs := map[string]int{
			"cleanliness":     r.Cleanliness,
			"service":         r.Service,
			"location":        r.Location,
			"facilities":      r.Facilities,
			"value_for_money": r.ValueForMoney,
		}
		for name, v := range subs {
			if err := checkRating(r.ID, name, v); err != nil {
				return err
			}
		}
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("review %d: month %d out of range 1..12", r.ID, r.Month)
		}
		if r.ResponseTimeHours != nil && *r.ResponseTimeHours < 0 {
			return fmt.Errorf("review %d: negative response time %v", r.ID, *r.ResponseTimeHours)
		}
	}
	return nil
}

func checkRating(id int64, name string, v int) error {
	if v < 1 || v > 10 {
		return fmt.Errorf("review %d: %s rating %d out of range 1..10", id, name, v)
	}
	return nil
}
