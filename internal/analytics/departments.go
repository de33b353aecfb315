package analytics

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gonum.org/v1/gonum/stat"

	"guestpulse/internal/domain"
)

// KeywordMap maps a department name to the keywords whose presence in a
// review's text counts as a mention. Keywords are matched as case-insensitive
// literal substrings and may span multiple words ("room service").
type KeywordMap map[string][]string

// DefaultKeywordMap returns the built-in five-department keyword map.
func DefaultKeywordMap() KeywordMap {
	return KeywordMap{
		"Front Desk": {
			"front desk", "reception", "check-in", "check in", "check-out", "check out", "concierge",
		},
		"Housekeeping": {
			"housekeeping", "clean", "spotless", "dirty", "towels", "linen", "bedding",
		},
		"Food & Beverage": {
			"breakfast", "restaurant", "room service", "dinner", "buffet", "bar", "coffee",
		},
		"Maintenance": {
			"air conditioning", "shower", "wifi", "elevator", "broken", "leak", "heating",
		},
		"Spa & Leisure": {
			"pool", "spa", "gym", "sauna", "massage",
		},
	}
}

// keywordConfig is the TOML shape of a keyword map override file.
type keywordConfig struct {
	Departments map[string][]string `toml:"departments"`
}

// LoadKeywordMap reads a department keyword map from a TOML file. The
// result is normalized the same way as the built-in map.
func LoadKeywordMap(path string) (KeywordMap, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword map: %w", err)
	}
	var cfg keywordConfig
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse keyword map: %w", err)
	}
	if len(cfg.Departments) == 0 {
		return nil, fmt.Errorf("keyword map %s: no departments defined", path)
	}
	return KeywordMap(cfg.Departments).normalized(), nil
}

// normalized lowercases, trims and de-duplicates keywords per department.
func (m KeywordMap) normalized() KeywordMap {
	out := make(KeywordMap, len(m))
	for dept, kws := range m {
		seen := make(map[string]struct{}, len(kws))
		norm := make([]string, 0, len(kws))
		for _, kw := range kws {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			norm = append(norm, kw)
		}
		if len(norm) > 0 {
			out[dept] = norm
		}
	}
	return out
}

// Departments returns the department names in sorted order.
func (m KeywordMap) Departments() []string {
	out := make([]string, 0, len(m))
	for d := range m {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Attribute returns the departments mentioned by the text, at most once per
// department no matter how many of its keywords match: the first matching
// keyword wins and the remainder are discarded. Departments often share
// vocabulary ("check-in" vs "check-out"), and the dedup keeps one review
// from counting twice into the same department's aggregate.
func (m KeywordMap) Attribute(text string) []string {
	if text == "" {
		return nil
	}
	low := strings.ToLower(text)
	var out []string
	for _, dept := range m.Departments() {
		for _, kw := range m[dept] {
			if strings.Contains(low, kw) {
				out = append(out, dept)
				break
			}
		}
	}
	return out
}

type departmentAcc struct {
	ratings    []float64
	sentiments []float64
	positive   int
}

// DepartmentRollup aggregates mentioning reviews per department: mention
// count, mean overall rating, mean sentiment score, and the share of
// mentioning reviews with a positive (> 0) sentiment score. Sorted
// descending by mean rating. Reviews must already carry their sentiment.
func DepartmentRollup(m KeywordMap, reviews []domain.EnrichedReview) []domain.DepartmentStats {
	accs := make(map[string]*departmentAcc, len(m))
	for _, r := range reviews {
		for _, dept := range m.Attribute(r.Text) {
			acc := accs[dept]
			if acc == nil {
				acc = &departmentAcc{}
				accs[dept] = acc
			}
			acc.ratings = append(acc.ratings, float64(r.OverallRating))
			acc.sentiments = append(acc.sentiments, float64(r.Score))
			if r.Score > 0 {
				acc.positive++
			}
		}
	}

	out := make([]domain.DepartmentStats, 0, len(accs))
	for dept, acc := range accs {
		n := len(acc.ratings)
		out = append(out, domain.DepartmentStats{
			Department:   dept,
			Mentions:     n,
			AvgRating:    stat.Mean(acc.ratings, nil),
			AvgSentiment: stat.Mean(acc.sentiments, nil),
			PctPositive:  float64(acc.positive) / float64(n) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgRating != out[j].AvgRating {
			return out[i].AvgRating > out[j].AvgRating
		}
		return out[i].Department < out[j].Department
	})
	return out
}
