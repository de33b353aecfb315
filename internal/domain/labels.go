package domain

import (
	"encoding/json"
	"fmt"
)

// SentimentLabel is the coarse polarity of a review's sentiment score.
type SentimentLabel int

const (
	LabelNegative SentimentLabel = -1
	LabelNeutral  SentimentLabel = 0
	LabelPositive SentimentLabel = 1
)

var labelNames = map[SentimentLabel]string{
	LabelNegative: "Negative",
	LabelNeutral:  "Neutral",
	LabelPositive: "Positive",
}

var labelFromName = map[string]SentimentLabel{
	"Negative": LabelNegative,
	"Neutral":  LabelNeutral,
	"Positive": LabelPositive,
}

func (l SentimentLabel) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("SentimentLabel(%d)", int(l))
}

func (l SentimentLabel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *SentimentLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := labelFromName[s]
	if !ok {
		return fmt.Errorf("domain: unknown sentiment label: %q", s)
	}
	*l = v
	return nil
}

// ParseSentimentLabel converts a stored label name back to its value.
func ParseSentimentLabel(s string) (SentimentLabel, error) {
	v, ok := labelFromName[s]
	if !ok {
		return LabelNeutral, fmt.Errorf("domain: unknown sentiment label: %q", s)
	}
	return v, nil
}

// NPSCategory is the rating-derived loyalty segment of a guest.
type NPSCategory int

const (
	Detractor NPSCategory = iota
	Passive
	Promoter
)

var npsNames = map[NPSCategory]string{
	Detractor: "Detractor",
	Passive:   "Passive",
	Promoter:  "Promoter",
}

func (c NPSCategory) String() string {
	if name, ok := npsNames[c]; ok {
		return name
	}
	return fmt.Sprintf("NPSCategory(%d)", int(c))
}

func (c NPSCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Polarity is the fixed polarity of a lexicon word.
type Polarity int

const (
	Negative Polarity = -1
	Positive Polarity = 1
)

func (p Polarity) String() string {
	switch p {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	}
	return fmt.Sprintf("Polarity(%d)", int(p))
}

// Lexicon maps a case-normalized word to its polarity. Loaded once before
// scoring begins and never mutated afterwards.
type Lexicon map[string]Polarity
