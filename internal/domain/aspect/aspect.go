package aspect

import (
	"strings"
)

// Sentiment is the polarity label of an aspect mention.
type Sentiment string

// Sentiment labels. NotAvailable is never produced by the engine; it marks a
// comparison cell where a product has no data for the aspect.
const (
	Positive     Sentiment = "Positive"
	Negative     Sentiment = "Negative"
	Neutral      Sentiment = "Neutral"
	NotAvailable Sentiment = "N/A"
)

// ParseSentiment normalizes an engine label ("positive", "POSITIVE") to a Sentiment.
// Unknown labels map to Neutral.
func ParseSentiment(s string) Sentiment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return Positive
	case "negative":
		return Negative
	case "n/a":
		return NotAvailable
	default:
		return Neutral
	}
}

// Polarity returns the lower-case polarity class used for styling ("positive", "negative", "neutral", "na").
func (s Sentiment) Polarity() string {
	switch s {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	case NotAvailable:
		return "na"
	default:
		return "neutral"
	}
}

// Signal is one aspect-sentiment judgement produced by the remote engine.
type Signal struct {
	Aspect     string
	Sentiment  Sentiment
	Confidence float64
	Polarity   string
}

// NewSignal builds a Signal, clamping confidence into [0, 1].
// An empty polarity is derived from the sentiment.
func NewSignal(name string, s Sentiment, confidence float64, polarity string) Signal {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	if polarity == "" {
		polarity = s.Polarity()
	}
	return Signal{Aspect: name, Sentiment: s, Confidence: confidence, Polarity: polarity}
}

// Scored is an aspect name with a confidence score, used for top-N aspect lists.
type Scored struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}
