package model

import "encoding/json"

// SignalType is the recommended trading action.
type SignalType string

const (
	SignalBuy   SignalType = "buy"
	SignalSell  SignalType = "sell"
	SignalEntry SignalType = "entry"
)

// Confidence grades how strongly a signal is held.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ConfidenceFromScore maps a 0..1 model score onto a confidence label.
func ConfidenceFromScore(score float64) Confidence {
	switch {
	case score >= 0.7:
		return ConfidenceHigh
	case score >= 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Signal is a trading recommendation derived from analyzed news.
type Signal struct {
	ID         string     `json:"id"`
	Type       SignalType `json:"type"`
	Symbol     string     `json:"symbol"`
	Price      float64    `json:"price"`
	Timestamp  string     `json:"timestamp"`
	Confidence Confidence `json:"confidence"`
	Reason     string     `json:"reason"`
}

// UnmarshalJSON accepts numeric ids, a null price and numeric confidence
// scores alongside the documented shape.
func (s *Signal) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         json.RawMessage `json:"id"`
		Type       json.RawMessage `json:"type"`
		Symbol     json.RawMessage `json:"symbol"`
		Price      json.RawMessage `json:"price"`
		Timestamp  json.RawMessage `json:"timestamp"`
		Confidence json.RawMessage `json:"confidence"`
		Reason     json.RawMessage `json:"reason"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Signal{
		ID:         looseString(raw.ID),
		Type:       SignalType(looseString(raw.Type)),
		Symbol:     looseString(raw.Symbol),
		Price:      looseFloat(raw.Price),
		Timestamp:  looseString(raw.Timestamp),
		Confidence: decodeConfidence(raw.Confidence),
		Reason:     looseString(raw.Reason),
	}
	return nil
}

func decodeConfidence(data json.RawMessage) Confidence {
	var label string
	if json.Unmarshal(data, &label) == nil {
		return Confidence(label)
	}
	var score float64
	if json.Unmarshal(data, &score) == nil {
		return ConfidenceFromScore(score)
	}
	return ""
}
