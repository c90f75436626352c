package domain

import "time"

// SentimentBreakdown is a positive/neutral/negative share of tracked posts.
type SentimentBreakdown struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// SentimentPoint is one day of a topic's sentiment history.
type SentimentPoint struct {
	Date     string  `json:"date"`
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Topic is a saved tracking query the upstream service collects posts for.
type Topic struct {
	ID               string             `json:"_id"`
	Name             string             `json:"name"`
	Description      string             `json:"description,omitempty"`
	Tags             []string           `json:"tags,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	Active           bool               `json:"active"`
	AlertThreshold   int                `json:"alertThreshold,omitempty"`
	Sentiment        SentimentBreakdown `json:"sentiment"`
	SentimentHistory []SentimentPoint   `json:"sentimentHistory,omitempty"`
}

// TopicInput is the payload for creating or updating a topic.
type TopicInput struct {
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Active         bool     `json:"active"`
	AlertThreshold int      `json:"alertThreshold,omitempty"`
}
