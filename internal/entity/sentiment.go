package entity

import "time"

// Sentiment polarity labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Message type labels.
const (
	MessageInformative = "informative"
	MessageEmotional   = "emotional"
)

// SentimentMessage is a classified news or social message.
type SentimentMessage struct {
	Text      string `json:"text"`
	Source    string `json:"source"`
	URL       string `json:"url"`
	Sentiment string `json:"sentiment"`
	Type      string `json:"type"`
	IsLawsuit bool   `json:"is_lawsuit"`
}

// NewsItem is one entry of a news feed.
type NewsItem struct {
	Headline    string     `json:"headline"`
	Source      string     `json:"source"`
	URL         string     `json:"url"`
	Summary     string     `json:"summary,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}
