package domain

import "time"

// Engagement holds the interaction counters reported for a post.
type Engagement struct {
	Likes    int `json:"likes"`
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
}

// PostAuthor is the author metadata embedded in a post record.
type PostAuthor struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Post mirrors one record of the upstream posts resource. The dashboard
// treats it as a cache of server truth, valid until the next fetch or patch.
type Post struct {
	ID          string     `json:"_id"`
	Platform    string     `json:"platform"`
	Author      PostAuthor `json:"author"`
	Content     string     `json:"content"`
	Timestamp   time.Time  `json:"timestamp"`
	Engagement  Engagement `json:"engagement"`
	Sentiment   string     `json:"sentiment,omitempty"`
	Language    string     `json:"language,omitempty"`
	Flagged     bool       `json:"flagged"`
	FlaggedBy   []string   `json:"flaggedBy,omitempty"`
	FactChecked bool       `json:"factChecked,omitempty"`
	Status      string     `json:"status,omitempty"`
}

// Review statuses for flagged content.
const (
	ReviewPending   = "pending"
	ReviewEscalated = "escalated"
	ReviewReviewed  = "reviewed"
)

// AIAnalysis is the machine assessment attached to a flagged item.
type AIAnalysis struct {
	SentimentScore  float64 `json:"sentimentScore"`
	Language        string  `json:"language"`
	ContentCategory string  `json:"contentCategory"`
}

// FlaggedPost is one entry of the flagged review queue.
type FlaggedPost struct {
	ID             string     `json:"_id"`
	Content        string     `json:"content"`
	ContentType    string     `json:"contentType"`
	FlagReason     string     `json:"flagReason"`
	FlaggedBy      []string   `json:"flaggedBy"`
	Timestamp      time.Time  `json:"timestamp"`
	Author         string     `json:"author"`
	Status         string     `json:"status"`
	AIAnalysis     AIAnalysis `json:"aiAnalysis"`
	ModeratorNotes string     `json:"moderatorNotes,omitempty"`
}
