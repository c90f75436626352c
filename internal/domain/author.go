package domain

// Author is one watchlist entry: a tracked handle on a platform.
type Author struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Platform  string `json:"platform"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Followers int    `json:"followers"`
	Posts     int    `json:"posts"`
	Flagged   bool   `json:"flagged"`
}
