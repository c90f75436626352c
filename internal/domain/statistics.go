package domain

// Statistics are the aggregate counts behind the overview cards.
type Statistics struct {
	TotalPosts       int `json:"totalPosts"`
	FlaggedPosts     int `json:"flaggedPosts"`
	FactCheckedPosts int `json:"factCheckedPosts"`
	FlaggedAuthors   int `json:"flaggedAuthors"`
}
