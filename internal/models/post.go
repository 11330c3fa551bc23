package models

import "time"

// Post keeps the capitalised field names clients already consume.
type Post struct {
	ID               string    `json:"_id"`
	Title            string    `json:"Title"`
	Body             string    `json:"Body"`
	Category         string    `json:"Category"`
	PostDate         time.Time `json:"PostDate"`
	ReadTime         float64   `json:"ReadTime"`
	Excerpt          string    `json:"Excerpt"`
	Tags             []string  `json:"Tags"`
	AuthorName       string    `json:"AuthorName"`
	AuthorID         string    `json:"AuthorID"`
	AuthorImageURL   string    `json:"AuthorImageURL"`
	FeaturedImageURL string    `json:"FeaturedImageURL"`
}

type PostStats struct {
	PostID         string           `json:"postId"`
	TotalViews     uint64           `json:"totalViews"`
	UniqueVisitors uint64           `json:"uniqueVisitors"`
	LastViewedAt   *time.Time       `json:"lastViewedAt,omitempty"`
	ByDevice       map[string]int64 `json:"byDevice"`
	ByBrowser      map[string]int64 `json:"byBrowser"`
}
