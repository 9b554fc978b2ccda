package domain

import "time"

// Article represents a popular Wikipedia article as shown in the feed
type Article struct {
	Project      string    `json:"project"`
	Article      string    `json:"article"`
	Title        string    `json:"title"`
	Abstract     string    `json:"abstract"`
	ArticleURL   string    `json:"articleURL"`
	ImageURL     string    `json:"imageURL,omitempty"`
	ThumbnailURL string    `json:"thumbnailURL,omitempty"`
	DailyViews   int64     `json:"dailyViews"`
	Retrieved    time.Time `json:"-"`
}

// HasImage reports whether the article carries any media to display
func (a Article) HasImage() bool {
	return a.ThumbnailURL != "" || a.ImageURL != ""
}
