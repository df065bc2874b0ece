package model

import "time"

// YouTubeVideo represents a YouTube video as returned by the platform API.
// Statistics are zero until enriched; enrichment is best-effort.
type YouTubeVideo struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PublishedAt  time.Time `json:"published_at"`
	ChannelID    string    `json:"channel_id"`
	ChannelName  string    `json:"channel_name"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	// DurationSeconds is parsed from the API's ISO-8601 duration (PT#H#M#S).
	DurationSeconds int64    `json:"duration_seconds"`
	Tags            []string `json:"tags,omitempty"`
	Status          string   `json:"status,omitempty"`
}

// WatchURL returns the public watch link for the video.
func (v *YouTubeVideo) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// YouTubeVideoStatistics is the enrichment payload for one video.
type YouTubeVideoStatistics struct {
	ViewCount       int64 `json:"view_count"`
	LikeCount       int64 `json:"like_count"`
	CommentCount    int64 `json:"comment_count"`
	DurationSeconds int64 `json:"duration_seconds"`
}

// YouTubeChannel represents a YouTube channel
type YouTubeChannel struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CustomURL       string    `json:"custom_url"`
	PublishedAt     time.Time `json:"published_at"`
	SubscriberCount int64     `json:"subscriber_count"`
	VideoCount      int64     `json:"video_count"`
	ViewCount       int64     `json:"view_count"`
}
