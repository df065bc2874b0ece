package repository

import (
	"context"
	"time"

	"creatorpulse/domain/model"
)

// IYouTube is the platform poller contract. Implementations are rate-limited
// upstream; callers bound each call with a context deadline.
type IYouTube interface {
	// ListChannelUploads returns videos published on the channel after the
	// given instant, newest first. Callers must not rely on the ordering.
	ListChannelUploads(ctx context.Context, channelID string, publishedAfter time.Time, maxResults int64) ([]model.YouTubeVideo, error)
	// GetVideoStatistics enriches the given video ids with engagement counts
	// and duration. Partial results are valid: a missing id means the API did
	// not return statistics for it.
	GetVideoStatistics(ctx context.Context, videoIDs []string) (map[string]model.YouTubeVideoStatistics, error)
	GetVideoDetails(ctx context.Context, videoID string) (*model.YouTubeVideo, error)
	GetChannelDetails(ctx context.Context, channelID string) (*model.YouTubeChannel, error)
}
