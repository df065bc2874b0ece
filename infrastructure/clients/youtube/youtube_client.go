package youtube

import (
	"context"
	"fmt"
	"strings"
	"time"

	"creatorpulse/domain/model"
	"creatorpulse/domain/repository"
	"creatorpulse/infrastructure/logger"
	"creatorpulse/infrastructure/utils"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Client implements repository.IYouTube against the YouTube Data API v3.
type Client struct {
	service     *youtube.Service
	oauthConfig *oauth2.Config
	token       *oauth2.Token
	ctx         context.Context
}

// Config carries the credentials for one client instance. API-key mode is
// read-only and sufficient for the tracker; OAuth mode polls on behalf of a
// specific user.
type Config struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURL  string `json:"redirect_url"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	APIKey       string `json:"api_key"`
}

// NewYouTubeClient creates a YouTube API client in API-key or OAuth mode.
func NewYouTubeClient(ctx context.Context, config *Config) (repository.IYouTube, error) {
	if (config.AccessToken == "" || config.RefreshToken == "") && config.APIKey != "" {
		service, err := youtube.NewService(ctx, option.WithAPIKey(config.APIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create YouTube service with API key: %w", err)
		}
		return &Client{service: service, ctx: ctx}, nil
	}

	oauth2Config := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Scopes:       []string{youtube.YoutubeReadonlyScope},
		Endpoint:     google.Endpoint,
	}
	token := &oauth2.Token{
		AccessToken:  config.AccessToken,
		RefreshToken: config.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(-1 * time.Minute), // force refresh on first use
	}
	httpClient := oauth2Config.Client(ctx, token)
	service, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{service: service, oauthConfig: oauth2Config, token: token, ctx: ctx}, nil
}

// ListChannelUploads returns videos published on the channel after the given
// instant. The API orders by publish date descending; callers must not rely on
// that ordering.
func (c *Client) ListChannelUploads(ctx context.Context, channelID string, publishedAfter time.Time, maxResults int64) ([]model.YouTubeVideo, error) {
	if channelID == "" {
		return nil, fmt.Errorf("channel ID is required")
	}
	if maxResults <= 0 || maxResults > 50 {
		maxResults = 50
	}

	call := c.service.Search.List([]string{"id", "snippet"}).
		Context(ctx).
		ChannelId(channelID).
		Type("video").
		Order("date").
		MaxResults(maxResults).
		PublishedAfter(publishedAfter.UTC().Format(time.RFC3339))

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list channel uploads: %w", err)
	}

	videos := make([]model.YouTubeVideo, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			logger.GetLogger().WithFields(map[string]interface{}{
				"video_id":     item.Id.VideoId,
				"published_at": item.Snippet.PublishedAt,
			}).Warn("youtube: unparseable publish timestamp, skipping candidate")
			continue
		}
		videos = append(videos, model.YouTubeVideo{
			ID:          item.Id.VideoId,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			PublishedAt: publishedAt,
			ChannelID:   item.Snippet.ChannelId,
			ChannelName: item.Snippet.ChannelTitle,
		})
	}
	return videos, nil
}

// GetVideoStatistics enriches the given ids with engagement counts and
// duration. The result may be partial; ids the API omits are absent from the
// map.
func (c *Client) GetVideoStatistics(ctx context.Context, videoIDs []string) (map[string]model.YouTubeVideoStatistics, error) {
	if len(videoIDs) == 0 {
		return map[string]model.YouTubeVideoStatistics{}, nil
	}
	response, err := c.service.Videos.List([]string{"statistics", "contentDetails"}).
		Context(ctx).
		Id(strings.Join(videoIDs, ",")).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video statistics: %w", err)
	}

	out := make(map[string]model.YouTubeVideoStatistics, len(response.Items))
	for _, video := range response.Items {
		var stats model.YouTubeVideoStatistics
		if video.Statistics != nil {
			stats.ViewCount = int64(video.Statistics.ViewCount)
			stats.LikeCount = int64(video.Statistics.LikeCount)
			stats.CommentCount = int64(video.Statistics.CommentCount)
		}
		if video.ContentDetails != nil && video.ContentDetails.Duration != "" {
			seconds, err := utils.ParseISO8601Duration(video.ContentDetails.Duration)
			if err != nil {
				logger.GetLogger().WithFields(map[string]interface{}{
					"video_id": video.Id,
					"duration": video.ContentDetails.Duration,
				}).Warn("youtube: unparseable duration")
			} else {
				stats.DurationSeconds = seconds
			}
		}
		out[video.Id] = stats
	}
	return out, nil
}

// GetVideoDetails retrieves full details for a specific video.
func (c *Client) GetVideoDetails(ctx context.Context, videoID string) (*model.YouTubeVideo, error) {
	response, err := c.service.Videos.List([]string{"snippet", "statistics", "contentDetails", "status"}).
		Context(ctx).
		Id(videoID).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}
	if len(response.Items) == 0 {
		return nil, fmt.Errorf("video not found: %s", videoID)
	}
	v := c.convertToYouTubeVideo(response.Items[0])
	return &v, nil
}

// GetChannelDetails retrieves details for a specific channel.
func (c *Client) GetChannelDetails(ctx context.Context, channelID string) (*model.YouTubeChannel, error) {
	response, err := c.service.Channels.List([]string{"snippet", "statistics"}).
		Context(ctx).
		Id(channelID).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel details: %w", err)
	}
	if len(response.Items) == 0 {
		return nil, fmt.Errorf("channel not found: %s", channelID)
	}

	channel := response.Items[0]
	publishedAt, _ := time.Parse(time.RFC3339, channel.Snippet.PublishedAt)
	ytChannel := &model.YouTubeChannel{
		ID:          channel.Id,
		Title:       channel.Snippet.Title,
		Description: channel.Snippet.Description,
		CustomURL:   channel.Snippet.CustomUrl,
		PublishedAt: publishedAt,
	}
	if channel.Statistics != nil {
		ytChannel.ViewCount = int64(channel.Statistics.ViewCount)
		ytChannel.SubscriberCount = int64(channel.Statistics.SubscriberCount)
		ytChannel.VideoCount = int64(channel.Statistics.VideoCount)
	}
	return ytChannel, nil
}

func (c *Client) convertToYouTubeVideo(video *youtube.Video) model.YouTubeVideo {
	publishedAt, _ := time.Parse(time.RFC3339, video.Snippet.PublishedAt)
	ytVideo := model.YouTubeVideo{
		ID:          video.Id,
		Title:       video.Snippet.Title,
		Description: video.Snippet.Description,
		PublishedAt: publishedAt,
		ChannelID:   video.Snippet.ChannelId,
		ChannelName: video.Snippet.ChannelTitle,
		Tags:        video.Snippet.Tags,
	}
	if video.Statistics != nil {
		ytVideo.ViewCount = int64(video.Statistics.ViewCount)
		ytVideo.LikeCount = int64(video.Statistics.LikeCount)
		ytVideo.CommentCount = int64(video.Statistics.CommentCount)
	}
	if video.ContentDetails != nil && video.ContentDetails.Duration != "" {
		if seconds, err := utils.ParseISO8601Duration(video.ContentDetails.Duration); err == nil {
			ytVideo.DurationSeconds = seconds
		}
	}
	if video.Status != nil {
		ytVideo.Status = video.Status.PrivacyStatus
	}
	return ytVideo
}
