package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"creatorpulse/domain/dto"
	"creatorpulse/domain/repository"
	"creatorpulse/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

type IYouTubeHandler interface {
	GetChannel(c *gin.Context)
	GetVideo(c *gin.Context)
	GetRecentUploads(c *gin.Context)
	GetVideoStatistics(c *gin.Context)
}

type YouTubeHandler struct {
	youtubeRepository repository.IYouTube
}

func NewYouTubeHandler(youtubeRepository repository.IYouTube) IYouTubeHandler {
	return &YouTubeHandler{youtubeRepository: youtubeRepository}
}

// GetChannel looks up a channel so the frontend can validate an id before a
// challenge is created against it.
func (h *YouTubeHandler) GetChannel(c *gin.Context) {
	res := dto.Res{ResponseCode: "200", ResponseMessage: "Success"}
	channel, err := h.youtubeRepository.GetChannelDetails(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while fetching channel")
		res.ResponseCode = "502"
		res.ResponseMessage = "YouTube API error"
		c.JSON(http.StatusBadGateway, res)
		return
	}
	res.Data = channel
	c.JSON(http.StatusOK, res)
}

func (h *YouTubeHandler) GetVideo(c *gin.Context) {
	res := dto.Res{ResponseCode: "200", ResponseMessage: "Success"}
	video, err := h.youtubeRepository.GetVideoDetails(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while fetching video")
		res.ResponseCode = "502"
		res.ResponseMessage = "YouTube API error"
		c.JSON(http.StatusBadGateway, res)
		return
	}
	res.Data = video
	c.JSON(http.StatusOK, res)
}

// GetRecentUploads lists channel uploads published after the optional
// ?since=RFC3339 timestamp, defaulting to the last seven days.
func (h *YouTubeHandler) GetRecentUploads(c *gin.Context) {
	res := dto.Res{ResponseCode: "200", ResponseMessage: "Success"}

	since := time.Now().UTC().AddDate(0, 0, -7)
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			res.ResponseCode = "400"
			res.ResponseMessage = "Bad Request"
			c.JSON(http.StatusBadRequest, res)
			return
		}
		since = parsed
	}
	maxResults := int64(25)
	if raw := c.Query("maxResults"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			maxResults = n
		}
	}

	videos, err := h.youtubeRepository.ListChannelUploads(c.Request.Context(), c.Param("channelId"), since, maxResults)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while listing uploads")
		res.ResponseCode = "502"
		res.ResponseMessage = "YouTube API error"
		c.JSON(http.StatusBadGateway, res)
		return
	}
	res.Data = videos
	c.JSON(http.StatusOK, res)
}

// GetVideoStatistics enriches a comma-separated id list with view counts.
func (h *YouTubeHandler) GetVideoStatistics(c *gin.Context) {
	res := dto.Res{ResponseCode: "200", ResponseMessage: "Success"}
	ids := strings.Split(c.Query("ids"), ",")
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	if len(cleaned) == 0 {
		res.ResponseCode = "400"
		res.ResponseMessage = "Bad Request"
		c.JSON(http.StatusBadRequest, res)
		return
	}

	stats, err := h.youtubeRepository.GetVideoStatistics(c.Request.Context(), cleaned)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while fetching statistics")
		res.ResponseCode = "502"
		res.ResponseMessage = "YouTube API error"
		c.JSON(http.StatusBadGateway, res)
		return
	}
	res.Data = stats
	c.JSON(http.StatusOK, res)
}
