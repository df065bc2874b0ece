package http

import (
	"net/http"
	"time"

	"creatorpulse/domain/dto"
	"creatorpulse/domain/model"
	"creatorpulse/domain/repository"
	"creatorpulse/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

const platformYouTube = "youtube"

type IYouTubeAuthHandler interface {
	SaveToken(c *gin.Context)
	Status(c *gin.Context)
}

type YouTubeAuthHandler struct {
	tokenRepository repository.IOAuthToken
}

func NewYouTubeAuthHandler(tokenRepository repository.IOAuthToken) IYouTubeAuthHandler {
	return &YouTubeAuthHandler{tokenRepository: tokenRepository}
}

// SaveToken stores the OAuth tokens the frontend obtained for the user's
// YouTube account.
func (h *YouTubeAuthHandler) SaveToken(c *gin.Context) {
	var req dto.YouTubeTokenRequest
	res := dto.Res{ResponseCode: "200", ResponseMessage: "Success"}
	if err := c.ShouldBindJSON(&req); err != nil {
		res.ResponseCode = "400"
		res.ResponseMessage = "Bad Request"
		c.JSON(http.StatusBadRequest, res)
		return
	}

	tok := &model.OAuthToken{
		UserID:       c.GetString("user_id"),
		Platform:     platformYouTube,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		Scopes:       req.Scopes,
	}
	if req.ExpiresAt != "" {
		exp, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			res.ResponseCode = "400"
			res.ResponseMessage = "Bad Request"
			c.JSON(http.StatusBadRequest, res)
			return
		}
		tok.ExpiresAt = &exp
	}

	if err := h.tokenRepository.UpsertToken(c.Request.Context(), tok); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while storing YouTube token")
		res.ResponseCode = "500"
		res.ResponseMessage = "General Error"
		c.JSON(http.StatusInternalServerError, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Status reports whether the user has a linked YouTube account.
func (h *YouTubeAuthHandler) Status(c *gin.Context) {
	res := dto.Res{ResponseCode: "200", ResponseMessage: "Success"}
	tok, err := h.tokenRepository.GetToken(c.Request.Context(), c.GetString("user_id"), platformYouTube)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while fetching YouTube token")
		res.ResponseCode = "500"
		res.ResponseMessage = "General Error"
		c.JSON(http.StatusInternalServerError, res)
		return
	}

	status := dto.YouTubeStatusResponse{}
	if tok != nil {
		status.Connected = true
		status.Scopes = tok.Scopes
		if tok.ExpiresAt != nil {
			status.ExpiresAt = tok.ExpiresAt.Format(time.RFC3339)
		}
	}
	res.Data = status
	c.JSON(http.StatusOK, res)
}
