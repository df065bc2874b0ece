package http

import (
	"errors"
	"net/http"
	"time"

	"creatorpulse/domain/dto"
	"creatorpulse/infrastructure/logger"
	"creatorpulse/usecase"

	"github.com/gin-gonic/gin"
)

type TrackerHandler struct {
	trackerUsecase usecase.ITrackerUsecase
}

func NewTrackerHandler(trackerUsecase usecase.ITrackerUsecase) *TrackerHandler {
	return &TrackerHandler{trackerUsecase: trackerUsecase}
}

// Run executes one tracking cycle on demand. The scheduler hits this
// endpoint, but it can also be curled manually when debugging.
func (h *TrackerHandler) Run(ctx *gin.Context) {
	stats, err := h.trackerUsecase.RunCycle(ctx.Request.Context(), time.Now().UTC())
	if err != nil {
		if errors.Is(err, usecase.ErrTrackingDisabled) {
			ctx.JSON(http.StatusServiceUnavailable, dto.TrackerRunResponse{
				Success: false,
				Message: "Upload tracking is not configured",
				Stats:   stats,
			})
			return
		}
		logger.GetLogger().WithField("error", err).Error("tracker cycle failed")
		ctx.JSON(http.StatusInternalServerError, dto.TrackerRunResponse{
			Success: false,
			Message: "Upload tracking failed",
			Stats:   stats,
		})
		return
	}
	ctx.JSON(http.StatusOK, dto.TrackerRunResponse{
		Success: true,
		Message: "Upload tracking completed",
		Stats:   stats,
	})
}

// Describe answers GET probes so uptime checks do not trigger a cycle.
func (h *TrackerHandler) Describe(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Upload tracker is registered. POST with the cron secret to run a cycle.",
	})
}
