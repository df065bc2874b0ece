package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"creatorpulse/domain/dto"
	"creatorpulse/interfaces/middleware"
	"creatorpulse/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTrackerUsecase struct {
	mock.Mock
}

func (m *MockTrackerUsecase) RunCycle(ctx context.Context, now time.Time) (dto.TrackerRunStats, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(dto.TrackerRunStats), args.Error(1)
}

func newJobRouter(trackerUsecase *MockTrackerUsecase, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewTrackerHandler(trackerUsecase)
	jobs := router.Group("/jobs")
	jobs.Use(middleware.CronAuth(secret))
	jobs.POST("/upload-tracker", handler.Run)
	jobs.GET("/upload-tracker", handler.Describe)
	return router
}

func TestTrackerHandler_Run(t *testing.T) {
	trackerUsecase := new(MockTrackerUsecase)
	trackerUsecase.On("RunCycle", mock.Anything, mock.Anything).
		Return(dto.TrackerRunStats{ChallengesChecked: 3, VideosDetected: 5, UploadsRecorded: 2, MissedUploads: 1}, nil)
	router := newJobRouter(trackerUsecase, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/jobs/upload-tracker", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res dto.TrackerRunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, 3, res.Stats.ChallengesChecked)
	assert.Equal(t, 5, res.Stats.VideosDetected)
	assert.Equal(t, 2, res.Stats.UploadsRecorded)
	assert.Equal(t, 1, res.Stats.MissedUploads)
}

func TestTrackerHandler_Run_WrongSecret(t *testing.T) {
	trackerUsecase := new(MockTrackerUsecase)
	router := newJobRouter(trackerUsecase, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/jobs/upload-tracker", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	trackerUsecase.AssertNotCalled(t, "RunCycle", mock.Anything, mock.Anything)
}

func TestTrackerHandler_Run_MissingAuthorization(t *testing.T) {
	trackerUsecase := new(MockTrackerUsecase)
	router := newJobRouter(trackerUsecase, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/jobs/upload-tracker", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	trackerUsecase.AssertNotCalled(t, "RunCycle", mock.Anything, mock.Anything)
}

func TestTrackerHandler_Run_CycleFailure(t *testing.T) {
	trackerUsecase := new(MockTrackerUsecase)
	trackerUsecase.On("RunCycle", mock.Anything, mock.Anything).
		Return(dto.TrackerRunStats{}, errors.New("db down"))
	router := newJobRouter(trackerUsecase, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/jobs/upload-tracker", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var res dto.TrackerRunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Success)
}

func TestTrackerHandler_Describe_NoSecretRequired(t *testing.T) {
	trackerUsecase := new(MockTrackerUsecase)
	router := newJobRouter(trackerUsecase, "s3cret")

	req := httptest.NewRequest(http.MethodGet, "/jobs/upload-tracker", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Upload tracker")
	trackerUsecase.AssertNotCalled(t, "RunCycle", mock.Anything, mock.Anything)
}

func TestTrackerHandler_Run_TrackingDisabled(t *testing.T) {
	trackerUsecase := new(MockTrackerUsecase)
	trackerUsecase.On("RunCycle", mock.Anything, mock.Anything).
		Return(dto.TrackerRunStats{}, usecase.ErrTrackingDisabled)
	router := newJobRouter(trackerUsecase, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/jobs/upload-tracker", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var res dto.TrackerRunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Success)
	assert.Equal(t, "Upload tracking is not configured", res.Message)
}
