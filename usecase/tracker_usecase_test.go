package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"creatorpulse/domain/model"
	"creatorpulse/domain/repository"
	"creatorpulse/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations

type MockChallengeRepo struct {
	mock.Mock
}

func (m *MockChallengeRepo) Create(ctx context.Context, ch *model.Challenge) error {
	args := m.Called(ctx, ch)
	return args.Error(0)
}

func (m *MockChallengeRepo) GetByID(ctx context.Context, id string) (*model.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockChallengeRepo) ListByUser(ctx context.Context, userID string) ([]*model.Challenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Challenge), args.Error(1)
}

func (m *MockChallengeRepo) ListDueForTracking(ctx context.Context, now time.Time) ([]*model.Challenge, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Challenge), args.Error(1)
}

func (m *MockChallengeRepo) UpdateTrackingState(ctx context.Context, ch *model.Challenge) error {
	args := m.Called(ctx, ch)
	return args.Error(0)
}

func (m *MockChallengeRepo) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockUploadRepo struct {
	mock.Mock
}

func (m *MockUploadRepo) FindInWindow(ctx context.Context, challengeID string, slotStart, slotDeadline time.Time) (*model.UploadRecord, error) {
	args := m.Called(ctx, challengeID, slotStart, slotDeadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadRecord), args.Error(1)
}

func (m *MockUploadRepo) Create(ctx context.Context, rec *model.UploadRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockUploadRepo) ListByChallenge(ctx context.Context, challengeID string) ([]*model.UploadRecord, error) {
	args := m.Called(ctx, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.UploadRecord), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetById(ctx context.Context, id int) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepo) GetByUserName(ctx context.Context, userName string) (model.User, error) {
	args := m.Called(ctx, userName)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepo) CreateUser(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockPoller struct {
	mock.Mock
}

func (m *MockPoller) ListChannelUploads(ctx context.Context, channelID string, publishedAfter time.Time, maxResults int64) ([]model.YouTubeVideo, error) {
	args := m.Called(ctx, channelID, publishedAfter, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.YouTubeVideo), args.Error(1)
}

func (m *MockPoller) GetVideoStatistics(ctx context.Context, videoIDs []string) (map[string]model.YouTubeVideoStatistics, error) {
	args := m.Called(ctx, videoIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.YouTubeVideoStatistics), args.Error(1)
}

func (m *MockPoller) GetVideoDetails(ctx context.Context, videoID string) (*model.YouTubeVideo, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.YouTubeVideo), args.Error(1)
}

func (m *MockPoller) GetChannelDetails(ctx context.Context, channelID string) (*model.YouTubeChannel, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.YouTubeChannel), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendUploadConfirmation(ctx context.Context, user model.User, ch *model.Challenge, pointsEarned int, streak int, onTime bool) {
	m.Called(ctx, user, ch, pointsEarned, streak, onTime)
}

func (m *MockNotifier) SendMissedUpload(ctx context.Context, user model.User, ch *model.Challenge, penaltyPoints int, missedDays int) {
	m.Called(ctx, user, ch, penaltyPoints, missedDays)
}

type MockTrackerRun struct {
	mock.Mock
}

func (m *MockTrackerRun) Insert(ctx context.Context, run *model.TrackerRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func newTestChallenge(start time.Time) *model.Challenge {
	ch := &model.Challenge{
		ID:               "ch-1",
		UserID:           "creator",
		ChannelID:        "UC123",
		Status:           model.ChallengeStatusActive,
		DurationMonths:   1,
		CadenceEveryDays: 2,
		ItemsPerCadence:  1,
		StartedAt:        start,
		NotifyEnabled:    true,
		Progress:         usecase.GenerateSchedule(start, 1, 2, 1),
	}
	d := ch.Progress[0].Deadline
	ch.NextUploadDeadline = &d
	return ch
}

func newTracker(
	challengeRepo *MockChallengeRepo,
	uploadRepo *MockUploadRepo,
	userRepo *MockUserRepo,
	poller *MockPoller,
	notifier *MockNotifier,
) *usecase.TrackerUsecase {
	return usecase.NewTrackerUsecase(challengeRepo, uploadRepo, userRepo, poller, notifier).
		WithWorkers(1).
		WithPollTimeout(time.Second)
}

func TestRunCycle_OnTimeUploadRecorded(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	userRepo := new(MockUserRepo)
	poller := new(MockPoller)
	notifier := new(MockNotifier)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ch := newTestChallenge(start)
	now := start.AddDate(0, 0, 1)
	publishedAt := start.Add(12 * time.Hour)

	challengeRepo.On("ListDueForTracking", mock.Anything, now).Return([]*model.Challenge{ch}, nil)
	uploadRepo.On("FindInWindow", mock.Anything, "ch-1", start, ch.Progress[0].Deadline).Return(nil, nil)
	poller.On("ListChannelUploads", mock.Anything, "UC123", start.Add(-time.Second), int64(50)).
		Return([]model.YouTubeVideo{{ID: "vid-1", Title: "day one", PublishedAt: publishedAt}}, nil)
	poller.On("GetVideoStatistics", mock.Anything, []string{"vid-1"}).
		Return(map[string]model.YouTubeVideoStatistics{"vid-1": {ViewCount: 100, LikeCount: 9, CommentCount: 2, DurationSeconds: 300}}, nil)
	uploadRepo.On("Create", mock.Anything, mock.MatchedBy(func(rec *model.UploadRecord) bool {
		return rec.ChallengeID == "ch-1" &&
			rec.VideoID == "vid-1" &&
			rec.OnTime &&
			rec.PointsEarned == 15 &&
			rec.ViewCount == 100
	})).Return(nil)
	challengeRepo.On("UpdateTrackingState", mock.Anything, ch).Return(nil)
	userRepo.On("GetByUserName", mock.Anything, "creator").Return(model.User{UserName: "creator"}, nil)
	notifier.On("SendUploadConfirmation", mock.Anything, mock.Anything, ch, 15, 1, true).Return()

	tracker := newTracker(challengeRepo, uploadRepo, userRepo, poller, notifier)
	stats, err := tracker.RunCycle(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.ChallengesChecked)
	assert.Equal(t, 1, stats.VideosDetected)
	assert.Equal(t, 1, stats.UploadsRecorded)
	assert.Equal(t, 0, stats.MissedUploads)
	assert.Equal(t, 15, ch.PointsEarned)
	assert.Equal(t, 1, ch.StreakCount)
	require.NotNil(t, ch.NextUploadDeadline)
	assert.Equal(t, ch.Progress[1].Deadline, *ch.NextUploadDeadline)
	challengeRepo.AssertExpectations(t)
	uploadRepo.AssertExpectations(t)
	poller.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRunCycle_ExistingRecordSkipsPolling(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	userRepo := new(MockUserRepo)
	poller := new(MockPoller)
	notifier := new(MockNotifier)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ch := newTestChallenge(start)
	now := start.AddDate(0, 0, 3)

	challengeRepo.On("ListDueForTracking", mock.Anything, now).Return([]*model.Challenge{ch}, nil)
	uploadRepo.On("FindInWindow", mock.Anything, "ch-1", start, ch.Progress[0].Deadline).
		Return(&model.UploadRecord{ChallengeID: "ch-1", VideoID: "vid-0"}, nil)

	tracker := newTracker(challengeRepo, uploadRepo, userRepo, poller, notifier)
	stats, err := tracker.RunCycle(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 0, stats.UploadsRecorded)
	assert.Equal(t, 0, stats.MissedUploads)
	poller.AssertNotCalled(t, "ListChannelUploads", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uploadRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	challengeRepo.AssertNotCalled(t, "UpdateTrackingState", mock.Anything, mock.Anything)
}

func TestRunCycle_PollFailureDoesNotTransition(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	userRepo := new(MockUserRepo)
	poller := new(MockPoller)
	notifier := new(MockNotifier)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ch := newTestChallenge(start)
	// Well past deadline + grace: an API failure must still not mark a miss.
	now := start.AddDate(0, 0, 5)

	challengeRepo.On("ListDueForTracking", mock.Anything, now).Return([]*model.Challenge{ch}, nil)
	uploadRepo.On("FindInWindow", mock.Anything, "ch-1", start, ch.Progress[0].Deadline).Return(nil, nil)
	poller.On("ListChannelUploads", mock.Anything, "UC123", start.Add(-time.Second), int64(50)).
		Return(nil, errors.New("quota exceeded"))

	tracker := newTracker(challengeRepo, uploadRepo, userRepo, poller, notifier)
	stats, err := tracker.RunCycle(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 0, stats.MissedUploads)
	assert.Equal(t, 0, ch.MissedDays)
	challengeRepo.AssertNotCalled(t, "UpdateTrackingState", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "SendMissedUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunCycle_MissedPastGracePeriod(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	userRepo := new(MockUserRepo)
	poller := new(MockPoller)
	notifier := new(MockNotifier)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ch := newTestChallenge(start)
	ch.PointsEarned = 130
	ch.StreakCount = 4
	now := ch.Progress[0].Deadline.Add(usecase.GracePeriod + time.Minute)

	challengeRepo.On("ListDueForTracking", mock.Anything, now).Return([]*model.Challenge{ch}, nil)
	uploadRepo.On("FindInWindow", mock.Anything, "ch-1", start, ch.Progress[0].Deadline).Return(nil, nil)
	poller.On("ListChannelUploads", mock.Anything, "UC123", start.Add(-time.Second), int64(50)).
		Return([]model.YouTubeVideo{}, nil)
	challengeRepo.On("UpdateTrackingState", mock.Anything, ch).Return(nil)
	userRepo.On("GetByUserName", mock.Anything, "creator").Return(model.User{UserName: "creator"}, nil)
	notifier.On("SendMissedUpload", mock.Anything, mock.Anything, ch, usecase.MissPenalty, 1).Return()

	tracker := newTracker(challengeRepo, uploadRepo, userRepo, poller, notifier)
	stats, err := tracker.RunCycle(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.MissedUploads)
	assert.Equal(t, 80, ch.PointsEarned)
	assert.Equal(t, 0, ch.StreakCount)
	assert.Equal(t, 1, ch.MissedDays)
	assert.True(t, ch.Progress[0].Missed)
	assert.Nil(t, ch.NextUploadDeadline)
	notifier.AssertExpectations(t)
}

func TestRunCycle_PendingInsideGracePeriod(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	userRepo := new(MockUserRepo)
	poller := new(MockPoller)
	notifier := new(MockNotifier)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ch := newTestChallenge(start)
	now := ch.Progress[0].Deadline.Add(time.Hour)

	challengeRepo.On("ListDueForTracking", mock.Anything, now).Return([]*model.Challenge{ch}, nil)
	uploadRepo.On("FindInWindow", mock.Anything, "ch-1", start, ch.Progress[0].Deadline).Return(nil, nil)
	poller.On("ListChannelUploads", mock.Anything, "UC123", start.Add(-time.Second), int64(50)).
		Return([]model.YouTubeVideo{}, nil)

	tracker := newTracker(challengeRepo, uploadRepo, userRepo, poller, notifier)
	stats, err := tracker.RunCycle(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 0, stats.UploadsRecorded)
	assert.Equal(t, 0, stats.MissedUploads)
	challengeRepo.AssertNotCalled(t, "UpdateTrackingState", mock.Anything, mock.Anything)
}

func TestRunCycle_DuplicateInsertSkipsTransition(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	userRepo := new(MockUserRepo)
	poller := new(MockPoller)
	notifier := new(MockNotifier)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ch := newTestChallenge(start)
	now := start.AddDate(0, 0, 1)

	challengeRepo.On("ListDueForTracking", mock.Anything, now).Return([]*model.Challenge{ch}, nil)
	uploadRepo.On("FindInWindow", mock.Anything, "ch-1", start, ch.Progress[0].Deadline).Return(nil, nil)
	poller.On("ListChannelUploads", mock.Anything, "UC123", start.Add(-time.Second), int64(50)).
		Return([]model.YouTubeVideo{{ID: "vid-1", PublishedAt: start.Add(time.Hour)}}, nil)
	poller.On("GetVideoStatistics", mock.Anything, []string{"vid-1"}).
		Return(map[string]model.YouTubeVideoStatistics{}, nil)
	uploadRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateUpload)

	runRepo := new(MockTrackerRun)
	runRepo.On("Insert", mock.Anything, mock.MatchedBy(func(run *model.TrackerRun) bool {
		return run.Errors == 0 && run.UploadsRecorded == 0
	})).Return(nil)

	tracker := newTracker(challengeRepo, uploadRepo, userRepo, poller, notifier).WithRunAudit(runRepo)
	stats, err := tracker.RunCycle(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 0, stats.UploadsRecorded)
	assert.Equal(t, 0, ch.PointsEarned)
	challengeRepo.AssertNotCalled(t, "UpdateTrackingState", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "SendUploadConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	// A lost duplicate race is an expected outcome, not a cycle error.
	runRepo.AssertExpectations(t)
}

func TestRunCycle_EnrichmentFailureStillRecords(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	userRepo := new(MockUserRepo)
	poller := new(MockPoller)
	notifier := new(MockNotifier)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ch := newTestChallenge(start)
	ch.NotifyEnabled = false
	now := start.AddDate(0, 0, 1)

	challengeRepo.On("ListDueForTracking", mock.Anything, now).Return([]*model.Challenge{ch}, nil)
	uploadRepo.On("FindInWindow", mock.Anything, "ch-1", start, ch.Progress[0].Deadline).Return(nil, nil)
	poller.On("ListChannelUploads", mock.Anything, "UC123", start.Add(-time.Second), int64(50)).
		Return([]model.YouTubeVideo{{ID: "vid-1", PublishedAt: start.Add(time.Hour)}}, nil)
	poller.On("GetVideoStatistics", mock.Anything, []string{"vid-1"}).
		Return(nil, errors.New("quota exceeded"))
	uploadRepo.On("Create", mock.Anything, mock.MatchedBy(func(rec *model.UploadRecord) bool {
		return rec.VideoID == "vid-1" && rec.ViewCount == 0 && rec.DurationSeconds == 0
	})).Return(nil)
	challengeRepo.On("UpdateTrackingState", mock.Anything, ch).Return(nil)

	tracker := newTracker(challengeRepo, uploadRepo, userRepo, poller, notifier)
	stats, err := tracker.RunCycle(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.UploadsRecorded)
	uploadRepo.AssertExpectations(t)
}

func TestRunCycle_FailuresIsolatedPerChallenge(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	userRepo := new(MockUserRepo)
	poller := new(MockPoller)
	notifier := new(MockNotifier)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	broken := newTestChallenge(start)
	broken.ID = "ch-broken"
	broken.ChannelID = "UCbroken"
	healthy := newTestChallenge(start)
	healthy.ID = "ch-healthy"
	healthy.ChannelID = "UChealthy"
	healthy.NotifyEnabled = false
	now := start.AddDate(0, 0, 1)

	challengeRepo.On("ListDueForTracking", mock.Anything, now).Return([]*model.Challenge{broken, healthy}, nil)
	uploadRepo.On("FindInWindow", mock.Anything, "ch-broken", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
	uploadRepo.On("FindInWindow", mock.Anything, "ch-healthy", mock.Anything, mock.Anything).Return(nil, nil)
	poller.On("ListChannelUploads", mock.Anything, "UChealthy", start.Add(-time.Second), int64(50)).
		Return([]model.YouTubeVideo{{ID: "vid-h", PublishedAt: start.Add(time.Hour)}}, nil)
	poller.On("GetVideoStatistics", mock.Anything, []string{"vid-h"}).
		Return(map[string]model.YouTubeVideoStatistics{}, nil)
	uploadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	challengeRepo.On("UpdateTrackingState", mock.Anything, healthy).Return(nil)

	tracker := newTracker(challengeRepo, uploadRepo, userRepo, poller, notifier)
	stats, err := tracker.RunCycle(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.ChallengesChecked)
	assert.Equal(t, 1, stats.UploadsRecorded)
	poller.AssertNotCalled(t, "ListChannelUploads", mock.Anything, "UCbroken", mock.Anything, mock.Anything)
}

func TestRunCycle_NullDeadlineRederived(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	userRepo := new(MockUserRepo)
	poller := new(MockPoller)
	notifier := new(MockNotifier)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ch := newTestChallenge(start)
	// A missed transition left the first slot resolved and the deadline null.
	ch.Progress[0].Missed = true
	ch.NextUploadDeadline = nil
	now := start.Add(time.Hour)

	challengeRepo.On("ListDueForTracking", mock.Anything, now).Return([]*model.Challenge{ch}, nil)
	challengeRepo.On("UpdateTrackingState", mock.Anything, ch).Return(nil)

	tracker := newTracker(challengeRepo, uploadRepo, userRepo, poller, notifier)
	stats, err := tracker.RunCycle(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 0, stats.UploadsRecorded)
	require.NotNil(t, ch.NextUploadDeadline)
	assert.Equal(t, ch.Progress[1].Deadline, *ch.NextUploadDeadline)
	poller.AssertNotCalled(t, "ListChannelUploads", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	challengeRepo.AssertExpectations(t)
}

func TestRunCycle_AllSlotsResolvedCompletesChallenge(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	userRepo := new(MockUserRepo)
	poller := new(MockPoller)
	notifier := new(MockNotifier)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ch := newTestChallenge(start)
	for i := range ch.Progress {
		ch.Progress[i].Uploaded = true
	}
	ch.NextUploadDeadline = nil
	now := start.AddDate(0, 1, 0)

	challengeRepo.On("ListDueForTracking", mock.Anything, now).Return([]*model.Challenge{ch}, nil)
	challengeRepo.On("UpdateStatus", mock.Anything, "ch-1", model.ChallengeStatusCompleted).Return(nil)

	tracker := newTracker(challengeRepo, uploadRepo, userRepo, poller, notifier)
	_, err := tracker.RunCycle(context.Background(), now)

	require.NoError(t, err)
	challengeRepo.AssertExpectations(t)
}

func TestRunCycle_ListFailureReturnsError(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	challengeRepo.On("ListDueForTracking", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	tracker := newTracker(challengeRepo, new(MockUploadRepo), new(MockUserRepo), new(MockPoller), new(MockNotifier))
	_, err := tracker.RunCycle(context.Background(), time.Now().UTC())

	require.Error(t, err)
}

func TestRunCycle_NoPollerConfigured(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)

	tracker := usecase.NewTrackerUsecase(challengeRepo, new(MockUploadRepo), new(MockUserRepo), nil, new(MockNotifier))
	stats, err := tracker.RunCycle(context.Background(), time.Now().UTC())

	require.ErrorIs(t, err, usecase.ErrTrackingDisabled)
	assert.Equal(t, 0, stats.ChallengesChecked)
	challengeRepo.AssertNotCalled(t, "ListDueForTracking", mock.Anything, mock.Anything)
}

func TestRunCycle_MaxResultsConfigured(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	userRepo := new(MockUserRepo)
	poller := new(MockPoller)
	notifier := new(MockNotifier)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ch := newTestChallenge(start)
	now := start.AddDate(0, 0, 1)

	challengeRepo.On("ListDueForTracking", mock.Anything, now).Return([]*model.Challenge{ch}, nil)
	uploadRepo.On("FindInWindow", mock.Anything, "ch-1", start, ch.Progress[0].Deadline).Return(nil, nil)
	poller.On("ListChannelUploads", mock.Anything, "UC123", start.Add(-time.Second), int64(10)).
		Return([]model.YouTubeVideo{}, nil)

	tracker := newTracker(challengeRepo, uploadRepo, userRepo, poller, notifier).WithMaxResults(10)
	_, err := tracker.RunCycle(context.Background(), now)

	require.NoError(t, err)
	poller.AssertExpectations(t)
}
