package usecase_test

import (
	"context"
	"testing"
	"time"

	"creatorpulse/domain/dto"
	"creatorpulse/domain/model"
	"creatorpulse/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChallengeUsecase_Create(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	challengeRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewChallengeUsecase(challengeRepo, uploadRepo)
	ch, err := uc.Create(context.Background(), "creator", &dto.ChallengeCreateRequest{
		ChannelID:        "UC123",
		DurationMonths:   1,
		CadenceEveryDays: 2,
		ItemsPerCadence:  1,
		NotifyEnabled:    true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, ch.ID)
	assert.Equal(t, "creator", ch.UserID)
	assert.Equal(t, model.ChallengeStatusActive, ch.Status)
	require.Len(t, ch.Progress, 15)
	require.NotNil(t, ch.NextUploadDeadline)
	assert.Equal(t, ch.Progress[0].Deadline, *ch.NextUploadDeadline)
	assert.Equal(t, ch.StartedAt.AddDate(0, 0, 2), *ch.NextUploadDeadline)
	challengeRepo.AssertExpectations(t)
}

func TestChallengeUsecase_Get_RejectsOtherOwner(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	challengeRepo.On("GetByID", mock.Anything, "ch-1").
		Return(&model.Challenge{ID: "ch-1", UserID: "someone-else"}, nil)

	uc := usecase.NewChallengeUsecase(challengeRepo, uploadRepo)
	_, err := uc.Get(context.Background(), "creator", "ch-1")

	require.ErrorIs(t, err, usecase.ErrNotOwner)
}

func TestChallengeUsecase_PauseCompletedChallenge(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	challengeRepo.On("GetByID", mock.Anything, "ch-1").
		Return(&model.Challenge{ID: "ch-1", UserID: "creator", Status: model.ChallengeStatusCompleted}, nil)

	uc := usecase.NewChallengeUsecase(challengeRepo, uploadRepo)
	err := uc.Pause(context.Background(), "creator", "ch-1")

	require.Error(t, err)
	challengeRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestChallengeUsecase_Resume(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	challengeRepo.On("GetByID", mock.Anything, "ch-1").
		Return(&model.Challenge{ID: "ch-1", UserID: "creator", Status: model.ChallengeStatusPaused}, nil)
	challengeRepo.On("UpdateStatus", mock.Anything, "ch-1", model.ChallengeStatusActive).Return(nil)

	uc := usecase.NewChallengeUsecase(challengeRepo, uploadRepo)
	require.NoError(t, uc.Resume(context.Background(), "creator", "ch-1"))
	challengeRepo.AssertExpectations(t)
}

func TestChallengeUsecase_UpdateSlot(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stored := &model.Challenge{
		ID:       "ch-1",
		UserID:   "creator",
		Status:   model.ChallengeStatusActive,
		Progress: usecase.GenerateSchedule(start, 1, 2, 1),
	}
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	challengeRepo.On("GetByID", mock.Anything, "ch-1").Return(stored, nil)
	challengeRepo.On("UpdateTrackingState", mock.Anything, stored).Return(nil)

	uc := usecase.NewChallengeUsecase(challengeRepo, uploadRepo)
	ch, err := uc.UpdateSlot(context.Background(), "creator", "ch-1", &dto.ChallengeSlotUpdateRequest{
		Index: 2,
		Title: "Editing deep dive",
		Notes: "part two of the series",
	})

	require.NoError(t, err)
	assert.Equal(t, "Editing deep dive", ch.Progress[2].Title)
	assert.Equal(t, "part two of the series", ch.Progress[2].Notes)
	challengeRepo.AssertExpectations(t)
}

func TestChallengeUsecase_UpdateSlot_IndexOutOfRange(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	challengeRepo.On("GetByID", mock.Anything, "ch-1").Return(&model.Challenge{
		ID:       "ch-1",
		UserID:   "creator",
		Progress: usecase.GenerateSchedule(start, 1, 2, 1),
	}, nil)

	uc := usecase.NewChallengeUsecase(challengeRepo, uploadRepo)
	_, err := uc.UpdateSlot(context.Background(), "creator", "ch-1", &dto.ChallengeSlotUpdateRequest{Index: 99})

	require.ErrorIs(t, err, usecase.ErrSlotIndex)
	challengeRepo.AssertNotCalled(t, "UpdateTrackingState", mock.Anything, mock.Anything)
}

func TestChallengeUsecase_ListUploads(t *testing.T) {
	challengeRepo := new(MockChallengeRepo)
	uploadRepo := new(MockUploadRepo)
	challengeRepo.On("GetByID", mock.Anything, "ch-1").
		Return(&model.Challenge{ID: "ch-1", UserID: "creator"}, nil)
	uploadRepo.On("ListByChallenge", mock.Anything, "ch-1").
		Return([]*model.UploadRecord{{ChallengeID: "ch-1", VideoID: "vid-1"}}, nil)

	uc := usecase.NewChallengeUsecase(challengeRepo, uploadRepo)
	list, err := uc.ListUploads(context.Background(), "creator", "ch-1")

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "vid-1", list[0].VideoID)
}
