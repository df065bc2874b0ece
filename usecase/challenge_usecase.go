package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"creatorpulse/domain/dto"
	"creatorpulse/domain/model"
	"creatorpulse/domain/repository"

	"github.com/google/uuid"
)

// IChallengeUsecase covers enrollment and the read surface of challenges.
type IChallengeUsecase interface {
	Create(ctx context.Context, userID string, req *dto.ChallengeCreateRequest) (*model.Challenge, error)
	Get(ctx context.Context, userID, challengeID string) (*model.Challenge, error)
	ListMine(ctx context.Context, userID string) ([]*model.Challenge, error)
	Pause(ctx context.Context, userID, challengeID string) error
	Resume(ctx context.Context, userID, challengeID string) error
	UpdateSlot(ctx context.Context, userID, challengeID string, req *dto.ChallengeSlotUpdateRequest) (*model.Challenge, error)
	ListUploads(ctx context.Context, userID, challengeID string) ([]*model.UploadRecord, error)
}

var (
	ErrNotOwner  = errors.New("challenge does not belong to user")
	ErrSlotIndex = errors.New("slot index out of range")
)

type ChallengeUsecase struct {
	challengeRepo repository.IChallenge
	uploadRepo    repository.IUploadRecord
}

func NewChallengeUsecase(challengeRepo repository.IChallenge, uploadRepo repository.IUploadRecord) IChallengeUsecase {
	return &ChallengeUsecase{challengeRepo: challengeRepo, uploadRepo: uploadRepo}
}

// Create enrolls the user: the schedule is generated up front and the first
// slot's deadline becomes the tracking target.
func (u *ChallengeUsecase) Create(ctx context.Context, userID string, req *dto.ChallengeCreateRequest) (*model.Challenge, error) {
	now := time.Now().UTC()
	slots := GenerateSchedule(now, req.DurationMonths, req.CadenceEveryDays, req.ItemsPerCadence)
	if len(slots) == 0 {
		return nil, fmt.Errorf("schedule generation produced no slots")
	}
	first := slots[0].Deadline

	ch := &model.Challenge{
		ID:                 uuid.NewString(),
		UserID:             userID,
		ChannelID:          req.ChannelID,
		Status:             model.ChallengeStatusActive,
		DurationMonths:     req.DurationMonths,
		CadenceEveryDays:   req.CadenceEveryDays,
		ItemsPerCadence:    req.ItemsPerCadence,
		StartedAt:          now,
		NextUploadDeadline: &first,
		Progress:           slots,
		NotifyEnabled:      req.NotifyEnabled,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := u.challengeRepo.Create(ctx, ch); err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}
	return ch, nil
}

func (u *ChallengeUsecase) Get(ctx context.Context, userID, challengeID string) (*model.Challenge, error) {
	ch, err := u.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if ch.UserID != userID {
		return nil, ErrNotOwner
	}
	return ch, nil
}

func (u *ChallengeUsecase) ListMine(ctx context.Context, userID string) ([]*model.Challenge, error) {
	return u.challengeRepo.ListByUser(ctx, userID)
}

func (u *ChallengeUsecase) Pause(ctx context.Context, userID, challengeID string) error {
	return u.setStatus(ctx, userID, challengeID, model.ChallengeStatusPaused)
}

func (u *ChallengeUsecase) Resume(ctx context.Context, userID, challengeID string) error {
	return u.setStatus(ctx, userID, challengeID, model.ChallengeStatusActive)
}

func (u *ChallengeUsecase) setStatus(ctx context.Context, userID, challengeID, status string) error {
	ch, err := u.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return err
	}
	if ch.UserID != userID {
		return ErrNotOwner
	}
	if ch.Status == model.ChallengeStatusCompleted {
		return fmt.Errorf("challenge already completed")
	}
	return u.challengeRepo.UpdateStatus(ctx, challengeID, status)
}

// UpdateSlot sets the user-facing title and notes on one schedule slot. The
// scoring fields of the slot stay untouched.
func (u *ChallengeUsecase) UpdateSlot(ctx context.Context, userID, challengeID string, req *dto.ChallengeSlotUpdateRequest) (*model.Challenge, error) {
	ch, err := u.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if ch.UserID != userID {
		return nil, ErrNotOwner
	}
	if req.Index < 0 || req.Index >= len(ch.Progress) {
		return nil, ErrSlotIndex
	}
	ch.Progress[req.Index].Title = req.Title
	ch.Progress[req.Index].Notes = req.Notes
	if err := u.challengeRepo.UpdateTrackingState(ctx, ch); err != nil {
		return nil, fmt.Errorf("failed to update slot: %w", err)
	}
	return ch, nil
}

func (u *ChallengeUsecase) ListUploads(ctx context.Context, userID, challengeID string) ([]*model.UploadRecord, error) {
	ch, err := u.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if ch.UserID != userID {
		return nil, ErrNotOwner
	}
	return u.uploadRepo.ListByChallenge(ctx, challengeID)
}
