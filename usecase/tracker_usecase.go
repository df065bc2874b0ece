package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"creatorpulse/domain/dto"
	"creatorpulse/domain/model"
	"creatorpulse/domain/repository"
	"creatorpulse/infrastructure/logger"

	"golang.org/x/sync/errgroup"
)

// ITrackerUsecase drives one upload-tracking cycle over all due challenges.
type ITrackerUsecase interface {
	RunCycle(ctx context.Context, now time.Time) (dto.TrackerRunStats, error)
}

// ErrTrackingDisabled is returned when no upload poller is configured, e.g.
// the YouTube credentials are missing and the client could not be built.
var ErrTrackingDisabled = errors.New("upload tracking is not configured")

type TrackerUsecase struct {
	challengeRepo repository.IChallenge
	uploadRepo    repository.IUploadRecord
	userRepo      repository.IUser
	poller        repository.IYouTube
	notifier      repository.INotifier
	lock          repository.ITrackerLock // optional
	runRepo       repository.ITrackerRun  // optional
	pollTimeout   time.Duration
	workers       int
	maxResults    int64
}

func NewTrackerUsecase(
	challengeRepo repository.IChallenge,
	uploadRepo repository.IUploadRecord,
	userRepo repository.IUser,
	poller repository.IYouTube,
	notifier repository.INotifier,
) *TrackerUsecase {
	return &TrackerUsecase{
		challengeRepo: challengeRepo,
		uploadRepo:    uploadRepo,
		userRepo:      userRepo,
		poller:        poller,
		notifier:      notifier,
		pollTimeout:   15 * time.Second,
		workers:       4,
		maxResults:    50,
	}
}

// WithLock enables the per-challenge advisory lock (fluent)
func (u *TrackerUsecase) WithLock(lock repository.ITrackerLock) *TrackerUsecase {
	u.lock = lock
	return u
}

// WithRunAudit enables per-cycle audit documents (fluent)
func (u *TrackerUsecase) WithRunAudit(runRepo repository.ITrackerRun) *TrackerUsecase {
	u.runRepo = runRepo
	return u
}

func (u *TrackerUsecase) WithPollTimeout(d time.Duration) *TrackerUsecase {
	if d > 0 {
		u.pollTimeout = d
	}
	return u
}

func (u *TrackerUsecase) WithWorkers(n int) *TrackerUsecase {
	if n > 0 {
		u.workers = n
	}
	return u
}

// WithMaxResults caps the polled page size; the API maximum is 50.
func (u *TrackerUsecase) WithMaxResults(n int64) *TrackerUsecase {
	if n > 0 && n <= 50 {
		u.maxResults = n
	}
	return u
}

type challengeResult struct {
	videosDetected  int
	uploadsRecorded int
	missedUploads   int
	failed          bool
}

// RunCycle selects every challenge due for evaluation and processes each one
// independently: a failing challenge is logged and skipped, never aborting the
// batch. Challenges run in a bounded pool; no ordering is promised between
// them.
func (u *TrackerUsecase) RunCycle(ctx context.Context, now time.Time) (dto.TrackerRunStats, error) {
	startedAt := time.Now().UTC()
	var stats dto.TrackerRunStats

	if u.poller == nil {
		return stats, ErrTrackingDisabled
	}

	challenges, err := u.challengeRepo.ListDueForTracking(ctx, now)
	if err != nil {
		return stats, err
	}
	stats.ChallengesChecked = len(challenges)

	var mu sync.Mutex
	errCount := 0
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)
	for _, ch := range challenges {
		ch := ch
		g.Go(func() error {
			res := u.processChallenge(gctx, ch, now)
			mu.Lock()
			stats.VideosDetected += res.videosDetected
			stats.UploadsRecorded += res.uploadsRecorded
			stats.MissedUploads += res.missedUploads
			if res.failed {
				errCount++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if u.runRepo != nil {
		run := &model.TrackerRun{
			StartedAt:         startedAt,
			FinishedAt:        time.Now().UTC(),
			ChallengesChecked: stats.ChallengesChecked,
			VideosDetected:    stats.VideosDetected,
			UploadsRecorded:   stats.UploadsRecorded,
			MissedUploads:     stats.MissedUploads,
			Errors:            errCount,
		}
		if err := u.runRepo.Insert(ctx, run); err != nil {
			logger.GetLogger().WithField("error", err).Warn("tracker: failed writing run audit")
		}
	}
	return stats, nil
}

// processChallenge runs the sequential pipeline for one challenge:
// resolve slot -> dedup check -> poll -> match -> transition -> persist -> notify.
func (u *TrackerUsecase) processChallenge(ctx context.Context, ch *model.Challenge, now time.Time) challengeResult {
	lg := logger.GetLogger().WithField("challenge_id", ch.ID)
	var res challengeResult

	if len(ch.Progress) == 0 {
		lg.Warn("tracker: challenge has no progress entries, skipping")
		return res
	}

	if u.lock != nil {
		ok, err := u.lock.Acquire(ctx, ch.ID, 5*time.Minute)
		if err != nil {
			lg.WithField("error", err).Warn("tracker: lock acquire failed, proceeding without lock")
		} else if !ok {
			lg.Info("tracker: challenge locked by another runner, skipping")
			return res
		} else {
			defer u.lock.Release(ctx, ch.ID)
		}
	}

	slotStart, slotDeadline, slotIndex, active := ResolveActiveSlot(ch)
	if !active {
		// Every slot resolved; close out the enrollment.
		if ch.Status == model.ChallengeStatusActive {
			if err := u.challengeRepo.UpdateStatus(ctx, ch.ID, model.ChallengeStatusCompleted); err != nil {
				lg.WithField("error", err).Error("tracker: failed completing challenge")
				res.failed = true
			}
		}
		return res
	}

	// A null deadline (set by a missed transition) is re-derived here.
	if ch.NextUploadDeadline == nil {
		d := slotDeadline
		ch.NextUploadDeadline = &d
		if slotDeadline.After(now) {
			if err := u.challengeRepo.UpdateTrackingState(ctx, ch); err != nil {
				lg.WithField("error", err).Error("tracker: failed persisting re-derived deadline")
				res.failed = true
			}
			return res
		}
	}

	// Dedup check must happen before any insert for this challenge. A record
	// already inside the window means a previous cycle resolved the slot.
	existing, err := u.uploadRepo.FindInWindow(ctx, ch.ID, slotStart, slotDeadline)
	if err != nil {
		lg.WithField("error", err).Error("tracker: dedup lookup failed, skipping challenge")
		res.failed = true
		return res
	}
	if existing != nil {
		lg.WithField("video_id", existing.VideoID).Info("tracker: slot already recorded, skipping")
		return res
	}

	// publishedAfter backs off one second so a video published exactly at the
	// window boundary is not excluded by clock skew.
	pollCtx, cancel := context.WithTimeout(ctx, u.pollTimeout)
	candidates, err := u.poller.ListChannelUploads(pollCtx, ch.ChannelID, slotStart.Add(-time.Second), u.maxResults)
	cancel()
	if err != nil {
		// Timeout or API failure is not evidence of absence: no transition,
		// the challenge is retried next cycle.
		lg.WithField("error", err).Warn("tracker: poll failed, retrying next cycle")
		res.failed = true
		return res
	}
	res.videosDetected = len(candidates)

	match := MatchUpload(candidates, slotStart, slotDeadline)
	switch EvaluateSlot(now, slotDeadline, match) {
	case OutcomeOnTime:
		switch err := u.recordOnTime(ctx, ch, slotIndex, slotDeadline, match); {
		case err == nil:
			res.uploadsRecorded = 1
		case errors.Is(err, repository.ErrDuplicateUpload):
			// A concurrent cycle won the insert; nothing happened here.
		default:
			res.failed = true
		}
	case OutcomeMissed:
		if err := u.recordMissed(ctx, ch, slotIndex); err != nil {
			res.failed = true
		} else {
			res.missedUploads = 1
		}
	case OutcomePending:
		// Inside the grace period with no match: state unchanged.
	}
	return res
}

func (u *TrackerUsecase) recordOnTime(ctx context.Context, ch *model.Challenge, slotIndex int, slotDeadline time.Time, match *model.YouTubeVideo) error {
	lg := logger.GetLogger().WithField("challenge_id", ch.ID).WithField("video_id", match.ID)

	// Enrichment is best-effort: a statistics failure never blocks the record.
	enrichCtx, cancel := context.WithTimeout(ctx, u.pollTimeout)
	statsByID, err := u.poller.GetVideoStatistics(enrichCtx, []string{match.ID})
	cancel()
	if err != nil {
		lg.WithField("error", err).Warn("tracker: statistics enrichment failed, recording with zeroed stats")
		statsByID = nil
	}

	points := OnTimePoints(ch.StreakCount)
	rec := &model.UploadRecord{
		ChallengeID:   ch.ID,
		VideoID:       match.ID,
		Title:         match.Title,
		URL:           match.WatchURL(),
		UploadDate:    match.PublishedAt,
		ScheduledDate: slotDeadline,
		OnTime:        !match.PublishedAt.After(slotDeadline),
		PointsEarned:  points,
	}
	if s, ok := statsByID[match.ID]; ok {
		rec.ViewCount = s.ViewCount
		rec.LikeCount = s.LikeCount
		rec.CommentCount = s.CommentCount
		rec.DurationSeconds = s.DurationSeconds
	}

	if err := u.uploadRepo.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicateUpload) {
			// A concurrent cycle won the insert; its transition stands.
			lg.Info("tracker: concurrent cycle already recorded this slot")
			return err
		}
		lg.WithField("error", err).Error("tracker: failed inserting upload record")
		return err
	}

	ApplyOnTime(ch, slotIndex, match.PublishedAt)
	if err := u.challengeRepo.UpdateTrackingState(ctx, ch); err != nil {
		lg.WithField("error", err).Error("tracker: failed persisting on-time transition")
		return err
	}

	if ch.NotifyEnabled {
		if user, err := u.userRepo.GetByUserName(ctx, ch.UserID); err != nil {
			lg.WithField("error", err).Warn("tracker: owner lookup failed, skipping confirmation")
		} else {
			u.notifier.SendUploadConfirmation(ctx, user, ch, points, ch.StreakCount, rec.OnTime)
		}
	}
	return nil
}

func (u *TrackerUsecase) recordMissed(ctx context.Context, ch *model.Challenge, slotIndex int) error {
	lg := logger.GetLogger().WithField("challenge_id", ch.ID)

	ApplyMissed(ch, slotIndex)
	if err := u.challengeRepo.UpdateTrackingState(ctx, ch); err != nil {
		lg.WithField("error", err).Error("tracker: failed persisting missed transition")
		return err
	}

	if ch.NotifyEnabled {
		if user, err := u.userRepo.GetByUserName(ctx, ch.UserID); err != nil {
			lg.WithField("error", err).Warn("tracker: owner lookup failed, skipping missed notice")
		} else {
			u.notifier.SendMissedUpload(ctx, user, ch, MissPenalty, ch.MissedDays)
		}
	}
	return nil
}
