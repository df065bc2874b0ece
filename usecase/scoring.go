package usecase

import (
	"time"

	"creatorpulse/domain/model"
)

// Scoring constants. These values are product-level commitments surfaced in
// user-facing copy; do not tune without a migration plan for earned points.
const (
	BasePoints     = 10
	OnTimeBonus    = 5
	StreakBonusCap = 10
	MissPenalty    = 50
	GracePeriod    = 2 * time.Hour
)

// SlotOutcome is the result of evaluating one challenge slot.
type SlotOutcome int

const (
	// OutcomePending means no qualifying upload yet and the grace period has
	// not elapsed; the challenge is re-evaluated on the next cycle.
	OutcomePending SlotOutcome = iota
	OutcomeOnTime
	OutcomeMissed
)

func (o SlotOutcome) String() string {
	switch o {
	case OutcomeOnTime:
		return "on_time"
	case OutcomeMissed:
		return "missed"
	default:
		return "pending"
	}
}

// MatchUpload selects at most one qualifying candidate for the slot window:
// the first candidate in input order published inside [slotStart, deadline].
// Remaining in-window candidates are ignored; a challenge records one upload
// per slot.
func MatchUpload(candidates []model.YouTubeVideo, slotStart, slotDeadline time.Time) *model.YouTubeVideo {
	for i := range candidates {
		p := candidates[i].PublishedAt
		if !p.Before(slotStart) && !p.After(slotDeadline) {
			return &candidates[i]
		}
	}
	return nil
}

// EvaluateSlot decides the slot outcome from the match result and the clock.
// This three-way branch is the whole state machine: a match is on time, no
// match past the grace period is missed, anything else stays pending.
func EvaluateSlot(now, slotDeadline time.Time, match *model.YouTubeVideo) SlotOutcome {
	if match != nil {
		return OutcomeOnTime
	}
	if now.After(slotDeadline.Add(GracePeriod)) {
		return OutcomeMissed
	}
	return OutcomePending
}

// OnTimePoints computes the award for an on-time upload given the streak count
// before the increment.
func OnTimePoints(streakBefore int) int {
	bonus := streakBefore
	if bonus > StreakBonusCap {
		bonus = StreakBonusCap
	}
	return BasePoints + OnTimeBonus + bonus
}

// ApplyOnTime mutates the challenge for an on-time upload at slotIndex:
// resolves the slot, awards points, extends the streak, and advances the next
// deadline to the first unresolved slot strictly after the publish time (or
// clears it when none remain). Returns the points awarded for this slot.
func ApplyOnTime(ch *model.Challenge, slotIndex int, publishedAt time.Time) int {
	points := OnTimePoints(ch.StreakCount)
	ch.PointsEarned += points
	ch.StreakCount++
	if ch.StreakCount > ch.LongestStreak {
		ch.LongestStreak = ch.StreakCount
	}

	at := publishedAt
	ch.Progress[slotIndex].Uploaded = true
	ch.Progress[slotIndex].UploadedAt = &at

	ch.NextUploadDeadline = nil
	for i := range ch.Progress {
		if ch.Progress[i].Resolved() {
			continue
		}
		if ch.Progress[i].Deadline.After(publishedAt) {
			d := ch.Progress[i].Deadline
			ch.NextUploadDeadline = &d
			break
		}
	}
	if ch.NextUploadDeadline == nil && allResolved(ch) {
		ch.Status = model.ChallengeStatusCompleted
	}
	return points
}

// ApplyMissed mutates the challenge for a slot missed past the grace period:
// deducts the penalty (floored at zero), resets the streak, counts the miss,
// marks the slot, and clears the deadline for the resolver to re-derive on the
// next scan.
func ApplyMissed(ch *model.Challenge, slotIndex int) {
	ch.PointsEarned -= MissPenalty
	if ch.PointsEarned < 0 {
		ch.PointsEarned = 0
	}
	ch.StreakCount = 0
	ch.MissedDays++
	ch.Progress[slotIndex].Missed = true
	ch.NextUploadDeadline = nil
	if allResolved(ch) {
		ch.Status = model.ChallengeStatusCompleted
	}
}

func allResolved(ch *model.Challenge) bool {
	for i := range ch.Progress {
		if !ch.Progress[i].Resolved() {
			return false
		}
	}
	return true
}
