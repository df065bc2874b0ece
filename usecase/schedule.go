package usecase

import (
	"time"

	"creatorpulse/domain/model"
)

// A month is treated as exactly 30 days for schedule arithmetic.
const daysPerMonth = 30

// GenerateSchedule produces the ordered slot sequence for a challenge starting
// at start. Deadlines fall at start + k*cadenceEveryDays days; each cadence
// step yields itemsPerCadence slots sharing the same deadline. Non-positive
// inputs are clamped to 1 rather than rejected.
func GenerateSchedule(start time.Time, durationMonths, cadenceEveryDays, itemsPerCadence int) []model.ScheduleSlot {
	if durationMonths < 1 {
		durationMonths = 1
	}
	if cadenceEveryDays < 1 {
		cadenceEveryDays = 1
	}
	if itemsPerCadence < 1 {
		itemsPerCadence = 1
	}

	totalDays := durationMonths * daysPerMonth
	slots := make([]model.ScheduleSlot, 0, totalDays/cadenceEveryDays*itemsPerCadence)
	idx := 0
	for k := 1; (k-1)*cadenceEveryDays < totalDays; k++ {
		deadline := start.AddDate(0, 0, k*cadenceEveryDays)
		for i := 0; i < itemsPerCadence; i++ {
			slots = append(slots, model.ScheduleSlot{Index: idx, Deadline: deadline})
			idx++
		}
	}
	return slots
}

// ResolveActiveSlot finds the slot currently awaiting verification: the first
// slot that is neither uploaded nor missed. The window start is the previous
// slot's deadline, or the challenge start for the first slot. ok is false when
// every slot is resolved, i.e. the challenge is effectively complete.
func ResolveActiveSlot(ch *model.Challenge) (slotStart, slotDeadline time.Time, slotIndex int, ok bool) {
	for i := range ch.Progress {
		if ch.Progress[i].Resolved() {
			continue
		}
		start := ch.StartedAt
		if i > 0 {
			start = ch.Progress[i-1].Deadline
		}
		return start, ch.Progress[i].Deadline, i, true
	}
	return time.Time{}, time.Time{}, -1, false
}
