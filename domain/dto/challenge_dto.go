package dto

// ChallengeCreateRequest enrolls the authenticated user into an upload challenge.
// Non-positive cadence values are clamped to 1 by the schedule generator rather
// than rejected here; validation only guards against absent fields.
type ChallengeCreateRequest struct {
	ChannelID        string `json:"channel_id" binding:"required"`
	DurationMonths   int    `json:"duration_months" binding:"required"`
	CadenceEveryDays int    `json:"cadence_every_days" binding:"required"`
	ItemsPerCadence  int    `json:"items_per_cadence" binding:"required"`
	NotifyEnabled    bool   `json:"notify_enabled"`
}

// ChallengeSlotUpdateRequest sets user metadata on a single slot.
type ChallengeSlotUpdateRequest struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Notes string `json:"notes"`
}
