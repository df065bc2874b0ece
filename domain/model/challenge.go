package model

import "time"

// Challenge status values
const (
	ChallengeStatusActive    = "active"
	ChallengeStatusPaused    = "paused"
	ChallengeStatusCompleted = "completed"
)

// ScheduleSlot is one scheduled upload opportunity inside a challenge's progress
// sequence. Slots are ordered by Index; insertion order is chronological order.
// Title and Notes are user metadata and never touched by the tracker.
type ScheduleSlot struct {
	Index      int        `json:"index"`
	Deadline   time.Time  `json:"deadline"`
	Uploaded   bool       `json:"uploaded"`
	UploadedAt *time.Time `json:"uploaded_at,omitempty"`
	Missed     bool       `json:"missed"`
	Title      string     `json:"title,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// Resolved reports whether this slot no longer awaits verification.
func (s *ScheduleSlot) Resolved() bool { return s.Uploaded || s.Missed }

// Challenge is one enrollment of a user in a time-boxed upload plan.
type Challenge struct {
	ID                 string         `json:"id"`
	UserID             string         `json:"user_id"`
	ChannelID          string         `json:"channel_id"`
	Status             string         `json:"status"`
	DurationMonths     int            `json:"duration_months"`
	CadenceEveryDays   int            `json:"cadence_every_days"`
	ItemsPerCadence    int            `json:"items_per_cadence"`
	StartedAt          time.Time      `json:"started_at"`
	NextUploadDeadline *time.Time     `json:"next_upload_deadline,omitempty"`
	StreakCount        int            `json:"streak_count"`
	LongestStreak      int            `json:"longest_streak"`
	MissedDays         int            `json:"missed_days"`
	PointsEarned       int            `json:"points_earned"`
	Progress           []ScheduleSlot `json:"progress"`
	NotifyEnabled      bool           `json:"notify_enabled"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// UploadRecord is the persisted fact that a specific video satisfied a
// specific challenge slot. Created once by the tracker, never mutated here.
// At most one record exists per (challenge, scheduled_date).
type UploadRecord struct {
	ID              int64     `json:"id"`
	ChallengeID     string    `json:"challenge_id"`
	VideoID         string    `json:"video_id"`
	Title           string    `json:"title"`
	URL             string    `json:"url"`
	ViewCount       int64     `json:"view_count"`
	LikeCount       int64     `json:"like_count"`
	CommentCount    int64     `json:"comment_count"`
	DurationSeconds int64     `json:"duration_seconds"`
	UploadDate      time.Time `json:"upload_date"`
	ScheduledDate   time.Time `json:"scheduled_date"`
	OnTime          bool      `json:"on_time"`
	PointsEarned    int       `json:"points_earned"`
	CreatedAt       time.Time `json:"created_at"`
}

// TrackerRun is the per-cycle audit document stored in MongoDB.
type TrackerRun struct {
	StartedAt         time.Time `bson:"startedAt" json:"started_at"`
	FinishedAt        time.Time `bson:"finishedAt" json:"finished_at"`
	ChallengesChecked int       `bson:"challengesChecked" json:"challenges_checked"`
	VideosDetected    int       `bson:"videosDetected" json:"videos_detected"`
	UploadsRecorded   int       `bson:"uploadsRecorded" json:"uploads_recorded"`
	MissedUploads     int       `bson:"missedUploads" json:"missed_uploads"`
	Errors            int       `bson:"errors" json:"errors"`
}
