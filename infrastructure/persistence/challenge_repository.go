package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"creatorpulse/domain/model"
	"creatorpulse/infrastructure/logger"
)

// EnsureChallengeSchema creates the challenges table if not exists. The
// progress slot array is stored as JSONB; slot order is array order.
func EnsureChallengeSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS challenges (
        id UUID PRIMARY KEY,
        user_id TEXT NOT NULL,
        channel_id TEXT NOT NULL,
        status TEXT NOT NULL DEFAULT 'active',
        duration_months INT NOT NULL,
        cadence_every_days INT NOT NULL,
        items_per_cadence INT NOT NULL,
        started_at TIMESTAMPTZ NOT NULL,
        next_upload_deadline TIMESTAMPTZ,
        streak_count INT NOT NULL DEFAULT 0,
        longest_streak INT NOT NULL DEFAULT 0,
        missed_days INT NOT NULL DEFAULT 0,
        points_earned INT NOT NULL DEFAULT 0,
        progress JSONB NOT NULL,
        notify_enabled BOOLEAN NOT NULL DEFAULT TRUE,
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create challenges table: %w", err)
	}
	// The tracker selects on (status, next_upload_deadline) every cycle
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_challenges_due ON challenges(status, next_upload_deadline)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_challenges_due")
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_challenges_user ON challenges(user_id)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_challenges_user")
	}
	return nil
}

// ChallengeRepository implements challenge persistence on PostgreSQL.
type ChallengeRepository struct{ db *sql.DB }

func NewChallengeRepository(db *sql.DB) *ChallengeRepository { return &ChallengeRepository{db: db} }

const challengeColumns = `id, user_id, channel_id, status, duration_months, cadence_every_days, items_per_cadence,
	started_at, next_upload_deadline, streak_count, longest_streak, missed_days, points_earned, progress,
	notify_enabled, created_at, updated_at`

func (r *ChallengeRepository) Create(ctx context.Context, ch *model.Challenge) error {
	progress, err := json.Marshal(ch.Progress)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	q := `INSERT INTO challenges (` + challengeColumns + `)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`
	_, err = r.db.ExecContext(ctx, q,
		ch.ID, ch.UserID, ch.ChannelID, ch.Status,
		ch.DurationMonths, ch.CadenceEveryDays, ch.ItemsPerCadence,
		ch.StartedAt, ch.NextUploadDeadline,
		ch.StreakCount, ch.LongestStreak, ch.MissedDays, ch.PointsEarned,
		progress, ch.NotifyEnabled, ch.CreatedAt, ch.UpdatedAt,
	)
	return err
}

func (r *ChallengeRepository) GetByID(ctx context.Context, id string) (*model.Challenge, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+challengeColumns+` FROM challenges WHERE id=$1`, id)
	return scanChallenge(row)
}

func (r *ChallengeRepository) ListByUser(ctx context.Context, userID string) ([]*model.Challenge, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+challengeColumns+` FROM challenges WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChallenges(rows)
}

func (r *ChallengeRepository) ListDueForTracking(ctx context.Context, now time.Time) ([]*model.Challenge, error) {
	q := `SELECT ` + challengeColumns + ` FROM challenges
	      WHERE status='active' AND (next_upload_deadline IS NULL OR next_upload_deadline <= $1)`
	rows, err := r.db.QueryContext(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChallenges(rows)
}

func (r *ChallengeRepository) UpdateTrackingState(ctx context.Context, ch *model.Challenge) error {
	progress, err := json.Marshal(ch.Progress)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	q := `UPDATE challenges SET status=$1, next_upload_deadline=$2, streak_count=$3, longest_streak=$4,
	      missed_days=$5, points_earned=$6, progress=$7, updated_at=$8 WHERE id=$9`
	_, err = r.db.ExecContext(ctx, q,
		ch.Status, ch.NextUploadDeadline, ch.StreakCount, ch.LongestStreak,
		ch.MissedDays, ch.PointsEarned, progress, time.Now().UTC(), ch.ID,
	)
	return err
}

func (r *ChallengeRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE challenges SET status=$1, updated_at=$2 WHERE id=$3`, status, time.Now().UTC(), id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChallenge(row rowScanner) (*model.Challenge, error) {
	ch := &model.Challenge{}
	var deadline sql.NullTime
	var progress []byte
	if err := row.Scan(
		&ch.ID, &ch.UserID, &ch.ChannelID, &ch.Status,
		&ch.DurationMonths, &ch.CadenceEveryDays, &ch.ItemsPerCadence,
		&ch.StartedAt, &deadline,
		&ch.StreakCount, &ch.LongestStreak, &ch.MissedDays, &ch.PointsEarned,
		&progress, &ch.NotifyEnabled, &ch.CreatedAt, &ch.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if deadline.Valid {
		ch.NextUploadDeadline = &deadline.Time
	}
	if err := json.Unmarshal(progress, &ch.Progress); err != nil {
		return nil, fmt.Errorf("unmarshal progress for challenge %s: %w", ch.ID, err)
	}
	return ch, nil
}

func scanChallenges(rows *sql.Rows) ([]*model.Challenge, error) {
	var list []*model.Challenge
	for rows.Next() {
		ch, err := scanChallenge(rows)
		if err != nil {
			// Malformed rows are skipped defensively rather than failing the batch
			logger.GetLogger().WithField("error", err).Warn("skipping malformed challenge row")
			continue
		}
		list = append(list, ch)
	}
	return list, rows.Err()
}
