package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"creatorpulse/domain/model"
	"creatorpulse/domain/repository"
	"creatorpulse/infrastructure/logger"

	"github.com/lib/pq"
)

// EnsureUploadRecordSchema creates the upload_records table. The UNIQUE
// (challenge_id, scheduled_date) constraint is the exactly-once guard against
// overlapping tracker cycles: the losing insert fails harmlessly.
func EnsureUploadRecordSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS upload_records (
        id BIGSERIAL PRIMARY KEY,
        challenge_id UUID NOT NULL,
        video_id TEXT NOT NULL,
        title TEXT NOT NULL DEFAULT '',
        url TEXT NOT NULL DEFAULT '',
        view_count BIGINT NOT NULL DEFAULT 0,
        like_count BIGINT NOT NULL DEFAULT 0,
        comment_count BIGINT NOT NULL DEFAULT 0,
        duration_seconds BIGINT NOT NULL DEFAULT 0,
        upload_date TIMESTAMPTZ NOT NULL,
        scheduled_date TIMESTAMPTZ NOT NULL,
        on_time BOOLEAN NOT NULL,
        points_earned INT NOT NULL DEFAULT 0,
        created_at TIMESTAMPTZ NOT NULL,
        CONSTRAINT upload_records_slot_unique UNIQUE (challenge_id, scheduled_date)
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create upload_records table: %w", err)
	}
	// Dedup lookups filter on (challenge_id, upload_date)
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_upload_records_window ON upload_records(challenge_id, upload_date)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_upload_records_window")
	}
	return nil
}

// UploadRecordRepository implements append-only upload persistence on PostgreSQL.
type UploadRecordRepository struct{ db *sql.DB }

func NewUploadRecordRepository(db *sql.DB) *UploadRecordRepository {
	return &UploadRecordRepository{db: db}
}

const uploadColumns = `id, challenge_id, video_id, title, url, view_count, like_count, comment_count,
	duration_seconds, upload_date, scheduled_date, on_time, points_earned, created_at`

func (r *UploadRecordRepository) FindInWindow(ctx context.Context, challengeID string, slotStart, slotDeadline time.Time) (*model.UploadRecord, error) {
	q := `SELECT ` + uploadColumns + ` FROM upload_records
	      WHERE challenge_id=$1 AND upload_date >= $2 AND upload_date <= $3
	      ORDER BY upload_date ASC LIMIT 1`
	row := r.db.QueryRowContext(ctx, q, challengeID, slotStart, slotDeadline)
	rec, err := scanUploadRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (r *UploadRecordRepository) Create(ctx context.Context, rec *model.UploadRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	q := `INSERT INTO upload_records (challenge_id, video_id, title, url, view_count, like_count, comment_count,
	      duration_seconds, upload_date, scheduled_date, on_time, points_earned, created_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13) RETURNING id`
	err := r.db.QueryRowContext(ctx, q,
		rec.ChallengeID, rec.VideoID, rec.Title, rec.URL,
		rec.ViewCount, rec.LikeCount, rec.CommentCount, rec.DurationSeconds,
		rec.UploadDate, rec.ScheduledDate, rec.OnTime, rec.PointsEarned, rec.CreatedAt,
	).Scan(&rec.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return repository.ErrDuplicateUpload
		}
		return err
	}
	return nil
}

func (r *UploadRecordRepository) ListByChallenge(ctx context.Context, challengeID string) ([]*model.UploadRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+uploadColumns+` FROM upload_records WHERE challenge_id=$1 ORDER BY scheduled_date ASC`, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.UploadRecord
	for rows.Next() {
		rec, err := scanUploadRecord(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanUploadRecord(row rowScanner) (*model.UploadRecord, error) {
	rec := &model.UploadRecord{}
	if err := row.Scan(
		&rec.ID, &rec.ChallengeID, &rec.VideoID, &rec.Title, &rec.URL,
		&rec.ViewCount, &rec.LikeCount, &rec.CommentCount, &rec.DurationSeconds,
		&rec.UploadDate, &rec.ScheduledDate, &rec.OnTime, &rec.PointsEarned, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return rec, nil
}
