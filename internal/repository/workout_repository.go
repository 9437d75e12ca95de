package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"workoutplanner/internal/workout"
)

// Meta is the per-user bookkeeping row that versions the slot set as a whole.
type Meta struct {
	UserID    string
	Version   int
	UpdatedAt time.Time
}

type WorkoutRepository struct {
	db *sql.DB
}

func NewWorkoutRepository(db *sql.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func (r *WorkoutRepository) CreateInitialMeta(ctx context.Context, userID string) error {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO workout_meta (user_id, version, updated_at) VALUES (?, ?, ?)`,
		userID,
		1,
		now,
	)
	if err != nil {
		return fmt.Errorf("create workout meta: %w", err)
	}
	return nil
}

func (r *WorkoutRepository) GetMetaTx(ctx context.Context, tx *sql.Tx, userID string) (*Meta, error) {
	row := tx.QueryRowContext(
		ctx,
		`SELECT user_id, version, updated_at FROM workout_meta WHERE user_id = ?`,
		userID,
	)

	var meta Meta
	var updatedAt string
	if err := row.Scan(&meta.UserID, &meta.Version, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get workout meta: %w", err)
	}

	parsed, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse workout meta updated_at: %w", err)
	}
	meta.UpdatedAt = parsed
	return &meta, nil
}

func (r *WorkoutRepository) UpdateMetaTx(ctx context.Context, tx *sql.Tx, meta *Meta) error {
	_, err := tx.ExecContext(
		ctx,
		`UPDATE workout_meta SET version = ?, updated_at = ? WHERE user_id = ?`,
		meta.Version,
		formatTime(meta.UpdatedAt),
		meta.UserID,
	)
	if err != nil {
		return fmt.Errorf("update workout meta: %w", err)
	}
	return nil
}

// LoadSlotsTx returns the raw blob of every stored slot for the user. Rows
// with an unknown slot name are skipped.
func (r *WorkoutRepository) LoadSlotsTx(ctx context.Context, tx *sql.Tx, userID string) (map[workout.Slot][]byte, error) {
	rows, err := tx.QueryContext(
		ctx,
		`SELECT slot, data FROM workout_slots WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("load slots: %w", err)
	}
	defer rows.Close()

	blobs := make(map[workout.Slot][]byte, len(workout.AllSlots))
	for rows.Next() {
		var slot string
		var data string
		if err := rows.Scan(&slot, &data); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		if !workout.Slot(slot).Valid() {
			continue
		}
		blobs[workout.Slot(slot)] = []byte(data)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}
	return blobs, nil
}

func (r *WorkoutRepository) PutSlotTx(ctx context.Context, tx *sql.Tx, userID string, slot workout.Slot, data []byte, now time.Time) error {
	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO workout_slots (user_id, slot, data, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, slot) DO UPDATE
		 SET data = excluded.data,
		     updated_at = excluded.updated_at`,
		userID,
		string(slot),
		string(data),
		formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("put slot %s: %w", slot, err)
	}
	return nil
}

func (r *WorkoutRepository) DeleteSlotTx(ctx context.Context, tx *sql.Tx, userID string, slot workout.Slot) error {
	_, err := tx.ExecContext(
		ctx,
		`DELETE FROM workout_slots WHERE user_id = ? AND slot = ?`,
		userID,
		string(slot),
	)
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", slot, err)
	}
	return nil
}
