package store

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pocketrush/backend/internal/game"
)

// ShotStore persists finished shots. The server runs fine without one; a
// nil *ShotStore skips every operation.
type ShotStore struct {
	db *sqlx.DB
}

// Shot is one persisted row.
type Shot struct {
	ID               int64     `db:"id" json:"id"`
	Angle            float64   `db:"angle" json:"angle"`
	Power            float64   `db:"power" json:"power"`
	PredictedBounces int       `db:"predicted_bounces" json:"predicted_bounces"`
	Potted           int       `db:"potted" json:"potted"`
	DurationTicks    int       `db:"duration_ticks" json:"duration_ticks"`
	TakenAt          time.Time `db:"taken_at" json:"taken_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS shots (
	id BIGSERIAL PRIMARY KEY,
	angle DOUBLE PRECISION NOT NULL,
	power DOUBLE PRECISION NOT NULL,
	predicted_bounces INT NOT NULL DEFAULT 0,
	potted INT NOT NULL DEFAULT 0,
	duration_ticks INT NOT NULL DEFAULT 0,
	taken_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// New creates the store and bootstraps the schema.
func New(db *sqlx.DB) (*ShotStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("ensure shots schema: %w", err)
	}
	return &ShotStore{db: db}, nil
}

// Record inserts a finished shot.
func (s *ShotStore) Record(rec game.ShotRecord) error {
	if s == nil {
		return nil
	}
	_, err := s.db.Exec(
		`INSERT INTO shots (angle, power, predicted_bounces, potted, duration_ticks, taken_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.Angle, rec.Power, rec.PredictedBounces, rec.Potted, rec.DurationTicks, rec.TakenAt,
	)
	if err != nil {
		return fmt.Errorf("insert shot: %w", err)
	}
	return nil
}

// Recent returns the newest shots, capped at limit.
func (s *ShotStore) Recent(limit int) ([]Shot, error) {
	if s == nil {
		return nil, fmt.Errorf("shot store not configured")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var shots []Shot
	err := s.db.Select(&shots,
		`SELECT id, angle, power, predicted_bounces, potted, duration_ticks, taken_at
		 FROM shots ORDER BY taken_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("select shots: %w", err)
	}
	return shots, nil
}
