package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/silabu/attendance-backend-go/internal/domain/attendance"
	"github.com/silabu/attendance-backend-go/internal/pkg/database"
)

type eventRepositoryImpl struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) attendance.EventRepository {
	return &eventRepositoryImpl{db: db}
}

const eventColumns = `id, user_id, kind, timestamp, latitude, longitude, distance_meters, device_id, status, created_at`

func scanEvent(row pgx.Row) (attendance.Event, error) {
	var ev attendance.Event
	err := row.Scan(
		&ev.ID,
		&ev.UserID,
		&ev.Kind,
		&ev.Timestamp,
		&ev.Coordinates.Latitude,
		&ev.Coordinates.Longitude,
		&ev.DistanceMeters,
		&ev.DeviceID,
		&ev.Status,
		&ev.CreatedAt,
	)
	return ev, err
}

// Create implements attendance.EventRepository.
func (r *eventRepositoryImpl) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (id, user_id, kind, timestamp, latitude, longitude, distance_meters, device_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING ` + eventColumns

	created, err := scanEvent(q.QueryRow(ctx, query,
		event.ID,
		event.UserID,
		event.Kind,
		event.Timestamp,
		event.Coordinates.Latitude,
		event.Coordinates.Longitude,
		event.DistanceMeters,
		event.DeviceID,
		event.Status,
	))
	if err != nil {
		return attendance.Event{}, err
	}
	return created, nil
}

// ListByUserBetween implements attendance.EventRepository.
func (r *eventRepositoryImpl) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE user_id = $1 AND timestamp >= $2 AND timestamp < $3
		ORDER BY timestamp
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListBetween implements attendance.EventRepository.
func (r *eventRepositoryImpl) ListBetween(ctx context.Context, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE timestamp >= $1 AND timestamp < $2
		ORDER BY timestamp
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ExistsForUserBetween implements attendance.EventRepository.
func (r *eventRepositoryImpl) ExistsForUserBetween(ctx context.Context, userID string, kind attendance.Kind, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM attendance_events
			WHERE user_id = $1 AND kind = $2 AND timestamp >= $3 AND timestamp < $4
		)
	`, userID, kind, from, to).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func collectEvents(rows pgx.Rows) ([]attendance.Event, error) {
	var events []attendance.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
