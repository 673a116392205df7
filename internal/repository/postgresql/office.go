package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/silabu/attendance-backend-go/internal/domain/office"
	"github.com/silabu/attendance-backend-go/internal/pkg/database"
)

type officeRepositoryImpl struct {
	db *database.DB
}

func NewOfficeRepository(db *database.DB) office.OfficeRepository {
	return &officeRepositoryImpl{db: db}
}

// Create implements office.OfficeRepository. Callers are expected to
// run this inside a transaction; the policy rows live in child tables.
func (r *officeRepositoryImpl) Create(ctx context.Context, newOffice office.Office) (office.Office, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO offices (id, name, latitude, longitude, radius_meters, utc_offset_minutes, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	created := newOffice
	err := q.QueryRow(ctx, query,
		newOffice.Name,
		newOffice.Center.Latitude,
		newOffice.Center.Longitude,
		newOffice.RadiusMeters,
		newOffice.UTCOffsetMinutes,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return office.Office{}, office.ErrOfficeNameExists
		}
		return office.Office{}, err
	}

	if err := r.insertPolicy(ctx, q, created.ID, newOffice); err != nil {
		return office.Office{}, err
	}
	return created, nil
}

func (r *officeRepositoryImpl) insertPolicy(ctx context.Context, q database.Querier, officeID string, o office.Office) error {
	for weekday, hours := range o.WorkingHours {
		_, err := q.Exec(ctx, `
			INSERT INTO office_working_hours (office_id, weekday, start_minutes, end_minutes)
			VALUES ($1, $2, $3, $4)
		`, officeID, int(weekday), hours.Start.Minutes(), hours.End.Minutes())
		if err != nil {
			return err
		}
	}

	for _, h := range o.Holidays {
		_, err := q.Exec(ctx, `
			INSERT INTO office_holidays (office_id, month, day, name)
			VALUES ($1, $2, $3, $4)
		`, officeID, int(h.Month), h.Day, h.Name)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *officeRepositoryImpl) loadPolicy(ctx context.Context, q database.Querier, o *office.Office) error {
	rows, err := q.Query(ctx, `
		SELECT weekday, start_minutes, end_minutes
		FROM office_working_hours
		WHERE office_id = $1
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	o.WorkingHours = make(map[time.Weekday]office.DayHours)
	for rows.Next() {
		var weekday, startMinutes, endMinutes int
		if err := rows.Scan(&weekday, &startMinutes, &endMinutes); err != nil {
			return err
		}
		o.WorkingHours[time.Weekday(weekday)] = office.DayHours{
			Start: office.ClockTime{Hour: startMinutes / 60, Minute: startMinutes % 60},
			End:   office.ClockTime{Hour: endMinutes / 60, Minute: endMinutes % 60},
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	holidayRows, err := q.Query(ctx, `
		SELECT month, day, name
		FROM office_holidays
		WHERE office_id = $1
		ORDER BY month, day
	`, o.ID)
	if err != nil {
		return err
	}
	defer holidayRows.Close()

	for holidayRows.Next() {
		var month, day int
		var name string
		if err := holidayRows.Scan(&month, &day, &name); err != nil {
			return err
		}
		o.Holidays = append(o.Holidays, office.Holiday{
			Month: time.Month(month),
			Day:   day,
			Name:  name,
		})
	}
	return holidayRows.Err()
}

func (r *officeRepositoryImpl) getOne(ctx context.Context, q database.Querier, query string, args ...interface{}) (office.Office, error) {
	var o office.Office
	err := q.QueryRow(ctx, query, args...).Scan(
		&o.ID,
		&o.Name,
		&o.Center.Latitude,
		&o.Center.Longitude,
		&o.RadiusMeters,
		&o.UTCOffsetMinutes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.Office{}, office.ErrOfficeNotFound
		}
		return office.Office{}, err
	}

	if err := r.loadPolicy(ctx, q, &o); err != nil {
		return office.Office{}, err
	}
	return o, nil
}

// GetByID implements office.OfficeRepository.
func (r *officeRepositoryImpl) GetByID(ctx context.Context, id string) (office.Office, error) {
	q := GetQuerier(ctx, r.db)
	return r.getOne(ctx, q, `
		SELECT id, name, latitude, longitude, radius_meters, utc_offset_minutes, created_at, updated_at
		FROM offices
		WHERE id = $1
	`, id)
}

// GetPrimary implements office.OfficeRepository. The oldest office
// governs check-ins while the deployment runs a single site.
func (r *officeRepositoryImpl) GetPrimary(ctx context.Context) (office.Office, error) {
	q := GetQuerier(ctx, r.db)
	return r.getOne(ctx, q, `
		SELECT id, name, latitude, longitude, radius_meters, utc_offset_minutes, created_at, updated_at
		FROM offices
		ORDER BY created_at
		LIMIT 1
	`)
}

// List implements office.OfficeRepository.
func (r *officeRepositoryImpl) List(ctx context.Context) ([]office.Office, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, latitude, longitude, radius_meters, utc_offset_minutes, created_at, updated_at
		FROM offices
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offices []office.Office
	for rows.Next() {
		var o office.Office
		if err := rows.Scan(
			&o.ID,
			&o.Name,
			&o.Center.Latitude,
			&o.Center.Longitude,
			&o.RadiusMeters,
			&o.UTCOffsetMinutes,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		offices = append(offices, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range offices {
		if err := r.loadPolicy(ctx, q, &offices[i]); err != nil {
			return nil, err
		}
	}
	return offices, nil
}

// Update implements office.OfficeRepository. The policy rows are
// replaced wholesale; callers run this inside a transaction.
func (r *officeRepositoryImpl) Update(ctx context.Context, updated office.Office) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE offices
		SET name = $1, latitude = $2, longitude = $3, radius_meters = $4, utc_offset_minutes = $5, updated_at = NOW()
		WHERE id = $6
	`,
		updated.Name,
		updated.Center.Latitude,
		updated.Center.Longitude,
		updated.RadiusMeters,
		updated.UTCOffsetMinutes,
		updated.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return office.ErrOfficeNotFound
	}

	if _, err := q.Exec(ctx, `DELETE FROM office_working_hours WHERE office_id = $1`, updated.ID); err != nil {
		return err
	}
	if _, err := q.Exec(ctx, `DELETE FROM office_holidays WHERE office_id = $1`, updated.ID); err != nil {
		return err
	}

	return r.insertPolicy(ctx, q, updated.ID, updated)
}

// Delete implements office.OfficeRepository.
func (r *officeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM offices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return office.ErrOfficeNotFound
	}
	return nil
}
