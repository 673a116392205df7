package postgresql

import (
	"context"

	"github.com/silabu/attendance-backend-go/internal/domain/leave"
	"github.com/silabu/attendance-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `id, user_id, start_date, end_date, reason, status, created_at, updated_at`

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, record leave.LeaveRecord) (leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_records (id, user_id, start_date, end_date, reason, status, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + leaveColumns

	var created leave.LeaveRecord
	err := q.QueryRow(ctx, query,
		record.UserID,
		record.StartDate,
		record.EndDate,
		record.Reason,
		record.Status,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.StartDate,
		&created.EndDate,
		&created.Reason,
		&created.Status,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRecord{}, err
	}
	return created, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	var found leave.LeaveRecord
	err := q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_records WHERE id = $1`, id).Scan(
		&found.ID,
		&found.UserID,
		&found.StartDate,
		&found.EndDate,
		&found.Reason,
		&found.Status,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRecord{}, err
	}
	return found, nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, userID string) ([]leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_records ORDER BY start_date DESC`
	args := []interface{}{}
	if userID != "" {
		query = `SELECT ` + leaveColumns + ` FROM leave_records WHERE user_id = $1 ORDER BY start_date DESC`
		args = append(args, userID)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []leave.LeaveRecord
	for rows.Next() {
		var rec leave.LeaveRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.StartDate,
			&rec.EndDate,
			&rec.Reason,
			&rec.Status,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// UpdateStatus implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE leave_records SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}
