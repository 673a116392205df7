package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/silabu/attendance-backend-go/internal/domain/device"
	"github.com/silabu/attendance-backend-go/internal/pkg/database"
)

type bindingRepositoryImpl struct {
	db *database.DB
}

func NewBindingRepository(db *database.DB) device.BindingRepository {
	return &bindingRepositoryImpl{db: db}
}

// GetByDeviceID implements device.BindingRepository.
func (r *bindingRepositoryImpl) GetByDeviceID(ctx context.Context, deviceID string) (*device.Binding, error) {
	q := GetQuerier(ctx, r.db)

	var b device.Binding
	err := q.QueryRow(ctx, `
		SELECT device_id, user_id, created_at
		FROM device_bindings
		WHERE device_id = $1
	`, deviceID).Scan(&b.DeviceID, &b.UserID, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// ListByUserID implements device.BindingRepository.
func (r *bindingRepositoryImpl) ListByUserID(ctx context.Context, userID string) ([]device.Binding, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT device_id, user_id, created_at
		FROM device_bindings
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bindings []device.Binding
	for rows.Next() {
		var b device.Binding
		if err := rows.Scan(&b.DeviceID, &b.UserID, &b.CreatedAt); err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}
	return bindings, rows.Err()
}

// BindIfAbsent implements device.BindingRepository. The primary key on
// device_id makes the first insert win; concurrent losers fall through
// to the read-back and see the winner's row.
func (r *bindingRepositoryImpl) BindIfAbsent(ctx context.Context, deviceID, userID string) (device.Binding, error) {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO device_bindings (device_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (device_id) DO NOTHING
	`, deviceID, userID)
	if err != nil {
		return device.Binding{}, err
	}

	var b device.Binding
	err = q.QueryRow(ctx, `
		SELECT device_id, user_id, created_at
		FROM device_bindings
		WHERE device_id = $1
	`, deviceID).Scan(&b.DeviceID, &b.UserID, &b.CreatedAt)
	if err != nil {
		return device.Binding{}, err
	}
	return b, nil
}

// ClearForUser implements device.BindingRepository.
func (r *bindingRepositoryImpl) ClearForUser(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM device_bindings WHERE user_id = $1`, userID)
	return err
}
