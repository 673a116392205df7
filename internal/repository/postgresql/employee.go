package postgresql

import (
	"context"

	"github.com/silabu/attendance-backend-go/internal/domain/employee"
	"github.com/silabu/attendance-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// Create implements employee.EmployeeRepository. The employee's ID is
// the owning user's ID, so it is supplied rather than generated.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, full_name, email, phone_number, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, full_name, email, phone_number, avatar_url, created_at, updated_at
	`

	var created employee.Employee
	err := q.QueryRow(ctx, query,
		newEmployee.ID,
		newEmployee.FullName,
		newEmployee.Email,
		newEmployee.PhoneNumber,
		newEmployee.AvatarURL,
	).Scan(
		&created.ID,
		&created.FullName,
		&created.Email,
		&created.PhoneNumber,
		&created.AvatarURL,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.full_name, e.email, e.phone_number, e.avatar_url, e.created_at, e.updated_at, u.role
		FROM employees e
		JOIN users u ON u.id = e.id
		WHERE e.id = $1
	`

	var found employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.FullName,
		&found.Email,
		&found.PhoneNumber,
		&found.AvatarURL,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.Role,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return found, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.full_name, e.email, e.phone_number, e.avatar_url, e.created_at, e.updated_at, u.role
		FROM employees e
		JOIN users u ON u.id = e.id
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID,
			&e.FullName,
			&e.Email,
			&e.PhoneNumber,
			&e.AvatarURL,
			&e.CreatedAt,
			&e.UpdatedAt,
			&e.Role,
		); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, updated employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $1, phone_number = $2, avatar_url = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, updated.FullName, updated.PhoneNumber, updated.AvatarURL, updated.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
