package employee

import (
	"context"
)

// EmployeeService defines business logic for employee administration.
type EmployeeService interface {
	// Create provisions a login and a profile for a new employee
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// Get retrieves a single employee
	Get(ctx context.Context, id string) (EmployeeResponse, error)

	// List retrieves all employees
	List(ctx context.Context) ([]EmployeeResponse, error)

	// Update edits an employee's profile
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Delete removes an employee and their login
	Delete(ctx context.Context, id string) error

	// ClearDevices releases all device bindings held by an employee so
	// a replacement device can bind on next check-in
	ClearDevices(ctx context.Context, id string) error
}
