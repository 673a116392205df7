package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/silabu/attendance-backend-go/internal/domain/auth"
	"github.com/silabu/attendance-backend-go/internal/domain/device"
	"github.com/silabu/attendance-backend-go/internal/domain/employee"
	"github.com/silabu/attendance-backend-go/internal/domain/user"
	"github.com/silabu/attendance-backend-go/internal/pkg/database"
	"github.com/silabu/attendance-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	db        *database.DB
	users     user.UserRepository
	employees employee.EmployeeRepository
	bindings  device.BindingRepository
}

func NewEmployeeService(
	db *database.DB,
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	bindingRepo device.BindingRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:        db,
		users:     userRepo,
		employees: employeeRepo,
		bindings:  bindingRepo,
	}
}

func requireAdmin(ctx context.Context) error {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.ErrNotAuthenticated
	}
	if role, _ := claims["role"].(string); user.Role(role) != user.RoleAdmin {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}

// Create implements employee.EmployeeService. The login row and the
// profile row are created in one transaction so a failure leaves
// neither behind.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(passwordHash)

	var created employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		account, err := s.users.Create(txCtx, user.User{
			Email:        req.Email,
			PasswordHash: &hashStr,
			Role:         user.Role(req.Role),
		})
		if err != nil {
			return err
		}

		created, err = s.employees.Create(txCtx, employee.Employee{
			ID:          account.ID,
			FullName:    req.FullName,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			AvatarURL:   req.AvatarURL,
		})
		if err != nil {
			return err
		}

		role := string(account.Role)
		created.Role = &role
		return nil
	})
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return employee.EmployeeResponse{}, employee.ErrEmailExists
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee.ToResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	found, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee.ToResponse(found), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	all, err := s.employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(all))
	for _, e := range all {
		responses = append(responses, employee.ToResponse(e))
	}
	return responses, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if req.FullName != nil {
		current.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		current.PhoneNumber = req.PhoneNumber
	}
	if req.AvatarURL != nil {
		current.AvatarURL = req.AvatarURL
	}

	if err := s.employees.Update(ctx, current); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return employee.ToResponse(current), nil
}

// Delete implements employee.EmployeeService. Removes the profile, the
// login and any device bindings in one transaction.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if _, err := s.employees.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.bindings.ClearForUser(txCtx, id); err != nil {
			return err
		}
		if err := s.employees.Delete(txCtx, id); err != nil {
			return err
		}
		return s.users.Delete(txCtx, id)
	})
}

// ClearDevices implements employee.EmployeeService. This is the only
// way a device binding is ever released.
func (s *EmployeeServiceImpl) ClearDevices(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if _, err := s.employees.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	return s.bindings.ClearForUser(ctx, id)
}
