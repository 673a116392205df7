package office

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/silabu/attendance-backend-go/internal/domain/auth"
	"github.com/silabu/attendance-backend-go/internal/domain/office"
	"github.com/silabu/attendance-backend-go/internal/domain/user"
	"github.com/silabu/attendance-backend-go/internal/pkg/database"
	"github.com/silabu/attendance-backend-go/internal/repository/postgresql"
)

type OfficeServiceImpl struct {
	db      *database.DB
	offices office.OfficeRepository
}

func NewOfficeService(db *database.DB, officeRepo office.OfficeRepository) office.OfficeService {
	return &OfficeServiceImpl{db: db, offices: officeRepo}
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

// Create implements office.OfficeService.
func (s *OfficeServiceImpl) Create(ctx context.Context, req office.OfficeRequest) (office.OfficeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return office.OfficeResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return office.OfficeResponse{}, err
	}

	// The office row and its policy rows land together or not at all.
	var created office.Office
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		var err error
		created, err = s.offices.Create(txCtx, req.ToEntity())
		return err
	})
	if err != nil {
		if errors.Is(err, office.ErrOfficeNameExists) {
			return office.OfficeResponse{}, err
		}
		return office.OfficeResponse{}, fmt.Errorf("failed to create office: %w", err)
	}

	return office.ToResponse(created), nil
}

// Get implements office.OfficeService.
func (s *OfficeServiceImpl) Get(ctx context.Context, id string) (office.OfficeResponse, error) {
	found, err := s.offices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, office.ErrOfficeNotFound) {
			return office.OfficeResponse{}, office.ErrOfficeNotFound
		}
		return office.OfficeResponse{}, fmt.Errorf("failed to get office: %w", err)
	}
	return office.ToResponse(found), nil
}

// GetPrimary implements office.OfficeService.
func (s *OfficeServiceImpl) GetPrimary(ctx context.Context) (office.OfficeResponse, error) {
	found, err := s.offices.GetPrimary(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, office.ErrOfficeNotFound) {
			return office.OfficeResponse{}, office.ErrOfficeNotFound
		}
		return office.OfficeResponse{}, fmt.Errorf("failed to get office: %w", err)
	}
	return office.ToResponse(found), nil
}

// List implements office.OfficeService.
func (s *OfficeServiceImpl) List(ctx context.Context) ([]office.OfficeResponse, error) {
	all, err := s.offices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offices: %w", err)
	}

	responses := make([]office.OfficeResponse, 0, len(all))
	for _, o := range all {
		responses = append(responses, office.ToResponse(o))
	}
	return responses, nil
}

// Update implements office.OfficeService.
func (s *OfficeServiceImpl) Update(ctx context.Context, id string, req office.OfficeRequest) (office.OfficeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return office.OfficeResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return office.OfficeResponse{}, err
	}

	current, err := s.offices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, office.ErrOfficeNotFound) {
			return office.OfficeResponse{}, office.ErrOfficeNotFound
		}
		return office.OfficeResponse{}, fmt.Errorf("failed to get office: %w", err)
	}

	updated := req.ToEntity()
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		return s.offices.Update(txCtx, updated)
	})
	if err != nil {
		return office.OfficeResponse{}, fmt.Errorf("failed to update office: %w", err)
	}

	return office.ToResponse(updated), nil
}

// Delete implements office.OfficeService.
func (s *OfficeServiceImpl) Delete(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if _, err := s.offices.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, office.ErrOfficeNotFound) {
			return office.ErrOfficeNotFound
		}
		return fmt.Errorf("failed to get office: %w", err)
	}

	return s.offices.Delete(ctx, id)
}
