package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/silabu/attendance-backend-go/internal/domain/auth"
	"github.com/silabu/attendance-backend-go/internal/domain/leave"
	"github.com/silabu/attendance-backend-go/internal/domain/user"
)

type LeaveServiceImpl struct {
	records leave.LeaveRepository
}

func NewLeaveService(leaveRepo leave.LeaveRepository) leave.LeaveService {
	return &LeaveServiceImpl{records: leaveRepo}
}

func callerFromContext(ctx context.Context) (userID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", auth.ErrNotAuthenticated
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", auth.ErrNotAuthenticated
	}
	roleStr, _ := claims["role"].(string)
	return userID, user.Role(roleStr), nil
}

// Request implements leave.LeaveService.
func (s *LeaveServiceImpl) Request(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := s.records.Create(ctx, leave.LeaveRecord{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
		Status:    leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave record: %w", err)
	}

	return leave.ToResponse(created), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context) ([]leave.LeaveResponse, error) {
	userID, role, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// Administrators see everyone's records.
	filterUser := userID
	if role == user.RoleAdmin {
		filterUser = ""
	}

	records, err := s.records.List(ctx, filterUser)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, leave.ToResponse(rec))
	}
	return responses, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return s.process(ctx, id, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return s.process(ctx, id, leave.StatusRejected)
}

func (s *LeaveServiceImpl) process(ctx context.Context, id string, status leave.LeaveStatus) (leave.LeaveResponse, error) {
	_, role, err := callerFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if role != user.RoleAdmin {
		return leave.LeaveResponse{}, user.ErrAdminPrivilegeRequired
	}

	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveResponse{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to get leave record: %w", err)
	}

	if record.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	if err := s.records.UpdateStatus(ctx, id, status); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave status: %w", err)
	}

	record.Status = status
	return leave.ToResponse(record), nil
}

// Delete implements leave.LeaveService. Employees can withdraw their
// own pending requests; administrators can delete any record.
func (s *LeaveServiceImpl) Delete(ctx context.Context, id string) error {
	userID, role, err := callerFromContext(ctx)
	if err != nil {
		return err
	}

	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveNotFound
		}
		return fmt.Errorf("failed to get leave record: %w", err)
	}

	if role != user.RoleAdmin {
		if record.UserID != userID {
			return leave.ErrNotOwner
		}
		if record.Status != leave.StatusPending {
			return leave.ErrLeaveAlreadyProcessed
		}
	}

	return s.records.Delete(ctx, id)
}
