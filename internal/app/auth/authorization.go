// Package auth mediates access to repository operations: every gated
// operation declares its required role in one table, and ownership checks
// run before any data is disclosed.
package auth

import (
	"context"
	"errors"

	"github.com/denizatik/edutrack/internal/app/models"
	"github.com/denizatik/edutrack/internal/app/repositories"
	"github.com/denizatik/edutrack/internal/pkg/apperrors"
	"github.com/denizatik/edutrack/internal/pkg/logger"
)

// Operation identifies a gated repository operation
type Operation string

const (
	OpCreateAssignment Operation = "create_assignment"
	OpListAssignments  Operation = "list_assignments"
	OpSubmitWork       Operation = "submit_work"
	OpViewOwnWork      Operation = "view_own_work"
	OpListSubmissions  Operation = "list_submissions"
)

// requiredRoles maps each operation to the role it demands. Operations
// absent from the map require authentication only.
var requiredRoles = map[Operation]models.RoleType{
	OpCreateAssignment: models.RoleTeacher,
	OpSubmitWork:       models.RoleStudent,
	OpViewOwnWork:      models.RoleStudent,
	OpListSubmissions:  models.RoleTeacher,
}

// RequiredRole returns the role an operation demands. ok is false when any
// authenticated caller may perform it.
func RequiredRole(op Operation) (role models.RoleType, ok bool) {
	role, ok = requiredRoles[op]
	return role, ok
}

// AuthorizationService enforces role and ownership rules on top of the
// repositories. Role failures surface as ErrPermissionDenied and are never
// downgraded to a not-found error.
type AuthorizationService struct {
	assignmentRepo repositories.IAssignmentRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(assignmentRepo repositories.IAssignmentRepository) *AuthorizationService {
	return &AuthorizationService{
		assignmentRepo: assignmentRepo,
	}
}

// ValidateRole checks that the caller's role permits the operation
func (s *AuthorizationService) ValidateRole(role models.RoleType, op Operation) error {
	required, ok := RequiredRole(op)
	if !ok {
		return nil
	}
	if role != required {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateAssignmentOwnership checks that the assignment exists and is owned
// by the given teacher. An absent assignment yields ErrAssignmentNotFound; an
// ownership mismatch yields ErrPermissionDenied, so ownership failures are
// never reported as missing resources.
func (s *AuthorizationService) ValidateAssignmentOwnership(ctx context.Context, assignmentID, teacherID int64) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssignmentNotFound) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		logger.Error().Err(err).Int64("assignmentID", assignmentID).Msg("Error getting assignment during ownership check")
		return nil, err
	}

	if assignment.TeacherID != teacherID {
		return nil, apperrors.ErrPermissionDenied
	}

	return assignment, nil
}

// EnsureAssignmentExists checks assignment existence without an ownership requirement
func (s *AuthorizationService) EnsureAssignmentExists(ctx context.Context, assignmentID int64) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return assignment, nil
}
