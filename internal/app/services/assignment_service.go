package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/denizatik/edutrack/internal/app/models"
	"github.com/denizatik/edutrack/internal/app/models/dto"
	"github.com/denizatik/edutrack/internal/app/repositories"
	"github.com/denizatik/edutrack/internal/pkg/filestorage"
	"github.com/denizatik/edutrack/internal/pkg/helpers"
	"github.com/denizatik/edutrack/internal/pkg/logger"
)

// AssignmentService defines the interface for assignment operations
type AssignmentService interface {
	CreateAssignment(ctx context.Context, teacherID int64, req *dto.CreateAssignmentRequest, attachment *multipart.FileHeader) (*dto.AssignmentResponse, error)
	ListAssignments(ctx context.Context, page, pageSize int) (*dto.AssignmentListResponse, error)
	GetAssignment(ctx context.Context, id int64) (*dto.AssignmentResponse, error)
}

// assignmentServiceImpl implements AssignmentService
type assignmentServiceImpl struct {
	assignmentRepo repositories.IAssignmentRepository
	fileStorage    filestorage.FileStorage
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(assignmentRepo repositories.IAssignmentRepository, fileStorage filestorage.FileStorage) AssignmentService {
	return &assignmentServiceImpl{
		assignmentRepo: assignmentRepo,
		fileStorage:    fileStorage,
	}
}

// CreateAssignment creates a new assignment owned by the given teacher. The
// attachment, when present, is written before the row: a failed write aborts
// the create so no row ever carries a dangling reference. If the row insert
// fails after a successful write the file is orphaned; reconciliation of
// orphans is out of scope.
func (s *assignmentServiceImpl) CreateAssignment(ctx context.Context, teacherID int64, req *dto.CreateAssignmentRequest, attachment *multipart.FileHeader) (*dto.AssignmentResponse, error) {
	var attachmentPath *string
	if attachment != nil {
		reference, err := s.fileStorage.SaveUpload(attachment, filestorage.CategoryAssignments, teacherID)
		if err != nil {
			return nil, err
		}
		attachmentPath = &reference
	}

	assignment := &models.Assignment{
		Title:          req.Title,
		Description:    req.Description,
		Deadline:       req.Deadline, // accepted as-is, past deadlines included
		AttachmentPath: attachmentPath,
		TeacherID:      teacherID,
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		logger.Error().Err(err).Int64("teacherID", teacherID).Msg("Failed to create assignment")
		return nil, fmt.Errorf("error creating assignment: %w", err)
	}

	logger.Info().Int64("assignmentID", assignment.ID).Int64("teacherID", teacherID).Msg("Assignment created")

	resp := dto.NewAssignmentResponse(assignment)
	return &resp, nil
}

// ListAssignments retrieves assignments visible to any authenticated user
func (s *assignmentServiceImpl) ListAssignments(ctx context.Context, page, pageSize int) (*dto.AssignmentListResponse, error) {
	assignments, total, err := s.assignmentRepo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("error getting assignments: %w", err)
	}

	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		responses = append(responses, dto.NewAssignmentResponse(&assignments[i]))
	}

	return &dto.AssignmentListResponse{
		Assignments: responses,
		Pagination:  helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetAssignment retrieves a single assignment by id
func (s *assignmentServiceImpl) GetAssignment(ctx context.Context, id int64) (*dto.AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewAssignmentResponse(assignment)
	return &resp, nil
}
