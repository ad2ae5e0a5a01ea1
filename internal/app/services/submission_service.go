package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	appAuth "github.com/denizatik/edutrack/internal/app/auth"
	"github.com/denizatik/edutrack/internal/app/models"
	"github.com/denizatik/edutrack/internal/app/models/dto"
	"github.com/denizatik/edutrack/internal/app/repositories"
	"github.com/denizatik/edutrack/internal/pkg/apperrors"
	"github.com/denizatik/edutrack/internal/pkg/filestorage"
	"github.com/denizatik/edutrack/internal/pkg/logger"
)

// SubmissionService defines the interface for submission operations
type SubmissionService interface {
	SubmitWork(ctx context.Context, studentID, assignmentID int64, attachment *multipart.FileHeader) (*dto.SubmissionResponse, error)
	GetOwnSubmission(ctx context.Context, studentID, assignmentID int64) (*dto.SubmissionResponse, error)
	ListSubmissionsForAssignment(ctx context.Context, teacherID, assignmentID int64) (*dto.SubmissionListResponse, error)
	ListOwnSubmissions(ctx context.Context, studentID int64) (*dto.SubmissionListResponse, error)
}

// submissionServiceImpl implements SubmissionService
type submissionServiceImpl struct {
	submissionRepo repositories.ISubmissionRepository
	authzService   *appAuth.AuthorizationService
	fileStorage    filestorage.FileStorage
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	submissionRepo repositories.ISubmissionRepository,
	authzService *appAuth.AuthorizationService,
	fileStorage filestorage.FileStorage,
) SubmissionService {
	return &submissionServiceImpl{
		submissionRepo: submissionRepo,
		authzService:   authzService,
		fileStorage:    fileStorage,
	}
}

// SubmitWork records a student's submission for an assignment. The
// assignment must exist; the file is written first and the row stores the
// reference returned by that write. The duplicate-submission case is decided
// solely by the storage-layer unique constraint, so two concurrent submits
// for the same pair resolve to one success and one conflict.
func (s *submissionServiceImpl) SubmitWork(ctx context.Context, studentID, assignmentID int64, attachment *multipart.FileHeader) (*dto.SubmissionResponse, error) {
	if attachment == nil {
		return nil, apperrors.ErrValidationFailed
	}

	if _, err := s.authzService.EnsureAssignmentExists(ctx, assignmentID); err != nil {
		return nil, err
	}

	reference, err := s.fileStorage.SaveUpload(attachment, filestorage.CategorySubmissions, studentID)
	if err != nil {
		return nil, err
	}

	submission := &models.Submission{
		AttachmentPath: reference,
		AssignmentID:   assignmentID,
		StudentID:      studentID,
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		if errors.Is(err, apperrors.ErrSubmissionExists) {
			// The stored file is orphaned here; reconciliation is out of scope.
			return nil, apperrors.ErrSubmissionExists
		}
		logger.Error().Err(err).Int64("assignmentID", assignmentID).Int64("studentID", studentID).Msg("Failed to create submission")
		return nil, fmt.Errorf("error creating submission: %w", err)
	}

	logger.Info().Int64("submissionID", submission.ID).Int64("assignmentID", assignmentID).Int64("studentID", studentID).Msg("Submission recorded")

	resp := dto.NewSubmissionResponse(submission)
	return &resp, nil
}

// GetOwnSubmission returns the student's submission for an assignment, or
// ErrSubmissionNotFound if they never submitted.
func (s *submissionServiceImpl) GetOwnSubmission(ctx context.Context, studentID, assignmentID int64) (*dto.SubmissionResponse, error) {
	submission, err := s.submissionRepo.GetByAssignmentAndStudent(ctx, assignmentID, studentID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewSubmissionResponse(submission)
	return &resp, nil
}

// ListSubmissionsForAssignment returns the insertion-ordered submissions for
// an assignment the teacher owns. Ownership is validated before any
// submission data is read.
func (s *submissionServiceImpl) ListSubmissionsForAssignment(ctx context.Context, teacherID, assignmentID int64) (*dto.SubmissionListResponse, error) {
	if _, err := s.authzService.ValidateAssignmentOwnership(ctx, assignmentID, teacherID); err != nil {
		return nil, err
	}

	submissions, err := s.submissionRepo.GetAllByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error getting submissions: %w", err)
	}

	return newSubmissionListResponse(submissions), nil
}

// ListOwnSubmissions returns all submissions the student made
func (s *submissionServiceImpl) ListOwnSubmissions(ctx context.Context, studentID int64) (*dto.SubmissionListResponse, error) {
	submissions, err := s.submissionRepo.GetAllByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error getting student submissions: %w", err)
	}

	return newSubmissionListResponse(submissions), nil
}

func newSubmissionListResponse(submissions []models.Submission) *dto.SubmissionListResponse {
	responses := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		responses = append(responses, dto.NewSubmissionResponse(&submissions[i]))
	}
	return &dto.SubmissionListResponse{Submissions: responses}
}
