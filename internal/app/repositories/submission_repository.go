package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/denizatik/edutrack/internal/app/models"
	"github.com/denizatik/edutrack/internal/pkg/apperrors"
	"github.com/denizatik/edutrack/internal/pkg/dberrors"
	"github.com/denizatik/edutrack/internal/pkg/logger"
)

// uqSubmissionsAssignmentStudent guards the one-submission-per-student-per-
// assignment invariant at the storage layer. Concurrent inserts for the same
// pair resolve to exactly one success regardless of process interleaving.
const uqSubmissionsAssignmentStudent = "uq_submissions_assignment_student"

// ISubmissionRepository defines the interface for submission database operations
type ISubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error)
	GetAllByAssignment(ctx context.Context, assignmentID int64) ([]models.Submission, error)
	GetAllByStudent(ctx context.Context, studentID int64) ([]models.Submission, error)
}

// SubmissionRepository handles submission database operations
type SubmissionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new submission and fills in the generated id and
// submitted_at. There is deliberately no existence pre-check here: the
// unique constraint is the authority, and its violation maps to
// ErrSubmissionExists.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO submissions (attachment_path, assignment_id, student_id)
		VALUES ($1, $2, $3)
		RETURNING id, submitted_at`,
		submission.AttachmentPath, submission.AssignmentID, submission.StudentID).
		Scan(&submission.ID, &submission.SubmittedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err, uqSubmissionsAssignmentStudent) {
			return apperrors.ErrSubmissionExists
		}
		return fmt.Errorf("error creating submission: %w", err)
	}

	return nil
}

// GetByAssignmentAndStudent retrieves the single submission a student made
// for an assignment, if any.
func (r *SubmissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error) {
	submission := &models.Submission{}
	err := r.db.QueryRow(ctx, `
		SELECT id, submitted_at, attachment_path, assignment_id, student_id
		FROM submissions
		WHERE assignment_id = $1 AND student_id = $2`,
		assignmentID, studentID).Scan(
		&submission.ID, &submission.SubmittedAt, &submission.AttachmentPath,
		&submission.AssignmentID, &submission.StudentID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error getting submission: %w", err)
	}

	return submission, nil
}

// GetAllByAssignment retrieves all submissions for an assignment in
// insertion order, joined with the submitting student's identity.
func (r *SubmissionRepository) GetAllByAssignment(ctx context.Context, assignmentID int64) ([]models.Submission, error) {
	baseSelect := r.sb.Select(
		"s.id", "s.submitted_at", "s.attachment_path", "s.assignment_id", "s.student_id",
		"u.username as student_username",
	).
		From("submissions s").
		Join("users u ON s.student_id = u.id").
		Where(squirrel.Eq{"s.assignment_id": assignmentID}).
		OrderBy("s.id ASC")

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get submissions SQL")
		return nil, fmt.Errorf("failed to build get submissions query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get submissions query")
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	return scanSubmissionsWithStudent(rows)
}

// GetAllByStudent retrieves all submissions a student made, in insertion order
func (r *SubmissionRepository) GetAllByStudent(ctx context.Context, studentID int64) ([]models.Submission, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, submitted_at, attachment_path, assignment_id, student_id
		FROM submissions
		WHERE student_id = $1
		ORDER BY id ASC`,
		studentID)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get student submissions query")
		return nil, fmt.Errorf("failed to query student submissions: %w", err)
	}
	defer rows.Close()

	submissions := []models.Submission{}
	for rows.Next() {
		var submission models.Submission
		err := rows.Scan(
			&submission.ID, &submission.SubmittedAt, &submission.AttachmentPath,
			&submission.AssignmentID, &submission.StudentID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}

	return submissions, nil
}

// scanSubmissionsWithStudent scans submission rows that carry the student's username
func scanSubmissionsWithStudent(rows pgx.Rows) ([]models.Submission, error) {
	submissions := []models.Submission{}
	for rows.Next() {
		var submission models.Submission
		var studentUsername string

		err := rows.Scan(
			&submission.ID, &submission.SubmittedAt, &submission.AttachmentPath,
			&submission.AssignmentID, &submission.StudentID, &studentUsername,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}

		submission.Student = &models.User{
			ID:       submission.StudentID,
			Username: studentUsername,
			RoleType: models.RoleStudent,
		}
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}

	return submissions, nil
}
