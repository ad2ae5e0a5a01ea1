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
	"github.com/denizatik/edutrack/internal/pkg/helpers"
	"github.com/denizatik/edutrack/internal/pkg/logger"
)

// IAssignmentRepository defines the interface for assignment database operations
type IAssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id int64) (*models.Assignment, error)
	GetAll(ctx context.Context, page, pageSize int) ([]models.Assignment, int64, error)
}

// AssignmentRepository handles assignment database operations
type AssignmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new assignment and fills in the generated id and
// created_at. The deadline is stored as supplied, past instants included.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO assignments (title, description, deadline, attachment_path, teacher_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		assignment.Title, assignment.Description, assignment.Deadline,
		assignment.AttachmentPath, assignment.TeacherID).
		Scan(&assignment.ID, &assignment.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating assignment: %w", err)
	}

	return nil
}

// GetByID retrieves an assignment by ID
func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (*models.Assignment, error) {
	assignment := &models.Assignment{}
	err := r.db.QueryRow(ctx, `
		SELECT id, title, description, created_at, deadline, attachment_path, teacher_id
		FROM assignments
		WHERE id = $1`,
		id).Scan(
		&assignment.ID, &assignment.Title, &assignment.Description,
		&assignment.CreatedAt, &assignment.Deadline, &assignment.AttachmentPath,
		&assignment.TeacherID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error getting assignment: %w", err)
	}

	return assignment, nil
}

// GetAll retrieves assignments with pagination, joined with the owning
// teacher's identity.
func (r *AssignmentRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Assignment, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	countSelect := r.sb.Select("COUNT(*)").From("assignments")

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count assignments SQL")
		return nil, 0, fmt.Errorf("failed to build count assignments query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count assignments query")
		return nil, 0, fmt.Errorf("failed to count assignments: %w", err)
	}

	if totalItems == 0 {
		return []models.Assignment{}, 0, nil
	}

	baseSelect := r.sb.Select(
		"a.id", "a.title", "a.description", "a.created_at", "a.deadline",
		"a.attachment_path", "a.teacher_id",
		"u.username as teacher_username",
	).
		From("assignments a").
		Join("users u ON a.teacher_id = u.id").
		OrderBy("a.id ASC").
		Limit(uint64(limit)).
		Offset(offset)

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all assignments SQL")
		return nil, 0, fmt.Errorf("failed to build get assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all assignments query")
		return nil, 0, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var assignment models.Assignment
		var teacherUsername string

		err := rows.Scan(
			&assignment.ID, &assignment.Title, &assignment.Description,
			&assignment.CreatedAt, &assignment.Deadline, &assignment.AttachmentPath,
			&assignment.TeacherID, &teacherUsername,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning assignment row")
			return nil, 0, fmt.Errorf("failed to scan assignment row: %w", err)
		}

		assignment.Teacher = &models.User{
			ID:       assignment.TeacherID,
			Username: teacherUsername,
			RoleType: models.RoleTeacher,
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating assignment rows: %w", err)
	}

	return assignments, totalItems, nil
}
