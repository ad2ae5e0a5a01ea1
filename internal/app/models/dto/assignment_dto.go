package dto

import (
	"time"

	"github.com/denizatik/edutrack/internal/app/models"
)

// CreateAssignmentRequest carries the multipart form fields for assignment creation.
// The optional attachment travels separately as a form file.
type CreateAssignmentRequest struct {
	Title       string    `form:"title" binding:"required,min=1,max=255"`
	Description string    `form:"description" binding:"required"`
	Deadline    time.Time `form:"deadline" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// AssignmentResponse represents an assignment returned to clients
type AssignmentResponse struct {
	ID             int64     `json:"id" example:"1"`
	Title          string    `json:"title" example:"Essay on thermodynamics"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"createdAt"`
	Deadline       time.Time `json:"deadline"`
	AttachmentPath *string   `json:"attachmentPath,omitempty" example:"uploads/assignments/1_brief.pdf"`
	TeacherID      int64     `json:"teacherId" example:"7"`

	// Teacher is populated on listings that join the owning user
	Teacher *UserResponse `json:"teacher,omitempty"`
}

// AssignmentListResponse is the paginated assignment listing
type AssignmentListResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	Pagination  PaginationInfo       `json:"pagination"`
}

// NewAssignmentResponse converts an assignment model to its response DTO
func NewAssignmentResponse(a *models.Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:             a.ID,
		Title:          a.Title,
		Description:    a.Description,
		CreatedAt:      a.CreatedAt,
		Deadline:       a.Deadline,
		AttachmentPath: a.AttachmentPath,
		TeacherID:      a.TeacherID,
	}
	if a.Teacher != nil {
		teacher := NewUserResponse(a.Teacher)
		resp.Teacher = &teacher
	}
	return resp
}
