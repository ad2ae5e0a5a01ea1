package dto

import (
	"time"

	"github.com/denizatik/edutrack/internal/app/models"
)

// SubmissionResponse represents a submission returned to clients
type SubmissionResponse struct {
	ID             int64     `json:"id" example:"1"`
	SubmittedAt    time.Time `json:"submittedAt"`
	AttachmentPath string    `json:"attachmentPath" example:"uploads/submissions/3_essay.pdf"`
	AssignmentID   int64     `json:"assignmentId" example:"1"`
	StudentID      int64     `json:"studentId" example:"3"`

	// Student is populated on listings that join the submitting user
	Student *UserResponse `json:"student,omitempty"`
}

// SubmissionListResponse is an ordered submission listing for one assignment
type SubmissionListResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
}

// NewSubmissionResponse converts a submission model to its response DTO
func NewSubmissionResponse(s *models.Submission) SubmissionResponse {
	resp := SubmissionResponse{
		ID:             s.ID,
		SubmittedAt:    s.SubmittedAt,
		AttachmentPath: s.AttachmentPath,
		AssignmentID:   s.AssignmentID,
		StudentID:      s.StudentID,
	}
	if s.Student != nil {
		student := NewUserResponse(s.Student)
		resp.Student = &student
	}
	return resp
}
