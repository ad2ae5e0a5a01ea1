package models

import "time"

// Submission represents a student's submitted work for an assignment.
// The (AssignmentID, StudentID) pair is unique, enforced by the database.
type Submission struct {
	ID             int64     `json:"id" db:"id"`
	SubmittedAt    time.Time `json:"submittedAt" db:"submitted_at"`
	AttachmentPath string    `json:"attachmentPath" db:"attachment_path"`
	AssignmentID   int64     `json:"assignmentId" db:"assignment_id"`
	StudentID      int64     `json:"studentId" db:"student_id"`

	// Relation, populated on reads that join users
	Student *User `json:"student,omitempty"`
}
