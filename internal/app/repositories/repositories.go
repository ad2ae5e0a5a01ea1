package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repository instances sharing one pool handle.
// The pool is passed in explicitly; repositories never reach for a global.
type Repositories struct {
	UserRepository       *UserRepository
	AssignmentRepository *AssignmentRepository
	SubmissionRepository *SubmissionRepository
}

// NewRepositories creates all repositories backed by the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		AssignmentRepository: NewAssignmentRepository(db),
		SubmissionRepository: NewSubmissionRepository(db),
	}
}
