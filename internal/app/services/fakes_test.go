package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"sync"
	"time"

	"github.com/denizatik/edutrack/internal/app/models"
	"github.com/denizatik/edutrack/internal/pkg/apperrors"
)

// In-memory repository fakes. They enforce the same uniqueness rules as the
// database schema so service behavior under conflict can be exercised
// without a running Postgres.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return 0, apperrors.ErrUsernameExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return user.ID, nil
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type fakeAssignmentRepo struct {
	mu          sync.Mutex
	nextID      int64
	assignments map[int64]*models.Assignment
	createErr   error
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: map[int64]*models.Assignment{}}
}

func (r *fakeAssignmentRepo) Create(_ context.Context, a *models.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	a.ID = r.nextID
	a.CreatedAt = time.Now()
	clone := *a
	r.assignments[a.ID] = &clone
	return nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id int64) (*models.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[id]
	if !ok {
		return nil, apperrors.ErrAssignmentNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *fakeAssignmentRepo) GetAll(_ context.Context, page, pageSize int) ([]models.Assignment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []models.Assignment
	for id := int64(1); id <= r.nextID; id++ {
		if a, ok := r.assignments[id]; ok {
			all = append(all, *a)
		}
	}
	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

type submissionKey struct {
	assignmentID int64
	studentID    int64
}

type fakeSubmissionRepo struct {
	mu          sync.Mutex
	nextID      int64
	submissions []*models.Submission
	byPair      map[submissionKey]*models.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{byPair: map[submissionKey]*models.Submission{}}
}

// Create enforces the one-submission-per-pair rule under a lock, mirroring
// the unique constraint the real repository relies on.
func (r *fakeSubmissionRepo) Create(_ context.Context, s *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := submissionKey{assignmentID: s.AssignmentID, studentID: s.StudentID}
	if _, exists := r.byPair[key]; exists {
		return apperrors.ErrSubmissionExists
	}
	r.nextID++
	s.ID = r.nextID
	s.SubmittedAt = time.Now()
	clone := *s
	r.submissions = append(r.submissions, &clone)
	r.byPair[key] = &clone
	return nil
}

func (r *fakeSubmissionRepo) GetByAssignmentAndStudent(_ context.Context, assignmentID, studentID int64) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byPair[submissionKey{assignmentID: assignmentID, studentID: studentID}]
	if !ok {
		return nil, apperrors.ErrSubmissionNotFound
	}
	clone := *s
	return &clone, nil
}

// GetAllByAssignment returns submissions in insertion order with the
// student relation populated, as the joined query does.
func (r *fakeSubmissionRepo) GetAllByAssignment(_ context.Context, assignmentID int64) ([]models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Submission
	for _, s := range r.submissions {
		if s.AssignmentID == assignmentID {
			clone := *s
			clone.Student = &models.User{
				ID:       s.StudentID,
				Username: fmt.Sprintf("student%d", s.StudentID),
				RoleType: models.RoleStudent,
			}
			out = append(out, clone)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) GetAllByStudent(_ context.Context, studentID int64) ([]models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Submission
	for _, s := range r.submissions {
		if s.StudentID == studentID {
			out = append(out, *s)
		}
	}
	return out, nil
}

// fakeFileStorage records uploads without touching the filesystem.
type fakeFileStorage struct {
	mu      sync.Mutex
	saved   []string
	saveErr error
}

func (f *fakeFileStorage) SaveUpload(fileHeader *multipart.FileHeader, category string, ownerID int64) (string, error) {
	if fileHeader == nil {
		return "", nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	reference := path.Join("uploads", category, fmt.Sprintf("%d_%s", ownerID, fileHeader.Filename))
	f.saved = append(f.saved, reference)
	return reference, nil
}

func (f *fakeFileStorage) Open(string) (io.ReadCloser, error) {
	return nil, apperrors.ErrFileNotFound
}

func (f *fakeFileStorage) FullPath(reference string) string {
	return reference
}
