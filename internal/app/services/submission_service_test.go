package services

import (
	"context"
	"errors"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	appAuth "github.com/denizatik/edutrack/internal/app/auth"
	"github.com/denizatik/edutrack/internal/app/models"
	"github.com/denizatik/edutrack/internal/pkg/apperrors"
)

type submissionFixture struct {
	assignmentRepo *fakeAssignmentRepo
	submissionRepo *fakeSubmissionRepo
	storage        *fakeFileStorage
	svc            SubmissionService
}

func newSubmissionFixture() *submissionFixture {
	assignmentRepo := newFakeAssignmentRepo()
	submissionRepo := newFakeSubmissionRepo()
	storage := &fakeFileStorage{}
	authz := appAuth.NewAuthorizationService(assignmentRepo)
	return &submissionFixture{
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		storage:        storage,
		svc:            NewSubmissionService(submissionRepo, authz, storage),
	}
}

func (f *submissionFixture) addAssignment(t *testing.T, teacherID int64) int64 {
	t.Helper()
	a := &models.Assignment{
		Title:       "Essay",
		Description: "d",
		Deadline:    time.Now().Add(time.Hour),
		TeacherID:   teacherID,
	}
	if err := f.assignmentRepo.Create(context.Background(), a); err != nil {
		t.Fatalf("seeding assignment: %v", err)
	}
	return a.ID
}

func attachment(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name}
}

func TestSubmitWork(t *testing.T) {
	f := newSubmissionFixture()
	ctx := context.Background()
	assignmentID := f.addAssignment(t, 7)

	resp, err := f.svc.SubmitWork(ctx, 3, assignmentID, attachment("essay.pdf"))
	if err != nil {
		t.Fatalf("SubmitWork() error = %v", err)
	}
	if resp.AssignmentID != assignmentID || resp.StudentID != 3 {
		t.Errorf("submission = %+v, want assignment %d student 3", resp, assignmentID)
	}
	if resp.AttachmentPath != "uploads/submissions/3_essay.pdf" {
		t.Errorf("AttachmentPath = %q, want uploads/submissions/3_essay.pdf", resp.AttachmentPath)
	}
	if resp.SubmittedAt.IsZero() {
		t.Error("SubmittedAt is zero")
	}
}

func TestSubmitWorkMissingAssignment(t *testing.T) {
	f := newSubmissionFixture()

	_, err := f.svc.SubmitWork(context.Background(), 3, 999, attachment("essay.pdf"))
	if !errors.Is(err, apperrors.ErrAssignmentNotFound) {
		t.Errorf("SubmitWork(missing assignment) error = %v, want ErrAssignmentNotFound", err)
	}
	// Nothing may be written for a missing assignment
	if len(f.storage.saved) != 0 {
		t.Errorf("files saved = %v, want none", f.storage.saved)
	}
}

func TestSubmitWorkWithoutAttachment(t *testing.T) {
	f := newSubmissionFixture()
	assignmentID := f.addAssignment(t, 7)

	_, err := f.svc.SubmitWork(context.Background(), 3, assignmentID, nil)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("SubmitWork(nil attachment) error = %v, want ErrValidationFailed", err)
	}
}

func TestSubmitWorkDuplicate(t *testing.T) {
	f := newSubmissionFixture()
	ctx := context.Background()
	assignmentID := f.addAssignment(t, 7)

	if _, err := f.svc.SubmitWork(ctx, 3, assignmentID, attachment("v1.pdf")); err != nil {
		t.Fatalf("first SubmitWork() error = %v", err)
	}
	if _, err := f.svc.SubmitWork(ctx, 3, assignmentID, attachment("v2.pdf")); !errors.Is(err, apperrors.ErrSubmissionExists) {
		t.Errorf("second SubmitWork() error = %v, want ErrSubmissionExists", err)
	}

	// The recorded submission stays the first one
	got, err := f.svc.GetOwnSubmission(ctx, 3, assignmentID)
	if err != nil {
		t.Fatalf("GetOwnSubmission() error = %v", err)
	}
	if got.AttachmentPath != "uploads/submissions/3_v1.pdf" {
		t.Errorf("surviving submission = %q, want the first upload", got.AttachmentPath)
	}
}

func TestSubmitWorkConcurrentDuplicate(t *testing.T) {
	f := newSubmissionFixture()
	assignmentID := f.addAssignment(t, 7)

	// Two racing submits for the same pair: exactly one wins, the loser
	// observes a conflict, never a second row.
	const racers = 2
	errs := make([]error, racers)
	var wg sync.WaitGroup
	wg.Add(racers)
	for i := 0; i < racers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.SubmitWork(context.Background(), 3, assignmentID, attachment("race.pdf"))
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperrors.ErrSubmissionExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Errorf("successes = %d, conflicts = %d; want 1 and 1", successes, conflicts)
	}

	rows, err := f.submissionRepo.GetAllByAssignment(context.Background(), assignmentID)
	if err != nil {
		t.Fatalf("GetAllByAssignment() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("stored submissions = %d, want 1", len(rows))
	}
}

func TestSubmitWorkDifferentAssignmentsAllowed(t *testing.T) {
	f := newSubmissionFixture()
	ctx := context.Background()
	first := f.addAssignment(t, 7)
	second := f.addAssignment(t, 7)

	if _, err := f.svc.SubmitWork(ctx, 3, first, attachment("a.pdf")); err != nil {
		t.Fatalf("SubmitWork(first) error = %v", err)
	}
	if _, err := f.svc.SubmitWork(ctx, 3, second, attachment("b.pdf")); err != nil {
		t.Errorf("SubmitWork(second assignment) error = %v, want nil", err)
	}
}

func TestGetOwnSubmissionNeverSubmitted(t *testing.T) {
	f := newSubmissionFixture()
	assignmentID := f.addAssignment(t, 7)

	_, err := f.svc.GetOwnSubmission(context.Background(), 3, assignmentID)
	if !errors.Is(err, apperrors.ErrSubmissionNotFound) {
		t.Errorf("GetOwnSubmission() error = %v, want ErrSubmissionNotFound", err)
	}
}

func TestListSubmissionsForAssignment(t *testing.T) {
	f := newSubmissionFixture()
	ctx := context.Background()
	assignmentID := f.addAssignment(t, 7)

	for _, studentID := range []int64{3, 5, 4} {
		if _, err := f.svc.SubmitWork(ctx, studentID, assignmentID, attachment("work.pdf")); err != nil {
			t.Fatalf("SubmitWork(student %d) error = %v", studentID, err)
		}
	}

	resp, err := f.svc.ListSubmissionsForAssignment(ctx, 7, assignmentID)
	if err != nil {
		t.Fatalf("ListSubmissionsForAssignment() error = %v", err)
	}
	if len(resp.Submissions) != 3 {
		t.Fatalf("submission count = %d, want 3", len(resp.Submissions))
	}
	// Insertion order, not student order
	wantStudents := []int64{3, 5, 4}
	for i, s := range resp.Submissions {
		if s.StudentID != wantStudents[i] {
			t.Errorf("submissions[%d].StudentID = %d, want %d", i, s.StudentID, wantStudents[i])
		}
		// The joined student identity is surfaced to the owner
		if s.Student == nil {
			t.Errorf("submissions[%d].Student is nil", i)
		} else if s.Student.ID != wantStudents[i] {
			t.Errorf("submissions[%d].Student.ID = %d, want %d", i, s.Student.ID, wantStudents[i])
		}
	}
}

func TestListSubmissionsForAssignmentNotOwner(t *testing.T) {
	f := newSubmissionFixture()
	ctx := context.Background()
	assignmentID := f.addAssignment(t, 7)

	if _, err := f.svc.SubmitWork(ctx, 3, assignmentID, attachment("work.pdf")); err != nil {
		t.Fatalf("SubmitWork() error = %v", err)
	}

	// A different teacher gets a permission error, not a not-found
	_, err := f.svc.ListSubmissionsForAssignment(ctx, 8, assignmentID)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("ListSubmissionsForAssignment(non-owner) error = %v, want ErrPermissionDenied", err)
	}
}

func TestListSubmissionsForAssignmentMissing(t *testing.T) {
	f := newSubmissionFixture()

	_, err := f.svc.ListSubmissionsForAssignment(context.Background(), 7, 999)
	if !errors.Is(err, apperrors.ErrAssignmentNotFound) {
		t.Errorf("ListSubmissionsForAssignment(missing) error = %v, want ErrAssignmentNotFound", err)
	}
}

func TestListOwnSubmissions(t *testing.T) {
	f := newSubmissionFixture()
	ctx := context.Background()
	first := f.addAssignment(t, 7)
	second := f.addAssignment(t, 7)

	if _, err := f.svc.SubmitWork(ctx, 3, first, attachment("a.pdf")); err != nil {
		t.Fatalf("SubmitWork() error = %v", err)
	}
	if _, err := f.svc.SubmitWork(ctx, 4, first, attachment("other.pdf")); err != nil {
		t.Fatalf("SubmitWork() error = %v", err)
	}
	if _, err := f.svc.SubmitWork(ctx, 3, second, attachment("b.pdf")); err != nil {
		t.Fatalf("SubmitWork() error = %v", err)
	}

	resp, err := f.svc.ListOwnSubmissions(ctx, 3)
	if err != nil {
		t.Fatalf("ListOwnSubmissions() error = %v", err)
	}
	if len(resp.Submissions) != 2 {
		t.Fatalf("submission count = %d, want 2", len(resp.Submissions))
	}
	if resp.Submissions[0].AssignmentID != first || resp.Submissions[1].AssignmentID != second {
		t.Errorf("submissions out of order: %+v", resp.Submissions)
	}
}
