package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	violation := &pgconn.PgError{Code: "23505", ConstraintName: "uq_submissions_assignment_student"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "matching constraint", err: violation, constraint: "uq_submissions_assignment_student", want: true},
		{name: "wrapped error", err: fmt.Errorf("insert: %w", violation), constraint: "uq_submissions_assignment_student", want: true},
		{name: "different constraint", err: violation, constraint: "uq_users_username", want: false},
		{name: "different code", err: &pgconn.PgError{Code: "23503", ConstraintName: "uq_users_username"}, constraint: "uq_users_username", want: false},
		{name: "plain error", err: errors.New("boom"), constraint: "uq_users_username", want: false},
		{name: "nil error", err: nil, constraint: "uq_users_username", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err, tt.constraint); got != tt.want {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}
