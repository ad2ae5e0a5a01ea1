package migrations

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeTx struct {
	pgx.Tx
	execSQL []string
	failOn  string
}

func (t *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if t.failOn != "" && strings.Contains(sql, t.failOn) {
		return pgconn.CommandTag{}, errors.New("syntax error")
	}
	t.execSQL = append(t.execSQL, sql)
	return pgconn.CommandTag{}, nil
}

func TestApplyMigrationRecordsVersionOnSameTransaction(t *testing.T) {
	tx := &fakeTx{}

	content := "CREATE TABLE users (id BIGSERIAL PRIMARY KEY);"
	if err := applyMigration(context.Background(), tx, "001_init.sql", "001", content); err != nil {
		t.Fatalf("applyMigration() error = %v", err)
	}

	if len(tx.execSQL) != 2 {
		t.Fatalf("exec count = %d, want 2 (migration + version record)", len(tx.execSQL))
	}
	if tx.execSQL[0] != content {
		t.Errorf("first statement = %q, want the migration content", tx.execSQL[0])
	}
	if !strings.Contains(tx.execSQL[1], "INSERT INTO schema_migrations") {
		t.Errorf("second statement = %q, want the version record insert", tx.execSQL[1])
	}
}

func TestApplyMigrationFailureSkipsVersionRecord(t *testing.T) {
	tx := &fakeTx{failOn: "CREATE TABLE"}

	err := applyMigration(context.Background(), tx, "001_init.sql", "001", "CREATE TABLE broken (;")
	if err == nil {
		t.Fatal("applyMigration() succeeded on a failing migration")
	}
	if !strings.Contains(err.Error(), "001_init.sql") {
		t.Errorf("error = %v, want it to name the migration file", err)
	}

	// The version must not be recorded when the migration itself failed
	for _, sql := range tx.execSQL {
		if strings.Contains(sql, "schema_migrations") {
			t.Errorf("version record executed despite migration failure: %q", sql)
		}
	}
}
