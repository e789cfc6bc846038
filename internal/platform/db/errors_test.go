package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"sentinel", ErrNotFound, true},
		{"wrapped sentinel", fmt.Errorf("get doctor: %w", ErrNotFound), true},
		{"no rows", pgx.ErrNoRows, true},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), true},
		{"other", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSQLStateClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "doctor_email_key"})
	fk := &pgconn.PgError{Code: CodeForeignKeyViolation}
	check := &pgconn.PgError{Code: CodeCheckViolation}
	tooLong := &pgconn.PgError{Code: CodeStringTooLong}
	outOfRange := &pgconn.PgError{Code: CodeNumericOutOfRange}

	if !IsUniqueViolation(unique) {
		t.Error("expected unique violation")
	}
	if ConstraintName(unique) != "doctor_email_key" {
		t.Errorf("expected constraint name, got %q", ConstraintName(unique))
	}
	if !IsForeignKeyViolation(fk) || IsForeignKeyViolation(unique) {
		t.Error("foreign key classification mismatch")
	}
	if !IsConstraintViolation(check) || !IsConstraintViolation(tooLong) || !IsConstraintViolation(outOfRange) {
		t.Error("expected check, length and range failures to be constraint violations")
	}
	if IsConstraintViolation(unique) {
		t.Error("unique violation is not a constraint violation")
	}
	if IsUniqueViolation(errors.New("plain")) || ConstraintName(errors.New("plain")) != "" {
		t.Error("plain errors carry no SQLSTATE")
	}
}

func TestTxFromContext_Empty(t *testing.T) {
	if TxFromContext(context.Background()) != nil {
		t.Error("expected no transaction in a bare context")
	}
}

func TestTxRunner_NoPool(t *testing.T) {
	called := false
	err := NewTxRunner(nil).InTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected error without a pool")
	}
	if called {
		t.Error("expected fn not to run")
	}
}
