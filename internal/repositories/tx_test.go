package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"smartride-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestWithTxRetryStopsOnNonRetryableError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = WithTxRetry(context.Background(), db, 3, func(tx *sql.Tx) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the original error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWithTxRetryRetriesMarkedErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err = WithTxRetry(context.Background(), db, 3, func(tx *sql.Tx) error {
		calls++
		if calls == 1 {
			return Retryable(errors.New("lost the race"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("fn ran %d times, want 2", calls)
	}
}

func TestWithTxRetryExhaustionBecomesConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	err = WithTxRetry(context.Background(), db, 2, func(tx *sql.Tx) error {
		return &mysql.MySQLError{Number: 1213, Message: "deadlock found"}
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"marked", Retryable(errors.New("x")), true},
		{"deadlock", &mysql.MySQLError{Number: 1213}, true},
		{"lock wait", &mysql.MySQLError{Number: 1205}, true},
		{"duplicate", &mysql.MySQLError{Number: 1062}, false},
		{"plain", errors.New("x"), false},
	}
	for _, tc := range cases {
		if got := IsRetryable(tc.err); got != tc.want {
			t.Fatalf("%s: IsRetryable = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsDuplicateKey(t *testing.T) {
	if !IsDuplicateKey(&mysql.MySQLError{Number: 1062}) {
		t.Fatalf("1062 should be a duplicate key")
	}
	if IsDuplicateKey(&mysql.MySQLError{Number: 1213}) {
		t.Fatalf("1213 is not a duplicate key")
	}
	if IsDuplicateKey(errors.New("x")) {
		t.Fatalf("plain errors are not duplicate keys")
	}
}

func TestPlaceholders(t *testing.T) {
	if got := placeholders(0); got != "" {
		t.Fatalf("placeholders(0) = %q", got)
	}
	if got := placeholders(1); got != "?" {
		t.Fatalf("placeholders(1) = %q", got)
	}
	if got := placeholders(3); got != "?,?,?" {
		t.Fatalf("placeholders(3) = %q", got)
	}
}
