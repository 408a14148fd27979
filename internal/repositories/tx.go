package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"smartride-backend/internal/domain"

	"github.com/go-sql-driver/mysql"
)

// Querier is satisfied by both *sql.DB and *sql.Tx so repository methods can
// run inside or outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const (
	mysqlErrDuplicate = 1062
	mysqlErrLockWait  = 1205
	mysqlErrDeadlock  = 1213
)

var errRetryable = errors.New("retryable conflict")

// Retryable marks an error so WithTxRetry re-runs the transaction.
func Retryable(err error) error {
	return fmt.Errorf("%w: %w", errRetryable, err)
}

// IsRetryable reports whether the transaction lost a race it may win on a
// fresh attempt: an explicit retryable mark, an InnoDB deadlock, or a lock
// wait timeout.
func IsRetryable(err error) bool {
	if errors.Is(err, errRetryable) {
		return true
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlErrDeadlock || me.Number == mysqlErrLockWait
	}
	return false
}

// IsDuplicateKey reports a unique-constraint violation.
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicate
}

// WithTxRetry runs fn inside a transaction, retrying a bounded number of
// times on lock conflicts before surfacing a user-visible Conflict. fn must
// be safe to re-run from scratch; partial state is rolled back between
// attempts.
func WithTxRetry(ctx context.Context, db *sql.DB, attempts int, fn func(*sql.Tx) error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = runTx(ctx, db, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
	}
	return domain.ConflictError{Msg: "booking conflict, please retry", Err: err}
}

func runTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, n*2-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, '?')
	}
	return string(out)
}
