package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"scootrapid-backend/internal/domain"
	"scootrapid-backend/internal/repository"

	"github.com/lib/pq"
)

// ctxKey is an unexported key type for storing the *sql.Tx in context.
type ctxKey struct{}

var txKey = ctxKey{}

type unitOfWork struct {
	db *sql.DB
}

func NewUnitOfWork(db *sql.DB) repository.UnitOfWork {
	return &unitOfWork{db: db}
}

// WithinTx executes fn within a database transaction.
//   - If a transaction already exists in ctx, fn joins it (nested
//     calls are supported).
//   - If fn returns an error or panics, the transaction is rolled
//     back; on success it is committed.
//   - A unique-constraint violation surfaced by the database is
//     translated to domain.ErrConflict, the last-line defense against
//     two concurrent starts racing past the precondition checks.
func (uow *unitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := uow.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		_ = tx.Rollback()
		return translateConflict(err)
	}

	return translateConflict(tx.Commit())
}

// TxFromContext extracts the current *sql.Tx from ctx if present.
func TxFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

func translateConflict(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if strings.Contains(pqErr.Constraint, "active") {
			return domain.ErrConflict
		}
	}
	return err
}
