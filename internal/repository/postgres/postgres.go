package postgres

import (
	"context"
	"database/sql"

	"scootrapid-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UnitOfWork
	repository.UserRepository
	repository.ScooterRepository
	repository.RentalRepository
	repository.PaymentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		UnitOfWork:        NewUnitOfWork(db),
		UserRepository:    NewUserRepository(db),
		ScooterRepository: NewScooterRepository(db),
		RentalRepository:  NewRentalRepository(db),
		PaymentRepository: NewPaymentRepository(db),
	}
}

// querier is satisfied by both *sql.DB and *sql.Tx so repository
// methods transparently join an enclosing unit of work.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// q returns the transaction bound to ctx when inside WithinTx and the
// plain connection pool otherwise.
func q(ctx context.Context, db *sql.DB) querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db
}
