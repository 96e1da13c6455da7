package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scootrapid-backend/internal/domain"
	"scootrapid-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, transaction_id, user_id, rental_id, amount, currency, payment_method, status, gateway_transaction_id, refund_amount, refund_reason, refunded_at, created_on, processed_at, updated_on`

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (transaction_id, user_id, rental_id, amount, currency, payment_method, status, processed_at, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return q(ctx, r.db).QueryRowContext(ctx, query,
		p.TransactionID, p.UserID, p.RentalID, p.Amount, p.Currency, p.Method, p.Status, p.ProcessedAt, now, now,
	).Scan(&p.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE id = $1`, paymentColumns)
	p := &domain.Payment{}
	// refund_amount predates the NOT NULL default; rows written before
	// the migration carry NULL.
	var refund sql.NullFloat64
	err := q(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.TransactionID, &p.UserID, &p.RentalID, &p.Amount, &p.Currency, &p.Method, &p.Status,
		&p.GatewayTransactionID, &refund, &p.RefundReason, &p.RefundedAt, &p.CreatedOn, &p.ProcessedAt, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: payment", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	p.RefundAmount = refund.Float64
	return p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE payments SET status=$1, gateway_transaction_id=$2, refund_amount=$3, refund_reason=$4, refunded_at=$5, processed_at=$6, updated_on=$7 WHERE id=$8`
	_, err := q(ctx, r.db).ExecContext(ctx, query,
		p.Status, p.GatewayTransactionID, p.RefundAmount, p.RefundReason, p.RefundedAt, p.ProcessedAt, time.Now(), p.ID)
	return err
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := q(ctx, r.db).QueryRowContext(ctx, `SELECT count(*) FROM payments WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM payments WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`, paymentColumns)
	rows, err := q(ctx, r.db).QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		var refund sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.TransactionID, &p.UserID, &p.RentalID, &p.Amount, &p.Currency, &p.Method, &p.Status,
			&p.GatewayTransactionID, &refund, &p.RefundReason, &p.RefundedAt, &p.CreatedOn, &p.ProcessedAt, &p.UpdatedOn); err != nil {
			return nil, 0, err
		}
		p.RefundAmount = refund.Float64
		payments = append(payments, p)
	}
	return payments, count, rows.Err()
}
