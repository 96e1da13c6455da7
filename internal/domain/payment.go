package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// RefundWindowDays bounds how long after the charge a refund is accepted.
const RefundWindowDays = 30

// Payment is an opaque ledger entry for a rental charge. The gateway
// itself is an external collaborator; only amount and status are
// tracked here.
type Payment struct {
	ID            int32  `json:"id"`
	TransactionID string `json:"transaction_id"`

	UserID   int32 `json:"user_id"`
	RentalID int32 `json:"rental_id"`

	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`

	Method string        `json:"payment_method"`
	Status PaymentStatus `json:"status"`

	GatewayTransactionID string `json:"gateway_transaction_id,omitempty"`

	RefundAmount float64    `json:"refund_amount"`
	RefundReason string     `json:"refund_reason,omitempty"`
	RefundedAt   *time.Time `json:"refunded_at,omitempty"`

	CreatedOn   time.Time  `json:"created_on"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	UpdatedOn   time.Time  `json:"updated_on"`
}

func NewPayment(userID, rentalID int32, amount float64, method string) *Payment {
	return &Payment{
		TransactionID: fmt.Sprintf("PAY-%s", uuid.NewString()),
		UserID:        userID,
		RentalID:      rentalID,
		Amount:        amount,
		Currency:      "CHF",
		Method:        method,
		Status:        PaymentStatusPending,
	}
}

// Process moves a pending payment to processing.
func (p *Payment) Process(gatewayTransactionID string) error {
	if p.Status != PaymentStatusPending {
		return fmt.Errorf("%w: cannot process payment with status %s", ErrPreconditionFailed, p.Status)
	}
	p.Status = PaymentStatusProcessing
	if gatewayTransactionID != "" {
		p.GatewayTransactionID = gatewayTransactionID
	}
	return nil
}

// Complete marks the payment settled at now.
func (p *Payment) Complete(gatewayTransactionID string, now time.Time) error {
	if p.Status == PaymentStatusCompleted {
		return fmt.Errorf("%w: payment is already completed", ErrPreconditionFailed)
	}
	p.Status = PaymentStatusCompleted
	p.ProcessedAt = &now
	if gatewayTransactionID != "" {
		p.GatewayTransactionID = gatewayTransactionID
	}
	return nil
}

// Fail marks the payment as declined by the gateway.
func (p *Payment) Fail(now time.Time) {
	p.Status = PaymentStatusFailed
	p.ProcessedAt = &now
}

// Refund records a partial or full refund. Amount zero refunds the
// remaining balance.
func (p *Payment) Refund(amount float64, reason string, now time.Time) error {
	if p.Status != PaymentStatusCompleted {
		return fmt.Errorf("%w: can only refund completed payments", ErrPreconditionFailed)
	}
	if amount == 0 {
		amount = p.Amount - p.RefundAmount
	}
	if amount <= 0 {
		return fmt.Errorf("%w: refund amount must be greater than 0", ErrPreconditionFailed)
	}
	if p.RefundAmount+amount > p.Amount {
		return fmt.Errorf("%w: refund amount exceeds payment amount", ErrPreconditionFailed)
	}
	p.RefundAmount += amount
	p.RefundReason = reason
	p.RefundedAt = &now
	if p.RefundAmount >= p.Amount {
		p.Status = PaymentStatusRefunded
	}
	return nil
}

// IsRefundable reports whether a refund would currently be accepted.
func (p *Payment) IsRefundable(now time.Time) bool {
	if p.Status != PaymentStatusCompleted {
		return false
	}
	if p.RefundAmount >= p.Amount {
		return false
	}
	return now.Sub(p.CreatedOn) <= RefundWindowDays*24*time.Hour
}
