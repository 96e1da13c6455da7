package service

import (
	"context"
	"fmt"
	"time"

	"scootrapid-backend/internal/domain"
	"scootrapid-backend/internal/repository"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
}

func NewPaymentService(paymentRepo repository.PaymentRepository, userRepo repository.UserRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, userRepo: userRepo}
}

func (s *paymentService) GetPayment(ctx context.Context, userID, paymentID int32) (*domain.Payment, error) {
	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !user.IsAdmin() {
			return nil, fmt.Errorf("%w: payment %d", domain.ErrNotFound, paymentID)
		}
	}
	return p, nil
}

func (s *paymentService) ListPayments(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	return s.paymentRepo.ListByUser(ctx, userID, page, pageSize)
}

// RefundPayment records a refund against a settled charge. Admin only;
// the gateway movement itself is outside this service.
func (s *paymentService) RefundPayment(ctx context.Context, actorID, paymentID int32, amount float64, reason string) (*domain.Payment, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins may issue refunds", domain.ErrPreconditionFailed)
	}

	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if !p.IsRefundable(now) {
		return nil, fmt.Errorf("%w: payment %s is not refundable", domain.ErrPreconditionFailed, p.TransactionID)
	}
	if err := p.Refund(amount, reason, now); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
