package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"scootrapid-backend/internal/domain"
	"scootrapid-backend/internal/repository"
	"scootrapid-backend/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, email, password, firstName, lastName, phone string, role domain.UserRole) (*domain.User, string, string, error) {
	if len(password) < 8 {
		return nil, "", "", errors.New("password must be at least 8 characters")
	}
	if role == "" {
		role = domain.UserRoleCustomer
	}
	if role == domain.UserRoleAdmin {
		return nil, "", "", errors.New("cannot sign up as admin")
	}

	email = strings.ToLower(email)
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", "", fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}

	user := domain.NewUser(email, firstName, lastName, phone, role)
	if err := user.SetPassword(password); err != nil {
		return nil, "", "", err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil || !user.CheckPassword(password) {
		// Identical failure from both paths so login probing cannot
		// tell a wrong password from an unknown email.
		return "", "", errors.New("invalid email or password")
	}
	if !user.IsActive {
		return "", "", errors.New("account is deactivated")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", "", err
	}

	return s.issueTokens(user)
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}
	if !user.IsActive {
		return "", "", errors.New("account is deactivated")
	}
	return s.issueTokens(user)
}
