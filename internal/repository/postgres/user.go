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

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, phone, role, is_active, is_verified, created_on, updated_on, last_login`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, phone, role, is_active, is_verified, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return q(ctx, r.db).QueryRowContext(ctx, query,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Role, u.IsActive, u.IsVerified, now, now,
	).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.scanOne(q(ctx, r.db).QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.scanOne(q(ctx, r.db).QueryRowContext(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, password_hash=$2, first_name=$3, last_name=$4, phone=$5, role=$6, is_active=$7, is_verified=$8, last_login=$9, updated_on=$10 WHERE id=$11`
	_, err := q(ctx, r.db).ExecContext(ctx, query,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Role, u.IsActive, u.IsVerified, u.LastLogin, time.Now(), u.ID)
	return err
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &u.IsActive, &u.IsVerified, &u.CreatedOn, &u.UpdatedOn, &u.LastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
