package domain

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleProvider UserRole = "provider"
	UserRoleAdmin    UserRole = "admin"
)

type User struct {
	ID           int32      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Phone        string     `json:"phone,omitempty"`
	Role         UserRole   `json:"role"`
	IsActive     bool       `json:"is_active"`
	IsVerified   bool       `json:"is_verified"`
	CreatedOn    time.Time  `json:"created_on"`
	UpdatedOn    time.Time  `json:"updated_on"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// NewUser normalizes the email to lower case before the record is stored.
func NewUser(email, firstName, lastName, phone string, role UserRole) *User {
	return &User{
		Email:     strings.ToLower(email),
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		Role:      role,
		IsActive:  true,
	}
}

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

func (u *User) IsProvider() bool {
	return u.Role == UserRoleProvider
}

// CanManageScooters reports whether the user may create or edit fleet entries.
func (u *User) CanManageScooters() bool {
	return u.Role == UserRoleAdmin || u.Role == UserRoleProvider
}
