package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"gorm.io/gorm"

	"github.com/pancakehouse/backend/internal/hash"
	"github.com/pancakehouse/backend/internal/logging"
	"github.com/pancakehouse/backend/internal/models"
	"github.com/pancakehouse/backend/internal/repo"
)

const minPasswordLen = 6

type AccountService struct {
	Users *repo.UserRepo
}

type RegisterInput struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone"`
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "account.register")

	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, fmt.Errorf("%w: malformed email", ErrValidation)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}
	if in.FirstName == "" || in.LastName == "" {
		return nil, fmt.Errorf("%w: first_name and last_name required", ErrValidation)
	}

	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register_error", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: pwHash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		IsAdmin:      false,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		l.Error("register_error", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	l.Info("user_registered", "user_id", user.ID)
	return user, nil
}

// Login returns (nil, nil) both for an unknown email and a wrong password,
// so callers cannot tell registered emails apart from unregistered ones.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, nil
	}
	return user, nil
}
