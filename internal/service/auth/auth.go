package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/satyammall/stockledger/internal/domain/models"
	"github.com/satyammall/stockledger/internal/repository/sheets"
)

// ErrInvalidCredentials covers both unknown emails and wrong passwords so
// the login surface cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service validates login credentials against the user store.
type Service struct {
	users  sheets.Users
	logger *zap.Logger
}

// NewService wires an auth service instance.
func NewService(users sheets.Users, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, logger: logger}
}

// ValidateCredentials checks the email/password pair and returns the matched
// user on success.
func (s *Service) ValidateCredentials(ctx context.Context, email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sheets.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown email", zap.String("email", email))
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("password mismatch", zap.String("email", email))
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}
