package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/satyammall/stockledger/internal/domain/models"
	"github.com/satyammall/stockledger/internal/repository/sheets"
)

type fakeUsers struct {
	users map[string]models.User
	err   error
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	user, ok := f.users[email]
	if !ok {
		return models.User{}, sheets.ErrUserNotFound
	}
	return user, nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestValidateCredentialsSuccess(t *testing.T) {
	store := &fakeUsers{users: map[string]models.User{
		"manager@satyammall.in": {
			Email:        "manager@satyammall.in",
			Name:         "Store Manager",
			PasswordHash: hash(t, "s3cret"),
		},
	}}
	svc := NewService(store, nil)

	user, err := svc.ValidateCredentials(context.Background(), "manager@satyammall.in", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Store Manager", user.Name)
}

func TestValidateCredentialsFailures(t *testing.T) {
	store := &fakeUsers{users: map[string]models.User{
		"manager@satyammall.in": {
			Email:        "manager@satyammall.in",
			PasswordHash: hash(t, "s3cret"),
		},
	}}
	svc := NewService(store, nil)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "manager@satyammall.in", "guess"},
		{"unknown email", "nobody@satyammall.in", "s3cret"},
		{"empty email", "", "s3cret"},
		{"empty password", "manager@satyammall.in", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateCredentials(context.Background(), tc.email, tc.password)
			assert.True(t, errors.Is(err, ErrInvalidCredentials), "got %v", err)
		})
	}
}

func TestValidateCredentialsStoreErrorIsNotInvalidCredentials(t *testing.T) {
	store := &fakeUsers{err: errors.New("sheets unavailable")}
	svc := NewService(store, nil)

	_, err := svc.ValidateCredentials(context.Background(), "manager@satyammall.in", "s3cret")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidCredentials))
}
