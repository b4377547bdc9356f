package service

import (
	"context"
	"testing"

	"github.com/tomnaj/todo-app/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repo.NewMemUserRepo())

	u, err := svc.Register(ctx, "A@X.com", "secret1", " Alice ")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "a@x.com", u.Email, "email is normalized")
	assert.Equal(t, "Alice", u.Name)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repo.NewMemUserRepo())

	_, err := svc.Register(ctx, "a@x.com", "secret1", "")
	require.NoError(t, err)

	// Same address in different case must still conflict.
	_, err = svc.Register(ctx, "A@x.com", "other-password", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_ShortPassword(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repo.NewMemUserRepo())

	_, err := svc.Register(ctx, "a@x.com", "12345", "")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestValidateCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repo.NewMemUserRepo())

	reg, err := svc.Register(ctx, "a@x.com", "secret1", "Alice")
	require.NoError(t, err)

	u, err := svc.ValidateCredentials(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)
}

// Wrong password and unknown email must be indistinguishable.
func TestValidateCredentials_SameErrorForBothFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repo.NewMemUserRepo())

	_, err := svc.Register(ctx, "a@x.com", "secret1", "")
	require.NoError(t, err)

	_, wrongPw := svc.ValidateCredentials(ctx, "a@x.com", "wrong")
	_, noUser := svc.ValidateCredentials(ctx, "nobody@x.com", "secret1")

	assert.ErrorIs(t, wrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPw, noUser)
}
