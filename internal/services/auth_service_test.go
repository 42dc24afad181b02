package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/playlisterapp/playlister-server/internal/config"
	"github.com/playlisterapp/playlister-server/internal/dto"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(setupTestDB(t), &config.Config{JWTSecret: "test-secret"})
}

func TestRegister_CreatesUserWithHashedPassword(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(&dto.RegisterRequest{
		UserName:       "joan",
		Email:          "joan@example.com",
		Password:       "correct horse battery",
		PasswordVerify: "correct horse battery",
	})
	require.NoError(t, err)

	assert.Equal(t, "joan", user.UserName)
	assert.Equal(t, "joan@example.com", user.Email)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery")))
}

func TestRegister_RejectsMismatchedPasswords(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(&dto.RegisterRequest{
		UserName:       "joan",
		Email:          "joan@example.com",
		Password:       "password-one",
		PasswordVerify: "password-two",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	req := &dto.RegisterRequest{
		UserName:       "joan",
		Email:          "joan@example.com",
		Password:       "password123",
		PasswordVerify: "password123",
	}
	_, err := svc.Register(req)
	require.NoError(t, err)

	req.UserName = "other"
	_, err = svc.Register(req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_WrongEmailAndWrongPasswordLookAlike(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(&dto.RegisterRequest{
		UserName:       "joan",
		Email:          "joan@example.com",
		Password:       "password123",
		PasswordVerify: "password123",
	})
	require.NoError(t, err)

	_, errUnknown := svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	_, errWrongPw := svc.Login(&dto.LoginRequest{Email: "joan@example.com", Password: "not-it"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
}

func TestLogin_Succeeds(t *testing.T) {
	svc := newAuthService(t)

	registered, err := svc.Register(&dto.RegisterRequest{
		UserName:       "joan",
		Email:          "joan@example.com",
		Password:       "password123",
		PasswordVerify: "password123",
	})
	require.NoError(t, err)

	user, err := svc.Login(&dto.LoginRequest{Email: "joan@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestEditAccount_PartialUpdate(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(&dto.RegisterRequest{
		UserName:       "joan",
		Email:          "joan@example.com",
		Password:       "password123",
		PasswordVerify: "password123",
	})
	require.NoError(t, err)

	updated, err := svc.EditAccount(user.ID, &dto.EditAccountRequest{UserName: "joan-renamed"})
	require.NoError(t, err)
	assert.Equal(t, "joan-renamed", updated.UserName)

	// Email untouched
	reloaded, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "joan@example.com", reloaded.Email)
	assert.Equal(t, "joan-renamed", reloaded.UserName)
}

func TestEditAccount_RejectsTakenEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(&dto.RegisterRequest{
		UserName: "a", Email: "a@example.com",
		Password: "password123", PasswordVerify: "password123",
	})
	require.NoError(t, err)
	b, err := svc.Register(&dto.RegisterRequest{
		UserName: "b", Email: "b@example.com",
		Password: "password123", PasswordVerify: "password123",
	})
	require.NoError(t, err)

	_, err = svc.EditAccount(b.ID, &dto.EditAccountRequest{Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestEditAccount_RejectsEmptyUpdate(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(&dto.RegisterRequest{
		UserName: "joan", Email: "joan@example.com",
		Password: "password123", PasswordVerify: "password123",
	})
	require.NoError(t, err)

	_, err = svc.EditAccount(user.ID, &dto.EditAccountRequest{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestEditAccount_ChangesPassword(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(&dto.RegisterRequest{
		UserName: "joan", Email: "joan@example.com",
		Password: "password123", PasswordVerify: "password123",
	})
	require.NoError(t, err)

	_, err = svc.EditAccount(user.ID, &dto.EditAccountRequest{
		Password:       "new-password-9",
		PasswordVerify: "new-password-9",
	})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "joan@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "joan@example.com", Password: "new-password-9"})
	assert.NoError(t, err)
}
