package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthService_Signup(t *testing.T) {
	env := setupServiceEnv(t)

	user, err := env.authService.Signup(SignupInput{
		Email:    "Founder@Example.com",
		Password: "supersecret",
		FullName: "Ada Founder",
	})
	require.NoError(t, err)
	require.Equal(t, "founder@example.com", user.Email)
	require.Equal(t, "Ada Founder", user.FullName)
	require.NotEqual(t, "supersecret", user.PasswordHash)
}

func TestAuthService_Signup_DefaultsFullName(t *testing.T) {
	env := setupServiceEnv(t)

	user, err := env.authService.Signup(SignupInput{
		Email:    "jordan@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, "jordan", user.FullName)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	env := setupServiceEnv(t)
	env.createUser(t, "taken@example.com")

	_, err := env.authService.Signup(SignupInput{
		Email:    "TAKEN@example.com",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Signup_ShortPassword(t *testing.T) {
	env := setupServiceEnv(t)

	_, err := env.authService.Signup(SignupInput{
		Email:    "short@example.com",
		Password: "short",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Login(t *testing.T) {
	env := setupServiceEnv(t)
	env.createUser(t, "login@example.com")

	user, err := env.authService.Login(LoginInput{
		Email:    "login@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, "login@example.com", user.Email)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	env := setupServiceEnv(t)
	env.createUser(t, "login@example.com")

	_, err := env.authService.Login(LoginInput{
		Email:    "login@example.com",
		Password: "not-the-password",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	env := setupServiceEnv(t)

	_, err := env.authService.Login(LoginInput{
		Email:    "ghost@example.com",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	env := setupServiceEnv(t)
	user := env.createUser(t, "profile@example.com")

	newName := "New Name"
	updated, err := env.authService.UpdateProfile(user.ID, UpdateProfileInput{
		FullName: &newName,
	})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.FullName)
	require.Equal(t, "profile@example.com", updated.Email)
}
