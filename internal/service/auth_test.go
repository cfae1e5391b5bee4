package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daspi/bookshop/internal/tokens"
)

var testSecret = []byte("test-secret")

func TestRegisterRejectsIncompleteInput(t *testing.T) {
	t.Parallel()

	svc := &AuthService{Repo: newTestRepo(t), JWTSecret: testSecret}

	base := RegisterInput{
		FirstName:     "Jane",
		LastName:      "Reader",
		Email:         "jane@example.com",
		Password:      "Secret123",
		ContactNumber: "0123456789",
		Address:       "1 Library Lane",
	}

	tests := []struct {
		name   string
		mutate func(in *RegisterInput)
	}{
		{"missing first name", func(in *RegisterInput) { in.FirstName = "" }},
		{"missing last name", func(in *RegisterInput) { in.LastName = "" }},
		{"missing email", func(in *RegisterInput) { in.Email = "" }},
		{"missing password", func(in *RegisterInput) { in.Password = "" }},
		{"missing contact number", func(in *RegisterInput) { in.ContactNumber = "" }},
		{"missing address", func(in *RegisterInput) { in.Address = "" }},
		{"malformed email", func(in *RegisterInput) { in.Email = "not-an-email" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)

			_, _, err := svc.Register(t.Context(), in)
			require.ErrorIs(t, err, ErrValidation)
		})
	}

	// None of the rejected attempts may leave a record behind.
	exists, err := svc.Repo.EmailExists(t.Context(), base.Email)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegisterIssuesEightDigitID(t *testing.T) {
	t.Parallel()

	svc := &AuthService{Repo: newTestRepo(t), JWTSecret: testSecret}
	idPattern := regexp.MustCompile(`^\d{8}$`)

	seen := map[string]bool{}
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		user := registerTestUser(t, svc, email)
		assert.Regexp(t, idPattern, user.UserID)
		assert.False(t, seen[user.UserID], "user id %q issued twice", user.UserID)
		seen[user.UserID] = true
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := &AuthService{Repo: newTestRepo(t), JWTSecret: testSecret}
	registerTestUser(t, svc, "jane@example.com")

	_, _, err := svc.Register(t.Context(), RegisterInput{
		FirstName:     "Other",
		LastName:      "Person",
		Email:         "jane@example.com",
		Password:      "Different1",
		ContactNumber: "0999999999",
		Address:       "2 Side Street",
	})
	require.ErrorIs(t, err, ErrConflict)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc := &AuthService{Repo: newTestRepo(t), JWTSecret: testSecret}
	registered := registerTestUser(t, svc, "jane@example.com")

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := svc.Login(t.Context(), "jane@example.com", "Secret123")
		require.NoError(t, err)
		assert.Equal(t, registered.UserID, user.UserID)

		claims, err := tokens.SessionClaimsFromToken(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, registered.UserID, claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(t.Context(), "jane@example.com", "nope")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(t.Context(), "ghost@example.com", "Secret123")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	svc := &AuthService{Repo: newTestRepo(t), JWTSecret: testSecret}
	user := registerTestUser(t, svc, "jane@example.com")

	updated, token, err := svc.UpdateProfile(t.Context(), user, UpdateProfileInput{
		Address:  "99 New Road",
		Password: "Rotated456",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Untouched fields survive, provided ones change.
	assert.Equal(t, "Jane", updated.FirstName)
	assert.Equal(t, "99 New Road", updated.Address)

	// The old password no longer works, the new one does.
	_, _, err = svc.Login(t.Context(), "jane@example.com", "Secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(t.Context(), "jane@example.com", "Rotated456")
	require.NoError(t, err)
}

func TestUserByUserID(t *testing.T) {
	t.Parallel()

	svc := &AuthService{Repo: newTestRepo(t), JWTSecret: testSecret}
	user := registerTestUser(t, svc, "jane@example.com")

	got, err := svc.UserByUserID(t.Context(), user.UserID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.UserByUserID(t.Context(), "00000000")
	require.ErrorIs(t, err, ErrNotFound)
}
