package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/daspi/bookshop/internal/hash"
	"github.com/daspi/bookshop/internal/ident"
	"github.com/daspi/bookshop/internal/logging"
	"github.com/daspi/bookshop/internal/models"
	"github.com/daspi/bookshop/internal/repo"
	"github.com/daspi/bookshop/internal/tokens"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

type RegisterInput struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	ContactNumber string
	Address       string
}

type UpdateProfileInput struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	ContactNumber string
	Address       string
}

// Register creates an account with a fresh unique 8-digit identifier
// and returns the persisted user together with a session token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if in.FirstName == "" || in.LastName == "" || in.Email == "" ||
		in.Password == "" || in.ContactNumber == "" || in.Address == "" {
		return nil, "", fmt.Errorf("all fields are required: %w", ErrValidation)
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, "", fmt.Errorf("invalid email address: %w", ErrValidation)
	}

	exists, err := s.Repo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, "", fmt.Errorf("user with this email already exists: %w", ErrConflict)
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.uniqueUserID(ctx)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		UserID:        userID,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		PasswordHash:  pwHash,
		ContactNumber: in.ContactNumber,
		Address:       in.Address,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := tokens.NewSessionToken(user.UserID, s.JWTSecret, time.Now())
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	l.Info("user_registered", "user_id", user.UserID)
	return &user, token, nil
}

func (s *AuthService) uniqueUserID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < ident.MaxAttempts; attempt++ {
		id, err := ident.NewUserID()
		if err != nil {
			return "", err
		}
		taken, err := s.Repo.UserIDExists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("check user id: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique user id: %w", ErrInternal)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("load user: %w", err)
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := tokens.NewSessionToken(user.UserID, s.JWTSecret, time.Now())
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	l.Info("user_logged_in", "user_id", user.UserID)
	return user, token, nil
}

// UpdateProfile applies only the provided fields, rehashing the
// password when one is given, and issues a fresh session token.
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, in UpdateProfileInput) (*models.User, string, error) {
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Email != "" {
		if !emailPattern.MatchString(in.Email) {
			return nil, "", fmt.Errorf("invalid email address: %w", ErrValidation)
		}
		user.Email = in.Email
	}
	if in.ContactNumber != "" {
		user.ContactNumber = in.ContactNumber
	}
	if in.Address != "" {
		user.Address = in.Address
	}
	if in.Password != "" {
		pwHash, err := hash.HashPassword(in.Password)
		if err != nil {
			return nil, "", fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = pwHash
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, "", fmt.Errorf("save user: %w", err)
	}

	token, err := tokens.NewSessionToken(user.UserID, s.JWTSecret, time.Now())
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// UserByUserID resolves the profile behind a validated session token.
func (s *AuthService) UserByUserID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Repo.UserByUserID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
