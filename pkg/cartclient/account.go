package cartclient

import (
	"context"
	"net/http"
)

type Profile struct {
	UserID        string `json:"userId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
	Token         string `json:"token,omitempty"`
}

type RegisterInput struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
}

func (s *Session) Register(ctx context.Context, in RegisterInput) (*Profile, error) {
	var profile Profile
	if err := s.do(ctx, http.MethodPost, "/api/users/register", in, &profile); err != nil {
		return nil, err
	}
	s.setToken(profile.Token)
	return &profile, nil
}

func (s *Session) Login(ctx context.Context, email, password string) (*Profile, error) {
	body := map[string]string{"email": email, "password": password}

	var profile Profile
	if err := s.do(ctx, http.MethodPost, "/api/users/login", body, &profile); err != nil {
		return nil, err
	}
	s.setToken(profile.Token)
	return &profile, nil
}

func (s *Session) Profile(ctx context.Context) (*Profile, error) {
	if !s.Authenticated() {
		return nil, ErrUnauthenticated
	}

	var profile Profile
	if err := s.do(ctx, http.MethodGet, "/api/users/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile sends only the provided fields and adopts the fresh
// token the server issues with the updated profile.
func (s *Session) UpdateProfile(ctx context.Context, in RegisterInput) (*Profile, error) {
	if !s.Authenticated() {
		return nil, ErrUnauthenticated
	}

	var profile Profile
	if err := s.do(ctx, http.MethodPut, "/api/users/profile", in, &profile); err != nil {
		return nil, err
	}
	s.setToken(profile.Token)
	return &profile, nil
}

func (s *Session) setToken(token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}
