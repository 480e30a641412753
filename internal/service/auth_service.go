package service

import (
	"context"
	"errors"

	"baketrack-backend/internal/model"
	"baketrack-backend/internal/settings"
	"baketrack-backend/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotConfigured      = errors.New("spreadsheet endpoint is not configured")
	ErrSheetUnreachable   = errors.New("unable to reach the spreadsheet")
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  model.Profile `json:"user"`
}

type TokenValidationResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authService struct {
	sheets   SheetAPI
	settings *settings.Store
}

func NewAuthService(sheets SheetAPI, store *settings.Store) AuthService {
	return &authService{
		sheets:   sheets,
		settings: store,
	}
}

// Login matches credentials against the profile sheet. A fresh fetch, not
// the cached snapshot: a password changed in the sheet must count
// immediately. This gate exists for the UI; the sheet endpoint itself is
// reachable by anyone who has its URL.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	if !s.settings.Configured() {
		return nil, ErrNotConfigured
	}

	data := s.sheets.FetchFullData(ctx)
	if data == nil {
		return nil, ErrSheetUnreachable
	}

	for i := range data.Profiles {
		p := &data.Profiles[i]
		if p.MatchesEmail(email) && p.CheckPassword(password) {
			token, err := jwt.GenerateToken(p.Email, p.Name)
			if err != nil {
				return nil, errors.New("failed to generate token")
			}
			return &LoginResponse{Token: token, User: *p}, nil
		}
	}

	return nil, ErrInvalidCredentials
}

// ValidateToken checks a session token and returns the profile it names.
func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &TokenValidationResponse{Email: claims.Email, Name: claims.Name}, nil
}
