package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/atria/api/internal/model"
)

// UserRepo is the data access contract the auth service depends on.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// TokenSigner issues access tokens for authenticated users.
type TokenSigner interface {
	Sign(userID, email, role string) (string, error)
}

// AuthService implements login and identity lookup.
type AuthService struct {
	users  UserRepo
	signer TokenSigner
}

// NewAuthService creates a new auth service
func NewAuthService(users UserRepo, signer TokenSigner) *AuthService {
	return &AuthService{users: users, signer: signer}
}

// LoginResult is a successful authentication outcome.
type LoginResult struct {
	AccessToken string      `json:"accessToken"`
	User        *model.User `json:"user"`
}

// Login verifies the credentials and issues an access token. Unknown emails
// and wrong passwords both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || user.Hash == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signer.Sign(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResult{AccessToken: token, User: user}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
