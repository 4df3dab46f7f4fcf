// Package service implements authentication: password hashing, token
// issuance and validation, and the register/login flows.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/userhub/userhub/internal/model"
	"github.com/userhub/userhub/internal/store"
)

var (
	// ErrInvalidCredentials is returned for any failed login. Unknown email
	// and wrong password produce this same error so the two cases are
	// indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering with an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already exists")
)

// dummyPasswordHash is compared against when a login targets a nonexistent
// account, so the missing-user path pays the same bcrypt cost as a real
// verification. It is a fake hash that will never match any password.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService combines the credential verifier and the token service to
// implement registration and login against the user store.
type AuthService struct {
	store  *store.Store
	tokens *TokenService
}

// NewAuthService creates an AuthService.
func NewAuthService(st *store.Store, tokens *TokenService) *AuthService {
	return &AuthService{store: st, tokens: tokens}
}

// Register creates a new active account and returns it together with a fresh
// token. The email-existence check here is advisory; the store's uniqueness
// constraint is the authoritative guard, and a conflict raised there is
// converted to the same ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*model.User, string, error) {
	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", fmt.Errorf("check existing email: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		IsActive:     true,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Login verifies the email/password pair and returns the account with a
// fresh token. Both unknown-email and wrong-password failures surface as
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn the same bcrypt cost as a real check.
			CheckPassword(password, dummyPasswordHash)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("get user by email: %w", err)
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}
