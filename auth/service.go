package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/validation"
)

// invalidCredentials is the message for every login failure. Unknown email
// and wrong password are deliberately indistinguishable so the endpoint
// cannot be used to enumerate accounts.
const invalidCredentials = "Invalid credentials."

// Notifier receives the fire-and-forget welcome notification after a
// successful registration. Implementations must not block and must never
// surface a failure to the caller.
type Notifier interface {
	NotifyWelcome(user *User)
}

// Service implements registration, login, and token lifecycle operations.
type Service struct {
	store    Store
	notifier Notifier
}

// NewService creates an auth Service.
func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// Register validates the payload, stores the user with a bcrypt password
// hash, enqueues the welcome notification, and mints the first token for
// this device. A duplicate email surfaces as a validation failure keyed to
// the email field.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if appErr := validation.Struct(req); appErr != nil {
		return nil, appErr
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user, err := s.store.CreateUser(ctx, req.Name, req.Email, string(hashedPassword))
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, apperror.NewConflictError("The given data was invalid.",
				"email", "The email has already been taken.")
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	// Registration succeeds regardless of what happens to the email.
	s.notifier.NotifyWelcome(user)

	plaintext, err := s.mintToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: user, Token: plaintext}, nil
}

// Login authenticates by email and password and mints a fresh token. Each
// login issues a new token, so multiple devices hold independent credentials.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if appErr := validation.Struct(req); appErr != nil {
		return nil, appErr
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, apperror.NewAuthError(invalidCredentials, nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		return nil, apperror.NewAuthError(invalidCredentials, nil)
	}

	plaintext, err := s.mintToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: user, Token: plaintext}, nil
}

// Logout deletes exactly the presented token. Other devices stay logged in.
func (s *Service) Logout(ctx context.Context, tokenID int64) error {
	if err := s.store.DeleteToken(ctx, tokenID); err != nil {
		return apperror.NewDatabaseError("failed to delete token", err)
	}
	return nil
}

// LogoutAll deletes every token owned by the user.
func (s *Service) LogoutAll(ctx context.Context, userID int64) error {
	if err := s.store.DeleteTokensForUser(ctx, userID); err != nil {
		return apperror.NewDatabaseError("failed to delete tokens", err)
	}
	return nil
}

// ResolveToken maps a presented plaintext token to its owning user. Every
// failure mode collapses into the same AuthError.
func (s *Service) ResolveToken(ctx context.Context, plaintext string) (*User, *Token, error) {
	id, secret, ok := splitPlaintext(plaintext)
	if !ok {
		return nil, nil, apperror.NewAuthError("Invalid token.", nil)
	}

	token, err := s.store.GetTokenByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, nil, apperror.NewAuthError("Invalid token.", nil)
		}
		return nil, nil, apperror.NewDatabaseError("failed to look up token", err)
	}

	if !secretMatches(secret, token.Hash) {
		return nil, nil, apperror.NewAuthError("Invalid token.", nil)
	}

	user, err := s.store.GetUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, nil, apperror.NewAuthError("Invalid token.", nil)
		}
		return nil, nil, apperror.NewDatabaseError("failed to load token owner", err)
	}
	return user, token, nil
}

// GetUserByID loads a user by primary key. Used by the send-welcome command.
func (s *Service) GetUserByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return user, nil
}

// mintToken creates a token row and returns the one-time plaintext. The name
// records the device context the token was issued for (the login email).
func (s *Service) mintToken(ctx context.Context, userID int64, name string) (string, error) {
	secret, err := newTokenSecret()
	if err != nil {
		return "", apperror.NewInternalError("failed to generate token", err)
	}
	token, err := s.store.CreateToken(ctx, userID, name, hashTokenSecret(secret))
	if err != nil {
		return "", apperror.NewDatabaseError("failed to store token", err)
	}
	return composePlaintext(token.ID, secret), nil
}
