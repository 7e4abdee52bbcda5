package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"shopwave/internal/auth"
	"shopwave/internal/model"
	"shopwave/internal/password"
	"shopwave/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// Unknown email and wrong password produce this same error so callers
	// cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("User already exists")
	// ErrUnauthenticated is returned when a session token is missing, expired
	// or unresolvable.
	ErrUnauthenticated = errors.New("Unauthorized")
	// ErrUserNotFound is returned when a session resolves to a user record
	// that no longer exists.
	ErrUserNotFound = errors.New("User not found")
	// ErrInvalidPassword is returned when the re-authentication password for
	// account deletion does not match.
	ErrInvalidPassword = errors.New("Invalid password")
)

// RegisterParams carries validated registration input.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  *string
}

// AuthService orchestrates registration, login, session lifecycle, identity
// lookup and account deletion.
type AuthService interface {
	Register(ctx context.Context, p RegisterParams) (*model.PublicUser, *auth.Session, error)
	Login(ctx context.Context, email, pass string) (*model.PublicUser, *auth.Session, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*model.PublicUser, error)
	DeleteAccount(ctx context.Context, token, pass string) error
}

type authService struct {
	userRepo repository.UserRepository
	sessions auth.SessionStore
	hasher   password.Hasher
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, sessions auth.SessionStore, hasher password.Hasher) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
		hasher:   hasher,
	}
}

// Register creates a user with a hashed password and issues a session.
func (s *authService) Register(ctx context.Context, p RegisterParams) (*model.PublicUser, *auth.Session, error) {
	email := normalizeEmail(p.Email)

	// Best-effort pre-check for a friendly error; the unique index on email
	// remains the authoritative guard against concurrent registration.
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrUserAlreadyExists
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	return user.Public(), session, nil
}

// Login verifies credentials and issues a new session, independent of any
// prior sessions the user may hold.
func (s *authService) Login(ctx context.Context, email, pass string) (*model.PublicUser, *auth.Session, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(pass, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	return user.Public(), session, nil
}

// Logout destroys the session identified by token. Logging out an absent or
// expired session is not an error.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// CurrentUser resolves a session token to its user's public view. A session
// referencing a deleted user is invalid and is destroyed on detection.
func (s *authService) CurrentUser(ctx context.Context, token string) (*model.PublicUser, error) {
	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Dangling session: the user is gone, the token must stop working.
			if derr := s.sessions.Delete(ctx, token); derr != nil {
				log.Printf("invalidate dangling session: %v", derr)
			}
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return user.Public(), nil
}

// DeleteAccount hard-deletes the authenticated user after re-verifying the
// password, then revokes every session the user holds. A stolen session
// cookie alone is not enough to destroy an account.
func (s *authService) DeleteAccount(ctx context.Context, token, pass string) error {
	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return ErrUnauthenticated
		}
		return fmt.Errorf("resolve session: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(pass, user.PasswordHash) {
		return ErrInvalidPassword
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	// Cascade: all sessions of the deleted user are revoked, not just the
	// current one, so no token keeps resolving to a dead account.
	if err := s.sessions.DeleteAllForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}

	return nil
}

// normalizeEmail lowercases and trims the address. Email uniqueness is
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
