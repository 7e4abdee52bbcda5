package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"shopwave/internal/cache"
)

const (
	sessionKeyPrefix      = "session:"
	userSessionsKeyPrefix = "user_sessions:"
)

// ErrSessionNotFound is returned when a token does not resolve to a live session.
var ErrSessionNotFound = errors.New("session not found")

// Session binds an opaque token to a user for a fixed lifetime.
type Session struct {
	Token     string
	UserID    uint
	ExpiresAt time.Time
}

// SessionStore defines server-side session persistence. Expired sessions
// behave as if they never existed.
type SessionStore interface {
	Create(ctx context.Context, userID uint) (*Session, error)
	Get(ctx context.Context, token string) (uint, error)
	Delete(ctx context.Context, token string) error
	DeleteAllForUser(ctx context.Context, userID uint) error
}

// RedisSessionStore keeps sessions in Redis with a TTL, plus a per-user
// index set so that account deletion can revoke every session at once.
type RedisSessionStore struct {
	cache *cache.Client
	ttl   time.Duration
}

// Ensure RedisSessionStore implements SessionStore.
var _ SessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore creates a session store issuing sessions valid for ttl.
func NewRedisSessionStore(cache *cache.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{cache: cache, ttl: ttl}
}

// Create issues a new session for userID and returns its plain token.
func (s *RedisSessionStore) Create(ctx context.Context, userID uint) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	session := &Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	key := sessionKeyPrefix + token
	if err := s.cache.Set(ctx, key, []byte(strconv.FormatUint(uint64(userID), 10)), s.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	// Index the token under its owner. The set outlives individual sessions
	// by design: stale members resolve to nothing and are skipped on revoke.
	userKey := userSessionsKey(userID)
	if err := s.cache.SAdd(ctx, userKey, token); err != nil {
		return nil, fmt.Errorf("index session: %w", err)
	}
	if err := s.cache.Expire(ctx, userKey, s.ttl); err != nil {
		return nil, fmt.Errorf("expire session index: %w", err)
	}

	return session, nil
}

// Get resolves a token to its user id. Missing and expired tokens are
// indistinguishable; both return ErrSessionNotFound.
func (s *RedisSessionStore) Get(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, ErrSessionNotFound
	}
	data, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return 0, fmt.Errorf("load session: %w", err)
	}
	if data == nil {
		return 0, ErrSessionNotFound
	}
	userID, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode session payload: %w", err)
	}
	return uint(userID), nil
}

// Delete destroys the session identified by token. Deleting an absent or
// already-expired session is not an error.
func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	userID, err := s.Get(ctx, token)
	if err == nil {
		if err := s.cache.SRem(ctx, userSessionsKey(userID), token); err != nil {
			return fmt.Errorf("unindex session: %w", err)
		}
	} else if !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	if err := s.cache.Delete(ctx, sessionKeyPrefix+token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteAllForUser destroys every session belonging to userID.
func (s *RedisSessionStore) DeleteAllForUser(ctx context.Context, userID uint) error {
	userKey := userSessionsKey(userID)
	tokens, err := s.cache.SMembers(ctx, userKey)
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, sessionKeyPrefix+token)
	}
	keys = append(keys, userKey)

	if err := s.cache.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

func userSessionsKey(userID uint) string {
	return userSessionsKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

// newToken returns 32 random bytes hex-encoded.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
