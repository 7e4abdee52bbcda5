package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shopwave/internal/auth"
	"shopwave/internal/model"
	"shopwave/internal/password"
)

// fakeUserRepo is an in-memory repository.UserRepository for flow tests.
type fakeUserRepo struct {
	nextID uint
	byID   map[uint]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, byID: map[uint]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range f.byID {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = f.nextID
	f.nextID++
	clone := *user
	f.byID[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeSessionStore is an in-memory auth.SessionStore for flow tests.
type fakeSessionStore struct {
	next    int
	byToken map[string]uint
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{byToken: map[string]uint{}}
}

func (f *fakeSessionStore) Create(_ context.Context, userID uint) (*auth.Session, error) {
	f.next++
	token := "token-" + strconv.Itoa(f.next)
	f.byToken[token] = userID
	return &auth.Session{Token: token, UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeSessionStore) Get(_ context.Context, token string) (uint, error) {
	userID, ok := f.byToken[token]
	if !ok {
		return 0, auth.ErrSessionNotFound
	}
	return userID, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, token string) error {
	delete(f.byToken, token)
	return nil
}

func (f *fakeSessionStore) DeleteAllForUser(_ context.Context, userID uint) error {
	for token, id := range f.byToken {
		if id == userID {
			delete(f.byToken, token)
		}
	}
	return nil
}

func TestAuthService_RegisterLoginFlow(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), newFakeSessionStore(), password.NewHasher())

	// Register a@x.com and get the first id.
	user, regSession, err := svc.Register(ctx, RegisterParams{Email: "a@x.com", Password: "secret1", FirstName: "A"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "A", user.FirstName)
	assert.Nil(t, user.LastName)
	require.NotNil(t, regSession)

	// Registering the same email again conflicts, regardless of password.
	_, _, err = svc.Register(ctx, RegisterParams{Email: "a@x.com", Password: "other", FirstName: "B"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	// Wrong password fails, correct password succeeds with the same id and a
	// fresh session token.
	_, _, err = svc.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	loginUser, loginSession, err := svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loginUser.ID)
	assert.NotEqual(t, regSession.Token, loginSession.Token)

	// Both sessions resolve independently.
	fromReg, err := svc.CurrentUser(ctx, regSession.Token)
	require.NoError(t, err)
	fromLogin, err := svc.CurrentUser(ctx, loginSession.Token)
	require.NoError(t, err)
	assert.Equal(t, fromReg.ID, fromLogin.ID)
}

func TestAuthService_LogoutFlow(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), newFakeSessionStore(), password.NewHasher())

	_, session, err := svc.Register(ctx, RegisterParams{Email: "a@x.com", Password: "secret1", FirstName: "A"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))

	_, err = svc.CurrentUser(ctx, session.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// Logging out an already-destroyed session is not an error.
	assert.NoError(t, svc.Logout(ctx, session.Token))
}

func TestAuthService_DeleteAccountFlow(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, newFakeSessionStore(), password.NewHasher())

	user, session, err := svc.Register(ctx, RegisterParams{Email: "a@x.com", Password: "secret1", FirstName: "A"})
	require.NoError(t, err)

	// A second device logs in concurrently.
	_, otherSession, err := svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	// Wrong password: account untouched, session still valid.
	err = svc.DeleteAccount(ctx, session.Token, "wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)
	still, err := svc.CurrentUser(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, still.ID)

	// Correct password: user gone, every session revoked, login impossible.
	require.NoError(t, svc.DeleteAccount(ctx, session.Token, "secret1"))

	_, err = svc.CurrentUser(ctx, session.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.CurrentUser(ctx, otherSession.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, _, err = svc.Login(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// The email is free for re-registration with a fresh id.
	reborn, _, err := svc.Register(ctx, RegisterParams{Email: "a@x.com", Password: "secret2", FirstName: "A"})
	require.NoError(t, err)
	assert.NotEqual(t, user.ID, reborn.ID)
}
