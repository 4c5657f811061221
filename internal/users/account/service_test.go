// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratedig/cratedig/internal/platform/apperr"
	"github.com/cratedig/cratedig/internal/users/account"
	"github.com/cratedig/cratedig/internal/users/auth"
)

// # Test Fakes

// fakeAccountRepository is an in-memory AccountRepository mirroring the
// Postgres store's normalized-key uniqueness semantics.
type fakeAccountRepository struct {
	users         map[int64]*auth.User
	identityCalls int
	discogsCalls  int
}

func newFakeAccountRepository(seed ...*auth.User) *fakeAccountRepository {
	repo := &fakeAccountRepository{users: map[int64]*auth.User{}}
	for _, user := range seed {
		copied := *user
		repo.users[user.ID] = &copied
	}
	return repo
}

func (r *fakeAccountRepository) FindByID(_ context.Context, id int64) (*auth.User, error) {
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("Account")
}

func (r *fakeAccountRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	normalized := auth.NormalizeUsername(username)
	for _, user := range r.users {
		if user.Username == normalized {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (r *fakeAccountRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	normalized := auth.NormalizeEmail(email)
	for _, user := range r.users {
		if user.Email == normalized {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (r *fakeAccountRepository) UpdateIdentity(_ context.Context, userID int64, username, email string) error {
	r.identityCalls++
	user, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("Account")
	}
	user.Username = username
	user.Email = email
	return nil
}

func (r *fakeAccountRepository) UpdateDiscogs(_ context.Context, userID int64, discogsUsername, consumerKey, consumerSecret string) error {
	r.discogsCalls++
	for id, existing := range r.users {
		if id != userID && existing.DiscogsUsername == discogsUsername {
			return apperr.Conflict(auth.MsgDiscogsAlreadyConnected)
		}
	}
	user, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("Account")
	}
	user.DiscogsUsername = discogsUsername
	user.DiscogsConsumerKey = consumerKey
	user.DiscogsConsumerSecret = consumerSecret
	return nil
}

func (r *fakeAccountRepository) ClearDiscogs(_ context.Context, userID int64) error {
	user, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("Account")
	}
	user.DiscogsUsername = ""
	user.DiscogsConsumerKey = ""
	user.DiscogsConsumerSecret = ""
	return nil
}

func newTestService(seed ...*auth.User) (*account.Service, *fakeAccountRepository) {
	repo := newFakeAccountRepository(seed...)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return account.NewService(repo, logger), repo
}

func seededUser() *auth.User {
	return &auth.User{
		ID:       1,
		Username: "cratedigger",
		Email:    "dig@example.com",
	}
}

// # Profile

/*
TestService_UpdateProfile_Success verifies a plain identity change.
*/
func TestService_UpdateProfile_Success(t *testing.T) {
	service, repo := newTestService(seededUser())

	user, err := service.UpdateProfile(context.Background(), 1, account.UpdateProfileInput{
		Username: "WaxHunter",
		Email:    "Wax@Example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "waxhunter", user.Username)
	assert.Equal(t, "wax@example.com", user.Email)
	assert.Equal(t, 1, repo.identityCalls)
}

/*
TestService_UpdateProfile_SelfExempt verifies that resubmitting the
account's own identity (in any case variant) is not a conflict.
*/
func TestService_UpdateProfile_SelfExempt(t *testing.T) {
	service, _ := newTestService(seededUser())

	user, err := service.UpdateProfile(context.Background(), 1, account.UpdateProfileInput{
		Username: "CrateDigger",
		Email:    "DIG@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "cratedigger", user.Username)
	assert.Equal(t, "dig@example.com", user.Email)
}

/*
TestService_UpdateProfile_TakenByOther verifies that another account's
identity still conflicts, with both fields accumulated.
*/
func TestService_UpdateProfile_TakenByOther(t *testing.T) {
	other := &auth.User{ID: 2, Username: "waxhunter", Email: "wax@example.com"}
	service, repo := newTestService(seededUser(), other)

	_, err := service.UpdateProfile(context.Background(), 1, account.UpdateProfileInput{
		Username: "WaxHunter",
		Email:    "WAX@example.com",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, []string{
		auth.MsgUsernameTaken,
		auth.MsgEmailRegistered,
	}, ae.Messages())
	assert.Equal(t, 0, repo.identityCalls)
}

/*
TestService_UpdateProfile_FormatRules verifies that profile edits obey the
same format ladder as registration.
*/
func TestService_UpdateProfile_FormatRules(t *testing.T) {
	service, _ := newTestService(seededUser())

	_, err := service.UpdateProfile(context.Background(), 1, account.UpdateProfileInput{
		Username: "x!",
		Email:    "not-an-email",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, []string{
		auth.MsgUsernameFormat,
		auth.MsgEmailFormat,
	}, ae.Messages())
}

// # Discogs

/*
TestService_LinkDiscogs_Success verifies connecting a complete credential set.
*/
func TestService_LinkDiscogs_Success(t *testing.T) {
	service, repo := newTestService(seededUser())

	user, err := service.LinkDiscogs(context.Background(), 1, account.DiscogsInput{
		DiscogsUsername: " digger_discogs ",
		ConsumerKey:     "key123",
		ConsumerSecret:  "secret456",
	})
	require.NoError(t, err)

	assert.True(t, user.IsDiscogsConnected())
	assert.Equal(t, "digger_discogs", user.DiscogsUsername)
	assert.Equal(t, 1, repo.discogsCalls)
}

/*
TestService_LinkDiscogs_MissingFields verifies that absent credential fields
report together, in declaration order, without touching the store.
*/
func TestService_LinkDiscogs_MissingFields(t *testing.T) {
	service, repo := newTestService(seededUser())

	_, err := service.LinkDiscogs(context.Background(), 1, account.DiscogsInput{
		DiscogsUsername: "digger_discogs",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, []string{
		auth.MsgConsumerKeyRequired,
		auth.MsgConsumerSecretRequired,
	}, ae.Messages())
	assert.Equal(t, 0, repo.discogsCalls)

	_, err = service.LinkDiscogs(context.Background(), 1, account.DiscogsInput{})
	require.Error(t, err)
	assert.Equal(t, []string{
		auth.MsgDiscogsUsernameRequired,
		auth.MsgConsumerKeyRequired,
		auth.MsgConsumerSecretRequired,
	}, apperr.As(err).Messages())
}

/*
TestService_LinkDiscogs_TakenByOther verifies the platform-wide uniqueness
of the Discogs username.
*/
func TestService_LinkDiscogs_TakenByOther(t *testing.T) {
	other := &auth.User{
		ID:                    2,
		Username:              "waxhunter",
		Email:                 "wax@example.com",
		DiscogsUsername:       "digger_discogs",
		DiscogsConsumerKey:    "k",
		DiscogsConsumerSecret: "s",
	}
	service, _ := newTestService(seededUser(), other)

	_, err := service.LinkDiscogs(context.Background(), 1, account.DiscogsInput{
		DiscogsUsername: "digger_discogs",
		ConsumerKey:     "key123",
		ConsumerSecret:  "secret456",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, auth.MsgDiscogsAlreadyConnected, ae.Message)
}

/*
TestService_UnlinkDiscogs verifies disconnecting, including idempotency on
an account that was never connected.
*/
func TestService_UnlinkDiscogs(t *testing.T) {
	service, _ := newTestService(seededUser())

	_, err := service.LinkDiscogs(context.Background(), 1, account.DiscogsInput{
		DiscogsUsername: "digger_discogs",
		ConsumerKey:     "key123",
		ConsumerSecret:  "secret456",
	})
	require.NoError(t, err)

	user, err := service.UnlinkDiscogs(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, user.IsDiscogsConnected())
	assert.Empty(t, user.DiscogsUsername)

	// Unlinking again is not an error.
	_, err = service.UnlinkDiscogs(context.Background(), 1)
	assert.NoError(t, err)
}
