package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lista/internal/models"
)

func TestSetAuth_ClearAuth_Postconditions(t *testing.T) {
	s := New()
	user := &models.User{ID: "7", Name: "Ada"}

	for range 3 {
		s.SetAuth(user)
		assert.True(t, s.IsAuthenticated())
		require.NotNil(t, s.User())
		assert.Equal(t, user.ID, s.User().ID)
	}

	for range 3 {
		s.ClearAuth()
		assert.False(t, s.IsAuthenticated())
		assert.Nil(t, s.User())
	}
}

func TestSetAuth_NilUserClears(t *testing.T) {
	s := New()
	s.SetAuth(&models.User{ID: "1"})
	s.SetAuth(nil)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
}

func TestInitialize_Lifecycle(t *testing.T) {
	tests := []struct {
		name   string
		whoami WhoAmI
		want   State
	}{
		{
			name:   "user resolved",
			whoami: func(context.Context) (*models.User, error) { return &models.User{ID: "1"}, nil },
			want:   Authenticated,
		},
		{
			name:   "whoami fails",
			whoami: func(context.Context) (*models.User, error) { return nil, errors.New("401") },
			want:   Anonymous,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			assert.Equal(t, Uninitialized, s.State())
			assert.Equal(t, tt.want, s.Initialize(context.Background(), tt.whoami))
			assert.True(t, s.Initialized())
		})
	}
}

func TestInitialize_RunsOnce(t *testing.T) {
	s := New()
	var calls atomic.Int32
	release := make(chan struct{})
	whoami := func(context.Context) (*models.User, error) {
		calls.Add(1)
		<-release
		return &models.User{ID: "1"}, nil
	}

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, Authenticated, s.Initialize(context.Background(), whoami))
		}()
	}
	assert.Eventually(t, func() bool { return s.State() == Checking }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, Authenticated, s.Initialize(context.Background(), whoami))
	assert.Equal(t, int32(1), calls.Load())
}

func TestGuard(t *testing.T) {
	anonymous := New()
	anonymous.MarkInitialized()

	authed := New()
	authed.SetAuth(&models.User{ID: "1"})
	authed.MarkInitialized()

	tests := []struct {
		name         string
		session      *Session
		path         string
		wantRedirect string
		wantOK       bool
	}{
		{"uninitialized waits", New(), "/dashboard", "", false},
		{"anonymous on protected", anonymous, "/workspaces/1", "/login", false},
		{"anonymous on login", anonymous, "/login", "", true},
		{"anonymous on register", anonymous, "/register", "", true},
		{"authenticated on protected", authed, "/workspaces/1", "", true},
		{"authenticated on login passes", authed, "/login", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redirect, ok := tt.session.Guard(tt.path)
			assert.Equal(t, tt.wantRedirect, redirect)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestRequireUser(t *testing.T) {
	s := New()
	_, err := s.RequireUser()
	assert.ErrorIs(t, err, ErrNotInitialized)

	s.MarkInitialized()
	_, err = s.RequireUser()
	assert.ErrorIs(t, err, ErrAnonymous)

	s.SetAuth(&models.User{ID: "1"})
	u, err := s.RequireUser()
	require.NoError(t, err)
	assert.Equal(t, models.ID("1"), u.ID)
}
