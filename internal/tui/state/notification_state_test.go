package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationState_AddAndExpire(t *testing.T) {
	s := NewNotificationState(3 * time.Second)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, s.HasAny())
	s.Add(LevelInfo, "saved", now)
	id := s.Add(LevelError, "failed", now.Add(time.Second))

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, id, latest.ID)
	assert.Equal(t, LevelError, latest.Level)

	s.Expire(now.Add(3 * time.Second))
	require.Len(t, s.All(), 1)
	assert.Equal(t, "failed", s.All()[0].Message)

	s.Expire(now.Add(10 * time.Second))
	assert.False(t, s.HasAny())
}

func TestNotificationState_Clear(t *testing.T) {
	s := NewNotificationState(time.Minute)
	s.Add(LevelInfo, "one", time.Now())
	s.Clear()
	_, ok := s.Latest()
	assert.False(t, ok)
}
