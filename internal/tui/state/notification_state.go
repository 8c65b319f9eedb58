package state

import "time"

// NotificationLevel represents the severity of a notification.
type NotificationLevel int

const (
	// LevelInfo represents informational notifications
	LevelInfo NotificationLevel = iota
	// LevelError represents failed operations
	LevelError
)

// Notification is a single transient message.
type Notification struct {
	ID      int
	Level   NotificationLevel
	Message string
	Expires time.Time
}

// NotificationState holds the transient messages shown in the status bar.
// Errors from background commands end up here instead of aborting the program.
type NotificationState struct {
	notifications []Notification
	nextID        int
	ttl           time.Duration
}

// NewNotificationState creates an empty state whose messages live for ttl.
func NewNotificationState(ttl time.Duration) *NotificationState {
	return &NotificationState{ttl: ttl}
}

// TTL is how long a notification stays visible.
func (s *NotificationState) TTL() time.Duration {
	return s.ttl
}

// Add appends a notification and returns its id.
func (s *NotificationState) Add(level NotificationLevel, message string, now time.Time) int {
	s.nextID++
	s.notifications = append(s.notifications, Notification{
		ID:      s.nextID,
		Level:   level,
		Message: message,
		Expires: now.Add(s.ttl),
	})
	return s.nextID
}

// Expire drops the notifications that expired at or before now.
func (s *NotificationState) Expire(now time.Time) {
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.Expires.After(now) {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
}

// Clear removes all notifications.
func (s *NotificationState) Clear() {
	s.notifications = nil
}

// All returns the current notifications, oldest first.
func (s *NotificationState) All() []Notification {
	return s.notifications
}

// Latest returns the newest notification.
func (s *NotificationState) Latest() (Notification, bool) {
	if len(s.notifications) == 0 {
		return Notification{}, false
	}
	return s.notifications[len(s.notifications)-1], true
}

// HasAny returns true if there are any notifications.
func (s *NotificationState) HasAny() bool {
	return len(s.notifications) > 0
}
