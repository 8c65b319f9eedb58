// Package query is a keyed cache for backend reads.
// Entries go stale after StaleTime, are dropped by GC after GCTime without use,
// and concurrent fetches of one key share a single request.
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultStaleTime = time.Minute
	DefaultGCTime    = 10 * time.Minute
)

// ErrDisabled is returned when a query lacks a required parent id
var ErrDisabled = errors.New("query disabled: missing parent id")

// Key addresses a cache entry, e.g. {"lists", spaceID}
type Key []string

func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether k starts with every segment of prefix
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Options tunes one fetch
type Options struct {
	// StaleTime overrides the client default when non-zero
	StaleTime time.Duration
	// Enabled is false when a required input is missing
	Enabled *bool
}

// Disabled returns Options for a query that must not run
func Disabled() Options {
	off := false
	return Options{Enabled: &off}
}

// EnabledWhen returns Options enabled only when all ids are non-empty
func EnabledWhen(ids ...string) Options {
	for _, id := range ids {
		if id == "" {
			return Disabled()
		}
	}
	return Options{}
}

type entry struct {
	key       Key
	data      any
	updatedAt time.Time
	usedAt    time.Time
	stale     bool
	refetch   func(ctx context.Context) (any, error)
}

// Event describes a cache change. Refetched marks data that arrived from a
// background Refetch rather than a caller's Fetch or SetData.
type Event struct {
	Key       Key
	Removed   bool
	Refetched bool
}

// Client is the cache. Safe for concurrent use.
type Client struct {
	staleTime time.Duration
	gcTime    time.Duration
	now       func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group

	subMu   sync.Mutex
	nextSub int
	subs    map[int]func(Event)
}

// Option configures a Client
type Option func(*Client)

func WithStaleTime(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.staleTime = d
		}
	}
}

func WithGCTime(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.gcTime = d
		}
	}
}

// WithClock replaces time.Now, used by tests
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		staleTime: DefaultStaleTime,
		gcTime:    DefaultGCTime,
		now:       time.Now,
		entries:   make(map[string]*entry),
		subs:      make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the cached value for key when fresh, otherwise runs fetcher.
// Concurrent callers for the same key share one fetcher call.
func Fetch[T any](ctx context.Context, c *Client, key Key, fetcher func(context.Context) (T, error), opts Options) (T, error) {
	var zero T
	if opts.Enabled != nil && !*opts.Enabled {
		return zero, ErrDisabled
	}

	staleTime := c.staleTime
	if opts.StaleTime > 0 {
		staleTime = opts.StaleTime
	}

	id := key.String()
	c.mu.Lock()
	if e, ok := c.entries[id]; ok && !e.stale && c.now().Sub(e.updatedAt) < staleTime {
		e.usedAt = c.now()
		data, ok := e.data.(T)
		c.mu.Unlock()
		if ok {
			return data, nil
		}
		return zero, fmt.Errorf("cache entry %s holds %T", id, e.data)
	}
	c.mu.Unlock()

	refetch := func(ctx context.Context) (any, error) {
		return fetcher(ctx)
	}

	v, err, shared := c.group.Do(id, func() (any, error) {
		data, err := fetcher(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, data, refetch)
		return data, nil
	})
	if err != nil {
		slog.Debug("query fetch failed", "key", id, "error", err)
		return zero, err
	}
	if shared {
		slog.Debug("query fetch shared", "key", id)
	}

	data, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry %s holds %T", id, v)
	}
	return data, nil
}

func (c *Client) store(key Key, data any, refetch func(context.Context) (any, error)) {
	c.put(key, data, refetch)
	c.notify(Event{Key: key})
}

func (c *Client) put(key Key, data any, refetch func(context.Context) (any, error)) {
	now := c.now()
	c.mu.Lock()
	e, ok := c.entries[key.String()]
	if !ok {
		e = &entry{key: append(Key(nil), key...)}
		c.entries[key.String()] = e
	}
	e.data = data
	e.updatedAt = now
	e.usedAt = now
	e.stale = false
	if refetch != nil {
		e.refetch = refetch
	}
	c.mu.Unlock()
}

// SetData writes data for key, keeping any registered fetcher
func (c *Client) SetData(key Key, data any) {
	c.store(key, data, nil)
}

// GetData returns the cached value for key regardless of freshness
func GetData[T any](c *Client, key Key) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.entries[key.String()]
	if !ok || e.data == nil {
		return zero, false
	}
	data, ok := e.data.(T)
	return data, ok
}

// UpdateData applies fn to the cached value of key. A missing entry passes the zero value
// and ok=false; returning ok=false from fn leaves the cache untouched.
func UpdateData[T any](c *Client, key Key, fn func(old T, exists bool) (T, bool)) {
	old, exists := GetData[T](c, key)
	next, ok := fn(old, exists)
	if !ok {
		return
	}
	c.SetData(key, next)
}

// Invalidate marks every entry under prefix stale so the next Fetch goes to the network
func (c *Client) Invalidate(prefix Key) int {
	c.mu.Lock()
	var touched []Key
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			e.stale = true
			touched = append(touched, e.key)
		}
	}
	c.mu.Unlock()

	for _, k := range touched {
		c.notify(Event{Key: k})
	}
	slog.Debug("query invalidate", "prefix", prefix.String(), "entries", len(touched))
	return len(touched)
}

// Refetch re-runs the last fetcher of every entry under prefix.
// The first error is returned; other entries are still refetched.
func (c *Client) Refetch(ctx context.Context, prefix Key) error {
	c.mu.Lock()
	type job struct {
		key Key
		fn  func(context.Context) (any, error)
	}
	var jobs []job
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) && e.refetch != nil {
			jobs = append(jobs, job{key: e.key, fn: e.refetch})
		}
	}
	c.mu.Unlock()

	var firstErr error
	for _, j := range jobs {
		id := j.key.String()
		fn := j.fn
		key := j.key
		_, err, _ := c.group.Do(id, func() (any, error) {
			data, err := fn(ctx)
			if err != nil {
				return nil, err
			}
			c.put(key, data, nil)
			c.notify(Event{Key: key, Refetched: true})
			return data, nil
		})
		if err != nil {
			slog.Debug("query refetch failed", "key", id, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// RefetchAfter schedules Refetch of prefix after delay. The returned timer can be stopped.
func (c *Client) RefetchAfter(prefix Key, delay time.Duration) *time.Timer {
	key := append(Key(nil), prefix...)
	return time.AfterFunc(delay, func() {
		if err := c.Refetch(context.Background(), key); err != nil {
			slog.Warn("scheduled refetch failed", "prefix", key.String(), "error", err)
		}
	})
}

// Remove drops every entry under prefix
func (c *Client) Remove(prefix Key) int {
	c.mu.Lock()
	var removed []Key
	for id, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			delete(c.entries, id)
			removed = append(removed, e.key)
		}
	}
	c.mu.Unlock()

	for _, k := range removed {
		c.notify(Event{Key: k, Removed: true})
	}
	return len(removed)
}

// Clear drops every entry
func (c *Client) Clear() {
	c.Remove(Key{})
}

// GC drops entries not used for GCTime and returns how many were dropped
func (c *Client) GC() int {
	cutoff := c.now().Add(-c.gcTime)
	c.mu.Lock()
	var removed []Key
	for id, e := range c.entries {
		if e.usedAt.Before(cutoff) {
			delete(c.entries, id)
			removed = append(removed, e.key)
		}
	}
	c.mu.Unlock()

	for _, k := range removed {
		c.notify(Event{Key: k, Removed: true})
	}
	if len(removed) > 0 {
		slog.Debug("query gc", "removed", len(removed))
	}
	return len(removed)
}

// IsStale reports whether key is missing, invalidated or older than StaleTime
func (c *Client) IsStale(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return true
	}
	return e.stale || c.now().Sub(e.updatedAt) >= c.staleTime
}

// Subscribe registers fn for change events and returns an unsubscribe func
func (c *Client) Subscribe(fn func(Event)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Client) notify(ev Event) {
	c.subMu.Lock()
	subs := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subMu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}
