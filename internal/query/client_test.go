package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestClient() (*Client, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewClient(WithClock(clock.Now)), clock
}

func counter(calls *atomic.Int32, value string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		n := calls.Add(1)
		return value + "-" + string(rune('0'+n)), nil
	}
}

// ============================================================================
// Keys
// ============================================================================

func TestKey_HasPrefix(t *testing.T) {
	tests := []struct {
		name   string
		key    Key
		prefix Key
		want   bool
	}{
		{"exact", Key{"lists", "s1"}, Key{"lists", "s1"}, true},
		{"resource prefix", Key{"lists", "s1"}, Key{"lists"}, true},
		{"empty prefix matches all", Key{"tasks", "1"}, Key{}, true},
		{"other parent", Key{"lists", "s2"}, Key{"lists", "s1"}, false},
		{"longer prefix", Key{"lists"}, Key{"lists", "s1"}, false},
		{"singular is separate namespace", Key{"list", "s1"}, Key{"lists"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.HasPrefix(tt.prefix))
		})
	}
}

// ============================================================================
// Fetch
// ============================================================================

func TestFetch_ServesFreshDataFromCache(t *testing.T) {
	c, clock := newTestClient()
	ctx := context.Background()
	var calls atomic.Int32

	first, err := Fetch(ctx, c, Key{"spaces", "w1"}, counter(&calls, "v"), Options{})
	require.NoError(t, err)
	clock.Advance(30 * time.Second)
	second, err := Fetch(ctx, c, Key{"spaces", "w1"}, counter(&calls, "v"), Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_RefetchesAfterStaleTime(t *testing.T) {
	c, clock := newTestClient()
	ctx := context.Background()
	var calls atomic.Int32

	_, err := Fetch(ctx, c, Key{"spaces", "w1"}, counter(&calls, "v"), Options{})
	require.NoError(t, err)
	clock.Advance(DefaultStaleTime)
	got, err := Fetch(ctx, c, Key{"spaces", "w1"}, counter(&calls, "v"), Options{})
	require.NoError(t, err)

	assert.Equal(t, "v-2", got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_DeduplicatesConcurrentCalls(t *testing.T) {
	c := NewClient()
	ctx := context.Background()
	var calls atomic.Int32
	release := make(chan struct{})

	fetcher := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Fetch(ctx, c, Key{"workspaces"}, fetcher, Options{})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestFetch_DisabledNeverCallsFetcher(t *testing.T) {
	c := NewClient()
	called := false
	_, err := Fetch(context.Background(), c, Key{"lists", ""}, func(context.Context) (string, error) {
		called = true
		return "", nil
	}, EnabledWhen(""))

	assert.ErrorIs(t, err, ErrDisabled)
	assert.False(t, called)
}

func TestFetch_ErrorIsNotCached(t *testing.T) {
	c := NewClient()
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := Fetch(ctx, c, Key{"tasks"}, func(context.Context) (int, error) { return 0, boom }, Options{})
	assert.ErrorIs(t, err, boom)

	_, ok := GetData[int](c, Key{"tasks"})
	assert.False(t, ok)
}

// ============================================================================
// Mutations of the cache
// ============================================================================

func TestInvalidate_MarksPrefixStale(t *testing.T) {
	c, _ := newTestClient()
	ctx := context.Background()
	var calls atomic.Int32

	_, _ = Fetch(ctx, c, Key{"lists", "s1"}, counter(&calls, "a"), Options{})
	_, _ = Fetch(ctx, c, Key{"list", "l1"}, counter(&calls, "b"), Options{})

	n := c.Invalidate(Key{"lists"})
	assert.Equal(t, 1, n)
	assert.True(t, c.IsStale(Key{"lists", "s1"}))
	assert.False(t, c.IsStale(Key{"list", "l1"}))

	// stale data is still readable until refetched
	v, ok := GetData[string](c, Key{"lists", "s1"})
	assert.True(t, ok)
	assert.Equal(t, "a-1", v)
}

func TestRefetch_RerunsRegisteredFetcher(t *testing.T) {
	c := NewClient()
	ctx := context.Background()
	var calls atomic.Int32

	_, err := Fetch(ctx, c, Key{"groups", "s1"}, counter(&calls, "g"), Options{})
	require.NoError(t, err)

	require.NoError(t, c.Refetch(ctx, Key{"groups"}))
	v, _ := GetData[string](c, Key{"groups", "s1"})
	assert.Equal(t, "g-2", v)
}

func TestRefetchAfter_RunsLater(t *testing.T) {
	c := NewClient()
	ctx := context.Background()
	var calls atomic.Int32

	_, err := Fetch(ctx, c, Key{"spaces", "w1"}, counter(&calls, "s"), Options{})
	require.NoError(t, err)

	c.RefetchAfter(Key{"spaces", "w1"}, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestUpdateData_PatchesInPlace(t *testing.T) {
	c := NewClient()
	c.SetData(Key{"tasks"}, []string{"b"})

	UpdateData(c, Key{"tasks"}, func(old []string, exists bool) ([]string, bool) {
		return append([]string{"a"}, old...), exists
	})
	UpdateData(c, Key{"missing"}, func(old []string, exists bool) ([]string, bool) {
		return old, exists
	})

	v, ok := GetData[[]string](c, Key{"tasks"})
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)
	_, ok = GetData[[]string](c, Key{"missing"})
	assert.False(t, ok)
}

func TestRemove_DropsPrefix(t *testing.T) {
	c := NewClient()
	c.SetData(Key{"currentUser"}, "ada")
	c.SetData(Key{"tasks", "1"}, "t")

	assert.Equal(t, 1, c.Remove(Key{"currentUser"}))
	_, ok := GetData[string](c, Key{"currentUser"})
	assert.False(t, ok)
	_, ok = GetData[string](c, Key{"tasks", "1"})
	assert.True(t, ok)
}

func TestGC_DropsUnusedEntries(t *testing.T) {
	c, clock := newTestClient()
	c.SetData(Key{"old"}, 1)
	clock.Advance(DefaultGCTime - time.Minute)
	c.SetData(Key{"recent"}, 2)
	clock.Advance(2 * time.Minute)

	assert.Equal(t, 1, c.GC())
	_, ok := GetData[int](c, Key{"old"})
	assert.False(t, ok)
	_, ok = GetData[int](c, Key{"recent"})
	assert.True(t, ok)
}

func TestSubscribe_ReceivesEvents(t *testing.T) {
	c := NewClient()
	var events []Event
	unsubscribe := c.Subscribe(func(ev Event) { events = append(events, ev) })

	c.SetData(Key{"tasks"}, 1)
	c.Remove(Key{"tasks"})
	unsubscribe()
	c.SetData(Key{"tasks"}, 2)

	require.Len(t, events, 2)
	assert.False(t, events[0].Removed)
	assert.True(t, events[1].Removed)
}

func TestSubscribe_MarksRefetchedData(t *testing.T) {
	c := NewClient()
	ctx := context.Background()
	calls := 0
	_, err := Fetch(ctx, c, Key{"tasks", "list", "l1"}, func(context.Context) (int, error) {
		calls++
		return calls, nil
	}, Options{})
	require.NoError(t, err)

	var events []Event
	unsubscribe := c.Subscribe(func(ev Event) { events = append(events, ev) })
	defer unsubscribe()

	c.SetData(Key{"tasks", "list", "l1"}, 10)
	require.NoError(t, c.Refetch(ctx, Key{"tasks"}))

	require.Len(t, events, 2)
	assert.False(t, events[0].Refetched, "SetData comes from the caller")
	assert.True(t, events[1].Refetched)
	assert.Equal(t, Key{"tasks", "list", "l1"}, events[1].Key)
	v, ok := GetData[int](c, Key{"tasks", "list", "l1"})
	require.True(t, ok)
	assert.Equal(t, 2, v)
}
