package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNotify_ExpiresAfterTTL(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := NewCenter(WithClock(fixedClock(start)))

	c.Notify("saved", Success)

	require.Len(t, c.Active(start), 1)
	require.Len(t, c.Active(start.Add(DefaultTTL-time.Millisecond)), 1)
	require.Empty(t, c.Active(start.Add(DefaultTTL)))
}

func TestLatest(t *testing.T) {
	now := time.Now()
	c := NewCenter(WithClock(fixedClock(now)))

	_, ok := c.Latest(now)
	require.False(t, ok)

	c.Notify("first", Info)
	c.Notify("second", Danger)

	n, ok := c.Latest(now)
	require.True(t, ok)
	require.Equal(t, "second", n.Message)
	require.Equal(t, Danger, n.Level)
}

func TestDismiss(t *testing.T) {
	now := time.Now()
	c := NewCenter(WithClock(fixedClock(now)))
	c.Notify("a", Info)
	c.Notify("b", Info)

	active := c.Active(now)
	c.Dismiss(active[0].ID)

	active = c.Active(now)
	require.Len(t, active, 1)
	require.Equal(t, "b", active[0].Message)

	c.Dismiss(999)
	require.Len(t, c.Active(now), 1)
}

func TestPrune(t *testing.T) {
	now := time.Now()
	c := NewCenter(WithClock(fixedClock(now)), WithTTL(time.Second))
	c.Notify("a", Warning)

	require.Equal(t, 1, c.Prune(now))
	require.Equal(t, 0, c.Prune(now.Add(2*time.Second)))
}

func TestConcurrentNotify(t *testing.T) {
	c := NewCenter()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Notify("x", Info)
		}()
	}
	wg.Wait()
	require.Len(t, c.Active(time.Now()), 50)
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "info", Info.String())
	require.Equal(t, "success", Success.String())
	require.Equal(t, "warning", Warning.String())
	require.Equal(t, "danger", Danger.String())
}
