// Package notify keeps short-lived, dismissible notices for the status
// line.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a notice stays visible.
const DefaultTTL = 5 * time.Second

type Level int

const (
	Info Level = iota
	Success
	Warning
	Danger
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Danger:
		return "danger"
	default:
		return "info"
	}
}

// Notifier accepts user-visible messages.
type Notifier interface {
	Notify(message string, level Level)
}

type Notice struct {
	ID      int
	Message string
	Level   Level
	Expires time.Time
}

// Center collects notices. It is safe for concurrent use; API calls post
// to it from background commands while the UI reads it.
type Center struct {
	mu      sync.Mutex
	notices []Notice
	nextID  int
	ttl     time.Duration
	now     func() time.Time
}

type Option func(*Center)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Center) { c.ttl = ttl }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

func NewCenter(opts ...Option) *Center {
	c := &Center{ttl: DefaultTTL, now: time.Now, nextID: 1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify adds a notice that expires after the center's TTL.
func (c *Center) Notify(message string, level Level) {
	c.mu.Lock()
	n := Notice{
		ID:      c.nextID,
		Message: message,
		Level:   level,
		Expires: c.now().Add(c.ttl),
	}
	c.nextID++
	c.notices = append(c.notices, n)
	c.mu.Unlock()
}

// Active returns the notices still visible at now, oldest first.
func (c *Center) Active(now time.Time) []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Notice
	for _, n := range c.notices {
		if now.Before(n.Expires) {
			out = append(out, n)
		}
	}
	return out
}

// Latest returns the newest visible notice.
func (c *Center) Latest(now time.Time) (Notice, bool) {
	active := c.Active(now)
	if len(active) == 0 {
		return Notice{}, false
	}
	return active[len(active)-1], true
}

// Dismiss removes a notice before it expires.
func (c *Center) Dismiss(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, n := range c.notices {
		if n.ID == id {
			c.notices = append(c.notices[:i], c.notices[i+1:]...)
			return
		}
	}
}

// Prune drops expired notices and returns how many remain.
func (c *Center) Prune(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.notices[:0]
	for _, n := range c.notices {
		if now.Before(n.Expires) {
			kept = append(kept, n)
		}
	}
	c.notices = kept
	return len(kept)
}
