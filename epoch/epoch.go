// Package epoch provides the store's timestamp service.
//
// Timestamps are integer seconds since 2000-01-01T00:00:00 UTC, not the Unix
// epoch. Databases written by earlier firmware use this origin, so it is load
// bearing for compatibility, not a stylistic choice. Formatting uses a fixed
// signed UTC offset - constrained targets carry no timezone database.
package epoch

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// OriginUnix is the Unix second of the epoch origin, 2000-01-01T00:00:00Z.
const OriginUnix int64 = 946684800

// Clock produces epoch-relative timestamps. The store takes a Clock so
// retention tests can pin time instead of sleeping.
type Clock interface {
	// Now returns integer seconds since the epoch origin.
	Now() int64
}

// SystemClock reads the wall clock.
//
// Thread-safety: stateless, safe for concurrent use.
type SystemClock struct{}

// Now returns the current time in epoch-relative seconds.
func (SystemClock) Now() int64 {
	return time.Now().Unix() - OriginUnix
}

// ManualClock is a settable clock for tests and scenario replay.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type ManualClock struct {
	mu  sync.Mutex
	now int64
}

// NewManualClock creates a clock pinned at the given epoch-relative second.
func NewManualClock(now int64) *ManualClock {
	return &ManualClock{now: now}
}

// Now returns the pinned time.
func (c *ManualClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d seconds.
func (c *ManualClock) Advance(d int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

// Set pins the clock to an absolute epoch-relative second.
func (c *ManualClock) Set(now int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// ParseOffset parses a fixed UTC offset of the form "+HH:MM" or "-HH:MM"
// into signed minutes. The empty string means no offset.
func ParseOffset(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if len(s) != 6 || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return 0, fmt.Errorf("invalid UTC offset %q: want ±HH:MM", s)
	}

	hours, err := strconv.Atoi(s[1:3])
	if err != nil {
		return 0, fmt.Errorf("invalid UTC offset %q: %w", s, err)
	}
	minutes, err := strconv.Atoi(s[4:6])
	if err != nil {
		return 0, fmt.Errorf("invalid UTC offset %q: %w", s, err)
	}
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("invalid UTC offset %q: out of range", s)
	}

	total := hours*60 + minutes
	if s[0] == '-' {
		total = -total
	}
	return total, nil
}

// FormatOffset renders signed minutes as "±HH:MM".
func FormatOffset(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

// Format renders an epoch-relative timestamp as ISO-8601 with a fixed
// offset: "YYYY-MM-DDTHH:MM:SS±HH:MM". The offset shifts the civil time and
// is appended verbatim; there is no DST handling.
func Format(seconds int64, offsetMinutes int) string {
	t := time.Unix(seconds+OriginUnix, 0).UTC().Add(time.Duration(offsetMinutes) * time.Minute)

	var b strings.Builder
	b.WriteString(t.Format("2006-01-02T15:04:05"))
	b.WriteString(FormatOffset(offsetMinutes))
	return b.String()
}
