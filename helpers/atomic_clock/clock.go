// Package atomic_clock is an atomic int64 wall clock value.
// Safe to write from input goroutine and read from render tick.
// Do not use where time zone matters.
package atomic_clock

import (
	"sync/atomic"
	"time"
)

type Clock struct{ v int64 }

func (c *Clock) SetTime(t time.Time) { atomic.StoreInt64(&c.v, t.UnixNano()) }

// Age is duration from stored value to `now`, zero clock is infinitely old.
func (c *Clock) Age(now time.Time) time.Duration {
	v := atomic.LoadInt64(&c.v)
	if v == 0 {
		return time.Duration(1<<63 - 1)
	}
	return time.Duration(now.UnixNano() - v)
}
