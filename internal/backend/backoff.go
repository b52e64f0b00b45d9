package backend

import "time"

// backoff stretches the poll interval while tmux keeps failing, so a stopped
// server is not polled every tick.
type backoff struct {
	base time.Duration
	max  time.Duration
	cur  time.Duration
}

func newBackoff(base, max time.Duration) *backoff {
	if max < base {
		max = base
	}
	return &backoff{base: base, max: max, cur: base}
}

// next returns the delay before the following poll given the last outcome.
func (b *backoff) next(failed bool) time.Duration {
	if !failed {
		b.cur = b.base
		return b.cur
	}
	d := b.cur
	b.cur *= 2
	if b.cur > b.max {
		b.cur = b.max
	}
	return d
}
