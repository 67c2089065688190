package network

import (
	"time"
)

// Deadline bounds a blocking receive. The zero value means no deadline.
type Deadline struct {
	expiresAt time.Time
}

func InfiniteDeadline() Deadline {
	return Deadline{}
}

func DeadlineFromTime(deadline time.Time) Deadline {
	return Deadline{
		expiresAt: deadline,
	}
}

// DeadlineAfter returns a deadline d after now. A non-positive d yields an already expired deadline.
func DeadlineAfter(now time.Time, d time.Duration) Deadline {
	return Deadline{
		expiresAt: now.Add(d),
	}
}

func (d Deadline) ExpiresAt() time.Time {
	return d.expiresAt
}

func (d Deadline) IsInfinite() bool {
	return d.expiresAt.IsZero()
}

// Expired reports whether now is at or past the deadline.
func (d Deadline) Expired(now time.Time) bool {
	return !d.IsInfinite() && !now.Before(d.expiresAt)
}

// Earliest returns whichever of d and other expires first; an infinite deadline never wins.
func (d Deadline) Earliest(other Deadline) Deadline {
	switch {
	case d.IsInfinite():
		return other
	case other.IsInfinite():
		return d
	case other.expiresAt.Before(d.expiresAt):
		return other
	default:
		return d
	}
}
