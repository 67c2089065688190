package session

import (
	"net/netip"
	"time"
)

// DefaultCapacity is the default number of concurrent sessions.
const DefaultCapacity = 100

// DefaultTimeout is how long a session may wait for a reply.
const DefaultTimeout = 10 * time.Second

type Repository interface {
	// Find returns the session of addr, or ErrNotFound.
	Find(addr netip.AddrPort) (*Session, error)
	// Insert creates a session for addr. It fails with ErrTableFull when no slot is free
	// and with ErrAlreadyExists when addr already has one. It never evicts.
	Insert(addr netip.AddrPort, now time.Time) (*Session, error)
	// Remove frees the slot of addr. It reports whether a session existed.
	Remove(addr netip.AddrPort) bool
	// Sweep removes every session that has been awaiting a reply for longer than the timeout.
	Sweep(now time.Time) []Session
	Len() int
	Capacity() int
}

// Table is a fixed-capacity slot arena indexed by peer address.
//
// Table is not safe for concurrent use. It is owned by a single dispatch loop.
// Pointers returned by Find and Insert stay valid until the session is removed;
// after that the slot may be reused for another peer.
type Table struct {
	slots    []Session
	occupied []bool
	free     []int
	index    map[netip.AddrPort]int
	timeout  time.Duration
}

func NewTable(capacity int, timeout time.Duration) *Table {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	free := make([]int, capacity)
	for i := range free {
		// pop order yields the lowest free slot first
		free[i] = capacity - 1 - i
	}
	return &Table{
		slots:    make([]Session, capacity),
		occupied: make([]bool, capacity),
		free:     free,
		index:    make(map[netip.AddrPort]int, capacity),
		timeout:  timeout,
	}
}

func (t *Table) Find(addr netip.AddrPort) (*Session, error) {
	i, found := t.index[addr]
	if !found {
		return nil, ErrNotFound
	}
	return &t.slots[i], nil
}

func (t *Table) Insert(addr netip.AddrPort, now time.Time) (*Session, error) {
	if _, found := t.index[addr]; found {
		return nil, ErrAlreadyExists
	}
	if len(t.free) == 0 {
		return nil, ErrTableFull
	}
	i := t.free[len(t.free)-1]
	t.free = t.free[:len(t.free)-1]

	t.slots[i] = newSession(addr, now)
	t.occupied[i] = true
	t.index[addr] = i
	return &t.slots[i], nil
}

func (t *Table) Remove(addr netip.AddrPort) bool {
	i, found := t.index[addr]
	if !found {
		return false
	}
	t.release(i)
	return true
}

func (t *Table) Sweep(now time.Time) []Session {
	var expired []Session
	for i := range t.slots {
		if !t.occupied[i] || !t.slots[i].Expired(now, t.timeout) {
			continue
		}
		expired = append(expired, t.slots[i])
		t.release(i)
	}
	return expired
}

func (t *Table) Len() int {
	return len(t.index)
}

func (t *Table) Capacity() int {
	return len(t.slots)
}

func (t *Table) Timeout() time.Duration {
	return t.timeout
}

func (t *Table) release(i int) {
	delete(t.index, t.slots[i].addr)
	t.slots[i] = Session{}
	t.occupied[i] = false
	t.free = append(t.free, i)
}
