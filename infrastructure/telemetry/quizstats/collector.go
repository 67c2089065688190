package quizstats

import (
	"context"
	"sync/atomic"
	"time"

	"calcd/application/logging"
)

type Snapshot struct {
	Issued    uint64
	Correct   uint64
	Incorrect uint64
	Rejected  uint64
	Swept     uint64
	Dropped   uint64
	Streams   uint64
	RXBytes   uint64
	TXBytes   uint64
}

// Collector counts quiz conversations across all transports. Counters only grow.
type Collector struct {
	issued    atomic.Uint64
	correct   atomic.Uint64
	incorrect atomic.Uint64
	rejected  atomic.Uint64
	swept     atomic.Uint64
	dropped   atomic.Uint64
	streams   atomic.Uint64
	rxBytes   atomic.Uint64
	txBytes   atomic.Uint64

	started atomic.Bool
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) AddIssued() {
	c.issued.Add(1)
}

func (c *Collector) AddResolved(correct bool) {
	if correct {
		c.correct.Add(1)
		return
	}
	c.incorrect.Add(1)
}

func (c *Collector) AddRejected() {
	c.rejected.Add(1)
}

func (c *Collector) AddSwept(n int) {
	if n <= 0 {
		return
	}
	c.swept.Add(uint64(n))
}

func (c *Collector) AddDropped() {
	c.dropped.Add(1)
}

func (c *Collector) AddStream() {
	c.streams.Add(1)
}

func (c *Collector) AddRX(bytes int) {
	if bytes <= 0 {
		return
	}
	c.rxBytes.Add(uint64(bytes))
}

func (c *Collector) AddTX(bytes int) {
	if bytes <= 0 {
		return
	}
	c.txBytes.Add(uint64(bytes))
}

func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Issued:    c.issued.Load(),
		Correct:   c.correct.Load(),
		Incorrect: c.incorrect.Load(),
		Rejected:  c.rejected.Load(),
		Swept:     c.swept.Load(),
		Dropped:   c.dropped.Load(),
		Streams:   c.streams.Load(),
		RXBytes:   c.rxBytes.Load(),
		TXBytes:   c.txBytes.Load(),
	}
}

// Report logs a snapshot every interval while counters keep changing, and a final one when ctx ends.
// Only the first call on a Collector runs; later calls return immediately.
func (c *Collector) Report(ctx context.Context, interval time.Duration, logger logging.Logger) {
	if !c.started.CompareAndSwap(false, true) {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last Snapshot
	for {
		select {
		case <-ctx.Done():
			logger.Printf("totals: %s", c.Snapshot())
			return
		case <-ticker.C:
			if s := c.Snapshot(); s != last {
				logger.Printf("stats: %s", s)
				last = s
			}
		}
	}
}
