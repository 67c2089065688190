package datagram

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/netip"
	"time"

	"calcd/application/listeners"
	"calcd/application/logging"
	"calcd/application/transport"
	"calcd/domain/arith"
	"calcd/domain/network"
	"calcd/domain/network/calcproto"
	"calcd/infrastructure/quiz"
	"calcd/infrastructure/session"
	"calcd/infrastructure/telemetry/quizstats"
)

// DefaultSweepInterval is the longest the loop waits between two sweeps.
const DefaultSweepInterval = time.Second

// Dispatcher is the datagram quiz server:
// - reads one datagram at a time with a read deadline bounded by the next sweep
// - routes 50-byte datagrams to the binary protocol and printable text to the legacy protocol
// - sweeps sessions that waited too long for a reply
//
// The session repository is owned by the loop and must not be touched by other goroutines.
type Dispatcher struct {
	ctx           context.Context
	listener      listeners.UdpListener
	sessions      session.Repository
	tasks         quiz.TaskSource
	grader        quiz.Grader
	sweepInterval time.Duration
	logger        logging.Logger
	now           func() time.Time
}

func NewDispatcher(
	ctx context.Context,
	listener listeners.UdpListener,
	sessions session.Repository,
	tasks quiz.TaskSource,
	grader quiz.Grader,
	sweepInterval time.Duration,
	logger logging.Logger,
) *Dispatcher {
	if sweepInterval <= 0 || sweepInterval > DefaultSweepInterval {
		sweepInterval = DefaultSweepInterval
	}
	return &Dispatcher{
		ctx:           ctx,
		listener:      listener,
		sessions:      sessions,
		tasks:         tasks,
		grader:        grader,
		sweepInterval: sweepInterval,
		logger:        logger,
		now:           time.Now,
	}
}

var _ transport.Handler = (*Dispatcher)(nil)

// HandleTransport runs the read loop until the context is cancelled or the socket fails.
func (d *Dispatcher) HandleTransport() error {
	defer func(conn listeners.UdpListener) {
		_ = conn.Close()
	}(d.listener)

	d.logger.Printf("quiz server listening on %s (UDP), %d session slots, grading %s",
		d.listener.LocalAddr(), d.sessions.Capacity(), d.grader.Mode())

	go func() {
		<-d.ctx.Done()
		_ = d.listener.Close()
	}()

	// one byte over the text limit, so an oversized datagram is seen as such
	buffer := make([]byte, calcproto.MaxTextSize+1)
	nextSweep := network.DeadlineAfter(d.now(), d.sweepInterval)

	for {
		if d.ctx.Err() != nil {
			return nil
		}

		n, addr, err := d.receive(buffer, nextSweep)
		now := d.now()
		switch {
		case err == nil:
			if reply := d.Handle(now, addr, buffer[:n]); reply != nil {
				d.send(reply, addr)
			}
		case d.ctx.Err() != nil:
			return nil
		case network.IsTimeout(err):
		case errors.Is(err, net.ErrClosed):
			return err
		default:
			d.logger.Printf("failed to read from UDP: %s", err)
		}

		if nextSweep.Expired(now) {
			d.Sweep(now)
			nextSweep = network.DeadlineAfter(now, d.sweepInterval)
		}
	}
}

func (d *Dispatcher) receive(buffer []byte, deadline network.Deadline) (int, netip.AddrPort, error) {
	if err := d.listener.SetReadDeadline(deadline.ExpiresAt()); err != nil {
		return 0, netip.AddrPort{}, err
	}
	n, addr, err := d.listener.ReadFromUDPAddrPort(buffer)
	if err != nil {
		if network.IsTimeout(err) {
			return 0, netip.AddrPort{}, network.NewErrTimeout(err)
		}
		return 0, netip.AddrPort{}, err
	}
	quizstats.AddRX(n)
	return n, addr, nil
}

func (d *Dispatcher) send(reply []byte, addr netip.AddrPort) {
	n, err := d.listener.WriteToUDPAddrPort(reply, addr)
	if err != nil {
		d.logger.Printf("failed to send %d bytes to %s: %s", len(reply), addr, err)
		return
	}
	quizstats.AddTX(n)
}

// Handle processes one datagram from addr and returns the reply, or nil when the datagram is dropped.
func (d *Dispatcher) Handle(now time.Time, addr netip.AddrPort, payload []byte) []byte {
	switch {
	case len(payload) == calcproto.RecordSize:
		return d.handleBinary(now, addr, payload)
	case calcproto.IsText(payload):
		return d.handleText(now, addr, payload)
	default:
		d.logger.Printf("dropped %d-byte datagram from %s: neither a record nor text", len(payload), addr)
		quizstats.RecordDropped()
		return nil
	}
}

func (d *Dispatcher) handleBinary(now time.Time, addr netip.AddrPort, payload []byte) []byte {
	record, err := calcproto.Decode(payload)
	if err != nil {
		d.logger.Printf("dropped datagram from %s: %s", addr, err)
		return nil
	}
	return d.converse(now, addr, conversation{
		class: arith.AnyClass,
		issue: func(task arith.Task) []byte {
			id := record.ID
			if id == 0 {
				id = d.tasks.Uint32()
			}
			return calcproto.Encode(calcproto.NewTaskRecord(id, task))
		},
		grade: func(task arith.Task) ([]byte, error) {
			return d.grader.GradeRecord(task, record)
		},
	})
}

func (d *Dispatcher) handleText(now time.Time, addr netip.AddrPort, payload []byte) []byte {
	return d.converse(now, addr, conversation{
		class: arith.IntClass,
		issue: calcproto.FormatTask,
		grade: func(task arith.Task) ([]byte, error) {
			return d.grader.GradeText(task, payload)
		},
	})
}

// conversation is the protocol-specific half of one exchange.
type conversation struct {
	class arith.Class
	issue func(task arith.Task) []byte
	grade func(task arith.Task) ([]byte, error)
}

func (d *Dispatcher) converse(now time.Time, addr netip.AddrPort, c conversation) []byte {
	s, err := d.sessions.Find(addr)
	if errors.Is(err, session.ErrNotFound) {
		return d.open(now, addr, c)
	}
	if err != nil {
		d.logger.Printf("session lookup for %s failed: %s", addr, err)
		return nil
	}

	s.Touch(now)
	task, hasTask := s.Task()
	if !s.AwaitingResponse() || !hasTask {
		d.logger.Printf("session %s (%s): %s", s.ID(), addr, quiz.ErrLateOrUnexpectedResponse)
		quizstats.RecordRejected()
		return []byte(calcproto.LineRejected)
	}

	verdict, gradeErr := c.grade(task)
	s.Resolve()
	id := s.ID()
	d.sessions.Remove(addr)
	quizstats.RecordResolved(bytes.Equal(verdict, []byte(calcproto.LineCorrect)))
	if gradeErr != nil {
		d.logger.Printf("session %s (%s) resolved on %s: %s", id, addr, task, gradeErr)
	} else {
		d.logger.Printf("session %s (%s) resolved on %s: %q", id, addr, task, verdict)
	}
	return verdict
}

func (d *Dispatcher) open(now time.Time, addr netip.AddrPort, c conversation) []byte {
	s, err := d.sessions.Insert(addr, now)
	if err != nil {
		d.logger.Printf("dropped datagram from %s: %s", addr, err)
		quizstats.RecordDropped()
		return nil
	}
	task := d.tasks.Generate(c.class)
	s.Issue(task, now)
	quizstats.RecordIssued()
	d.logger.Printf("session %s (%s) issued %s", s.ID(), addr, task)
	return c.issue(task)
}

// Sweep removes sessions that have waited longer than the repository timeout and returns how many.
func (d *Dispatcher) Sweep(now time.Time) int {
	expired := d.sessions.Sweep(now)
	for _, s := range expired {
		d.logger.Printf("session %s (%s) timed out waiting for a reply", s.ID(), s.Addr())
	}
	quizstats.RecordSwept(len(expired))
	return len(expired)
}
