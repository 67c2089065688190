package probe

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"calcd/application/listeners"
	"calcd/domain/arith"
	"calcd/domain/network/calcproto"
	"calcd/infrastructure/network/tcp"
	"calcd/infrastructure/network/udp"
	"calcd/infrastructure/quiz"
)

type Mode string

const (
	UDPBinary Mode = "udp-binary"
	UDPText   Mode = "udp-text"
	TCPText   Mode = "tcp-text"
	TCPBinary Mode = "tcp-binary"
)

const DefaultTimeout = 5 * time.Second

var (
	ErrUnknownMode     = errors.New("unknown probe mode")
	ErrUnexpectedReply = errors.New("unexpected reply")
)

func Modes() []Mode {
	return []Mode{UDPBinary, UDPText, TCPText, TCPBinary}
}

func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Result describes one finished conversation.
type Result struct {
	Task    arith.Task
	Answer  string
	Verdict string
}

// Prober plays the client side of one quiz conversation, solving the task it is given.
type Prober struct {
	tasks   quiz.TaskSource
	timeout time.Duration
}

func NewProber(tasks quiz.TaskSource, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{tasks: tasks, timeout: timeout}
}

func (p *Prober) Probe(ctx context.Context, mode Mode, addr netip.AddrPort) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.dial(ctx, mode, addr)
	if err != nil {
		return Result{}, err
	}
	defer func(conn listeners.MessageConn) {
		_ = conn.Close()
	}(conn)

	switch mode {
	case UDPBinary:
		return p.datagramRecord(ctx, conn)
	case UDPText:
		return p.text(ctx, conn, []byte("TEXT UDP 1.1\n"))
	case TCPText:
		return p.text(ctx, conn, []byte(calcproto.TextHandshake+"\n"))
	default:
		return p.streamRecord(ctx, conn)
	}
}

func (p *Prober) dial(ctx context.Context, mode Mode, addr netip.AddrPort) (listeners.MessageConn, error) {
	switch mode {
	case UDPBinary, UDPText:
		conn, err := udp.NewConnection(addr).Establish(ctx)
		if err != nil {
			return nil, err
		}
		return tcp.NewMessageConn(conn), nil
	case TCPText, TCPBinary:
		return tcp.NewConnection(addr).Establish(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// datagramRecord asks for a task with an empty record, answers it and reads the verdict line.
func (p *Prober) datagramRecord(ctx context.Context, conn listeners.MessageConn) (Result, error) {
	request := calcproto.Record{ID: p.tasks.Uint32()}
	issued, err := exchange(ctx, conn, calcproto.Encode(request))
	if err != nil {
		return Result{}, err
	}
	record, err := calcproto.Decode(issued)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %q", ErrUnexpectedReply, issued)
	}

	task := record.Task()
	expected, err := task.Expected()
	if err != nil {
		return Result{Task: task}, fmt.Errorf("server issued unsolvable task %s: %w", task, err)
	}
	verdict, err := exchange(ctx, conn, calcproto.Encode(record.WithResult(expected)))
	if err != nil {
		return Result{Task: task}, err
	}
	return Result{Task: task, Answer: formatResult(expected), Verdict: line(verdict)}, nil
}

func (p *Prober) text(ctx context.Context, conn listeners.MessageConn, hello []byte) (Result, error) {
	issued, err := exchange(ctx, conn, hello)
	if err != nil {
		return Result{}, err
	}
	task, err := calcproto.ParseTask(issued)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %q", ErrUnexpectedReply, issued)
	}

	expected, err := task.Expected()
	if err != nil {
		return Result{Task: task}, fmt.Errorf("server issued unsolvable task %s: %w", task, err)
	}
	answer := formatResult(expected)
	verdict, err := exchange(ctx, conn, []byte(answer+"\n"))
	if err != nil {
		return Result{Task: task}, err
	}
	return Result{Task: task, Answer: answer, Verdict: line(verdict)}, nil
}

// streamRecord sends a task of its own and checks the result the server fills in.
func (p *Prober) streamRecord(ctx context.Context, conn listeners.MessageConn) (Result, error) {
	task := p.tasks.Generate(arith.AnyClass)
	expected, err := task.Expected()
	if err != nil {
		return Result{Task: task}, err
	}

	reply, err := exchange(ctx, conn, calcproto.Encode(calcproto.NewTaskRecord(p.tasks.Uint32(), task)))
	if err != nil {
		return Result{Task: task}, err
	}
	record, err := calcproto.Decode(reply)
	if err != nil {
		return Result{Task: task}, fmt.Errorf("%w: %q", ErrUnexpectedReply, reply)
	}

	answer := formatResult(resultOf(record, expected.Class))
	return Result{Task: task, Answer: answer, Verdict: line(calcproto.Verdict(record.Matches(expected)))}, nil
}

func exchange(ctx context.Context, conn listeners.MessageConn, request []byte) ([]byte, error) {
	if err := conn.WriteMessage(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	reply, err := conn.ReadMessage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read reply: %w", err)
	}
	return reply, nil
}

func resultOf(r calcproto.Record, class arith.Class) arith.Result {
	if class == arith.FloatClass {
		return arith.Result{Class: class, Float: r.FltResult}
	}
	return arith.Result{Class: class, Int: r.IntResult}
}

func formatResult(r arith.Result) string {
	if r.Class == arith.FloatClass {
		return strconv.FormatFloat(r.Float, 'g', -1, 64)
	}
	return strconv.FormatInt(int64(r.Int), 10)
}

func line(b []byte) string {
	return strings.TrimSpace(string(b))
}
