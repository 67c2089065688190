package stream

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"calcd/application/listeners"
	"calcd/domain/arith"
	"calcd/domain/network"
	"calcd/domain/network/calcproto"
	"calcd/infrastructure/quiz"
)

// DefaultTimeout bounds every read of a stream conversation.
const DefaultTimeout = 5 * time.Second

// Handler serves one exchange per connection:
// - "TEXT TCP 1.1": send an int task line, grade the answer with OK/NOT OK
// - a 50-byte record: answer it with the record's result filled in
// - anything else, or silence past the timeout: ERROR TO
type Handler struct {
	tasks   quiz.TaskSource
	timeout time.Duration
}

func NewHandler(tasks quiz.TaskSource, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Handler{tasks: tasks, timeout: timeout}
}

// Serve runs the exchange and returns a description of how it ended, for logging.
func (h *Handler) Serve(ctx context.Context, conn listeners.MessageConn) (string, error) {
	msg, err := h.read(ctx, conn)
	if err != nil {
		return h.fail(ctx, conn, "no request", err)
	}

	switch {
	case bytes.HasPrefix(msg, []byte(calcproto.TextHandshake)):
		return h.serveText(ctx, conn)
	case len(msg) == calcproto.RecordSize:
		return h.serveRecord(ctx, conn, msg)
	default:
		return h.fail(ctx, conn, fmt.Sprintf("unrecognised %d-byte request", len(msg)), nil)
	}
}

func (h *Handler) serveText(ctx context.Context, conn listeners.MessageConn) (string, error) {
	task := h.tasks.Generate(arith.IntClass)
	expected, err := task.Expected()
	if err != nil {
		return h.fail(ctx, conn, "task "+task.String(), err)
	}
	if err := h.write(ctx, conn, calcproto.FormatTask(task)); err != nil {
		return "", err
	}

	answer, err := h.read(ctx, conn)
	if err != nil {
		return h.fail(ctx, conn, "no answer to "+task.String(), err)
	}

	verdict := calcproto.LineNotOK
	if calcproto.AnswerMatches(calcproto.ParseAnswer(answer), expected) {
		verdict = calcproto.LineOK
	}
	if err := h.write(ctx, conn, []byte(verdict)); err != nil {
		return "", err
	}
	return fmt.Sprintf("text %s answered %q", task, bytes.TrimSpace(answer)), nil
}

func (h *Handler) serveRecord(ctx context.Context, conn listeners.MessageConn, msg []byte) (string, error) {
	record, err := calcproto.Decode(msg)
	if err != nil {
		return h.fail(ctx, conn, "record", err)
	}
	result, err := record.Task().Expected()
	if err != nil {
		return h.fail(ctx, conn, "record "+record.Operator.String(), err)
	}
	if err := h.write(ctx, conn, calcproto.Encode(record.WithResult(result))); err != nil {
		return "", err
	}
	return fmt.Sprintf("record %d solved %s", record.ID, record.Task()), nil
}

// fail sends ERROR TO and reports why.
func (h *Handler) fail(ctx context.Context, conn listeners.MessageConn, what string, cause error) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err := h.write(ctx, conn, []byte(calcproto.LineTimeout)); err != nil {
		return "", err
	}
	if cause == nil {
		return what, nil
	}
	if network.IsTimeout(cause) {
		return what + ": timed out", nil
	}
	return fmt.Sprintf("%s: %s", what, cause), nil
}

func (h *Handler) read(ctx context.Context, conn listeners.MessageConn) ([]byte, error) {
	readCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return conn.ReadMessage(readCtx)
}

func (h *Handler) write(ctx context.Context, conn listeners.MessageConn, data []byte) error {
	writeCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	if err := conn.WriteMessage(writeCtx, data); err != nil {
		return fmt.Errorf("failed to write to %s: %w", conn.RemoteAddr(), err)
	}
	return nil
}
