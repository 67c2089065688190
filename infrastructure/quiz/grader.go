package quiz

import (
	"fmt"
	"strings"

	"calcd/domain/arith"
	"calcd/domain/network/calcproto"
)

// GradingMode selects which operands a binary reply is graded against.
type GradingMode string

const (
	// GradeStored grades with the task the server issued.
	GradeStored GradingMode = "stored"
	// GradeEchoed grades with the operator and operands echoed in the reply record.
	GradeEchoed GradingMode = "echoed"
)

func ParseGradingMode(s string) (GradingMode, error) {
	switch mode := GradingMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "", GradeStored:
		return GradeStored, nil
	case GradeEchoed:
		return GradeEchoed, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGradingMode, s)
	}
}

// Grader turns a peer's reply into a verdict line.
type Grader struct {
	mode GradingMode
}

func NewGrader(mode GradingMode) Grader {
	if mode == "" {
		mode = GradeStored
	}
	return Grader{mode: mode}
}

func (g Grader) Mode() GradingMode {
	return g.mode
}

// GradeRecord grades a binary reply to issued. The returned error explains a non-correct
// verdict that was caused by an unusable task rather than a wrong answer.
func (g Grader) GradeRecord(issued arith.Task, reply calcproto.Record) ([]byte, error) {
	task := issued
	if g.mode == GradeEchoed {
		task = reply.Task()
	}
	expected, err := task.Expected()
	if err != nil {
		if g.mode == GradeEchoed && !task.Operator.Valid() {
			return []byte(calcproto.LineInvalidOperation), err
		}
		return calcproto.Verdict(false), err
	}
	return calcproto.Verdict(reply.Matches(expected)), nil
}

// GradeText grades a legacy text answer. Text replies carry no operands, so the issued task is used.
func (g Grader) GradeText(issued arith.Task, answer []byte) ([]byte, error) {
	expected, err := issued.Expected()
	if err != nil {
		return calcproto.Verdict(false), err
	}
	return calcproto.Verdict(calcproto.AnswerMatches(calcproto.ParseAnswer(answer), expected)), nil
}
