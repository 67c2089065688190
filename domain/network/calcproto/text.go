package calcproto

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"calcd/domain/arith"
)

// Legacy text protocol lines.
const (
	LineCorrect          = "RESULT: correct\n"
	LineIncorrect        = "RESULT: incorrect\n"
	LineInvalidOperation = "ERROR: invalid operation\n"
	LineRejected         = "ERROR: response rejected (late or unexpected)\n"
	LineTimeout          = "ERROR TO\n"

	// Stream variant.
	TextHandshake = "TEXT TCP 1.1"
	LineOK        = "OK\n"
	LineNotOK     = "NOT OK\n"
)

// MaxTextSize bounds a legacy text datagram.
const MaxTextSize = 1023

var ErrMalformedTask = errors.New("malformed task line")

// Verdict returns the datagram verdict line.
func Verdict(correct bool) []byte {
	if correct {
		return []byte(LineCorrect)
	}
	return []byte(LineIncorrect)
}

// FormatTask renders "<v1> <op> <v2>\n". Float tasks use the shortest exact float representation.
func FormatTask(task arith.Task) []byte {
	if task.Operator.Class() == arith.FloatClass {
		return []byte(fmt.Sprintf("%s %c %s\n",
			strconv.FormatFloat(task.FltValue1, 'g', -1, 64),
			task.Operator.Symbol(),
			strconv.FormatFloat(task.FltValue2, 'g', -1, 64),
		))
	}
	return []byte(fmt.Sprintf("%d %c %d\n", task.IntValue1, task.Operator.Symbol(), task.IntValue2))
}

// ParseTask parses an integer task line as produced by FormatTask.
func ParseTask(line []byte) (arith.Task, error) {
	fields := strings.Fields(string(line))
	if len(fields) != 3 || len(fields[1]) != 1 {
		return arith.Task{}, ErrMalformedTask
	}
	var op arith.Operator
	switch fields[1][0] {
	case '+':
		op = arith.IntAdd
	case '-':
		op = arith.IntSubtract
	case '*':
		op = arith.IntMultiply
	case '/':
		op = arith.IntDivide
	default:
		return arith.Task{}, ErrMalformedTask
	}
	v1, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil {
		return arith.Task{}, fmt.Errorf("%w: %w", ErrMalformedTask, err)
	}
	v2, err := strconv.ParseInt(fields[2], 10, 32)
	if err != nil {
		return arith.Task{}, fmt.Errorf("%w: %w", ErrMalformedTask, err)
	}
	return arith.Task{Operator: op, IntValue1: int32(v1), IntValue2: int32(v2)}, nil
}

// ParseAnswer reads a decimal integer permissively: leading whitespace and an optional sign are
// accepted, parsing stops at the first non-digit, and input without digits yields 0.
// Values beyond the int64 range saturate.
func ParseAnswer(data []byte) int64 {
	i := 0
	for i < len(data) && isSpace(data[i]) {
		i++
	}
	negative := false
	if i < len(data) && (data[i] == '+' || data[i] == '-') {
		negative = data[i] == '-'
		i++
	}
	var value int64
	for ; i < len(data) && data[i] >= '0' && data[i] <= '9'; i++ {
		digit := int64(data[i] - '0')
		if value > (math.MaxInt64-digit)/10 {
			if negative {
				return math.MinInt64
			}
			return math.MaxInt64
		}
		value = value*10 + digit
	}
	if negative {
		return -value
	}
	return value
}

// AnswerMatches compares a permissive integer answer with an expected result of either class.
func AnswerMatches(answer int64, expected arith.Result) bool {
	switch expected.Class {
	case arith.IntClass:
		return answer == int64(expected.Int)
	case arith.FloatClass:
		return float64(answer) == expected.Float
	default:
		return false
	}
}

// IsText reports whether data is acceptable as a legacy text datagram:
// 1..MaxTextSize bytes of printable ASCII, space, tab, CR or LF.
func IsText(data []byte) bool {
	if len(data) == 0 || len(data) > MaxTextSize {
		return false
	}
	for _, b := range data {
		if b == '\t' || b == '\n' || b == '\r' {
			continue
		}
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
