package arith

import "fmt"

// Task is an issued arithmetic problem. Only the operand pair matching Operator's class is meaningful.
type Task struct {
	Operator  Operator
	IntValue1 int32
	IntValue2 int32
	FltValue1 float64
	FltValue2 float64
}

// Result holds an evaluated answer for either class.
type Result struct {
	Class Class
	Int   int32
	Float float64
}

// Expected evaluates the task.
func (t Task) Expected() (Result, error) {
	return Evaluate(t.Operator, t.IntValue1, t.IntValue2, t.FltValue1, t.FltValue2)
}

func (t Task) String() string {
	if t.Operator.Class() == FloatClass {
		return fmt.Sprintf("%g %c %g", t.FltValue1, t.Operator.Symbol(), t.FltValue2)
	}
	return fmt.Sprintf("%d %c %d", t.IntValue1, t.Operator.Symbol(), t.IntValue2)
}
