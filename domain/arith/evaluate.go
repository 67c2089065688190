package arith

// EvaluateInt applies an integer operator. Overflow wraps as 32-bit two's complement
// and division truncates toward zero.
func EvaluateInt(op Operator, v1, v2 int32) (int32, error) {
	switch op {
	case IntAdd:
		return v1 + v2, nil
	case IntSubtract:
		return v1 - v2, nil
	case IntMultiply:
		return v1 * v2, nil
	case IntDivide:
		if v2 == 0 {
			return 0, ErrDivisionByZero
		}
		return v1 / v2, nil
	default:
		return 0, ErrInvalidOperator
	}
}

// EvaluateFloat applies a float operator with IEEE-754 double semantics.
func EvaluateFloat(op Operator, v1, v2 float64) (float64, error) {
	switch op {
	case FloatAdd:
		return v1 + v2, nil
	case FloatSubtract:
		return v1 - v2, nil
	case FloatMultiply:
		return v1 * v2, nil
	case FloatDivide:
		if v2 == 0 {
			return 0, ErrDivisionByZero
		}
		return v1 / v2, nil
	default:
		return 0, ErrInvalidOperator
	}
}

// Evaluate dispatches on the operator class and evaluates the matching operand pair.
func Evaluate(op Operator, i1, i2 int32, f1, f2 float64) (Result, error) {
	switch op.Class() {
	case IntClass:
		v, err := EvaluateInt(op, i1, i2)
		if err != nil {
			return Result{}, err
		}
		return Result{Class: IntClass, Int: v}, nil
	case FloatClass:
		v, err := EvaluateFloat(op, f1, f2)
		if err != nil {
			return Result{}, err
		}
		return Result{Class: FloatClass, Float: v}, nil
	default:
		return Result{}, ErrInvalidOperator
	}
}
