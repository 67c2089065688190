package arith

// Operator identifies an arithmetic operation together with the operand class it applies to.
// The numeric values are part of the binary wire format.
type Operator uint32

const (
	UnknownOperator Operator = iota
	IntAdd
	IntSubtract
	IntMultiply
	IntDivide
	FloatAdd
	FloatSubtract
	FloatMultiply
	FloatDivide
)

// Class groups operators by the type of their operands.
type Class int

const (
	// AnyClass lets the generator pick the class.
	AnyClass Class = iota
	IntClass
	FloatClass
)

func (o Operator) Valid() bool {
	return o >= IntAdd && o <= FloatDivide
}

func (o Operator) Class() Class {
	switch {
	case o >= IntAdd && o <= IntDivide:
		return IntClass
	case o >= FloatAdd && o <= FloatDivide:
		return FloatClass
	default:
		return AnyClass
	}
}

func (o Operator) IsDivide() bool {
	return o == IntDivide || o == FloatDivide
}

// Symbol returns the text protocol symbol, or '?' for an invalid operator.
func (o Operator) Symbol() byte {
	switch o {
	case IntAdd, FloatAdd:
		return '+'
	case IntSubtract, FloatSubtract:
		return '-'
	case IntMultiply, FloatMultiply:
		return '*'
	case IntDivide, FloatDivide:
		return '/'
	default:
		return '?'
	}
}

func (o Operator) String() string {
	switch o.Class() {
	case IntClass:
		return "int" + string(o.Symbol())
	case FloatClass:
		return "float" + string(o.Symbol())
	default:
		return "unknown"
	}
}

func (c Class) String() string {
	switch c {
	case IntClass:
		return "int"
	case FloatClass:
		return "float"
	default:
		return "any"
	}
}
