package calculator

import "strings"

// Operator is a pending arithmetic operation. The zero value, OpNone, means
// no operation is pending.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// Symbol returns the operator as shown on the expression line.
func (op Operator) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

// String returns the operator's name as used in logs and metric attributes.
func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return "none"
	}
}

// Apply evaluates l op r with plain float64 semantics; division by zero
// yields ±Inf or NaN. OpNone returns r.
func (op Operator) Apply(l, r float64) float64 {
	switch op {
	case OpAdd:
		return l + r
	case OpSubtract:
		return l - r
	case OpMultiply:
		return l * r
	case OpDivide:
		return l / r
	default:
		return r
	}
}

// ParseOperator accepts an operator symbol, its ASCII stand-in or its name.
func ParseOperator(s string) (Operator, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "add":
		return OpAdd, true
	case "-", "−", "subtract":
		return OpSubtract, true
	case "×", "*", "x", "multiply":
		return OpMultiply, true
	case "÷", "/", "divide":
		return OpDivide, true
	default:
		return OpNone, false
	}
}
