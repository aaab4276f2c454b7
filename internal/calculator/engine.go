package calculator

import (
	"strings"

	"calculadora/internal/numeric"
)

// DefaultDisplay is the display value of a fresh or cleared calculator.
const DefaultDisplay = "0"

// State is everything the calculator remembers between key presses.
//
// Transitions are value methods that return the next state, so a State can be
// copied, compared and replayed freely.
type State struct {
	// Display is the raw text-encoded number being shown. Never empty.
	Display string `json:"display"`
	// Previous is the left operand of the pending operation, or "" when
	// Operator is OpNone.
	Previous string `json:"previous,omitempty"`
	// Operator is the pending operation.
	Operator Operator `json:"-"`
	// Waiting is set when the next digit starts a new number.
	Waiting bool `json:"waiting"`
}

// NewState returns the default state.
func NewState() State {
	return State{Display: DefaultDisplay}
}

// Pending reports whether an operation is waiting for its right operand.
func (s State) Pending() bool {
	return s.Operator != OpNone
}

// Consistent reports whether the operator and left operand are either both
// set or both unset, and the display is non-empty.
func (s State) Consistent() bool {
	return s.Display != "" && (s.Previous == "") == (s.Operator == OpNone)
}

// InputDigit enters d, which must be '0' through '9'.
func (s State) InputDigit(d rune) State {
	if s.Waiting {
		s.Display = string(d)
		s.Waiting = false
		return s
	}

	if s.Display == "0" {
		s.Display = string(d)
	} else {
		s.Display += string(d)
	}
	return s
}

// InputDecimal starts the fraction part. It does nothing if the display
// already has a decimal point.
func (s State) InputDecimal() State {
	if s.Waiting {
		s.Display = "0."
		s.Waiting = false
		return s
	}

	if !strings.Contains(s.Display, ".") {
		s.Display += "."
	}
	return s
}

// Clear returns the default state.
func (s State) Clear() State {
	return NewState()
}

// DeleteLast removes the last character of the display. A display that would
// become empty or a bare minus sign becomes "0".
func (s State) DeleteLast() State {
	n := len(s.Display)
	if n <= 1 || (n == 2 && strings.HasPrefix(s.Display, "-")) {
		s.Display = DefaultDisplay
		return s
	}

	s.Display = s.Display[:n-1]
	return s
}

// ToggleSign adds or removes a leading minus sign.
func (s State) ToggleSign() State {
	if rest, ok := strings.CutPrefix(s.Display, "-"); ok {
		s.Display = rest
	} else {
		s.Display = "-" + s.Display
	}
	return s
}

// InputPercent divides the display by 100. The result is not rounded.
func (s State) InputPercent() State {
	s.Display = numeric.Format(numeric.Parse(s.Display) / 100)
	return s
}

// PerformOperation selects next as the pending operator. If an operator is
// already pending it is first evaluated against the display, and the result
// becomes both the display and the new left operand. Pressing an operator
// again before entering a digit therefore evaluates the running total.
// OpNone is ignored.
func (s State) PerformOperation(next Operator) State {
	if next == OpNone {
		return s
	}

	switch {
	case s.Previous == "":
		s.Previous = s.Display
	case s.Operator != OpNone:
		result := evaluate(s.Operator, s.Previous, s.Display)
		s.Display = result
		s.Previous = result
	}

	s.Waiting = true
	s.Operator = next
	return s
}

// Calculate evaluates the pending operation. It does nothing if no operator
// is pending.
func (s State) Calculate() State {
	if s.Operator == OpNone || s.Previous == "" {
		return s
	}

	s.Display = evaluate(s.Operator, s.Previous, s.Display)
	s.Previous = ""
	s.Operator = OpNone
	s.Waiting = true
	return s
}

// evaluate applies op to the two text operands and encodes the result rounded
// to numeric.ResultPrecision decimals.
func evaluate(op Operator, left, right string) string {
	result := op.Apply(numeric.Parse(left), numeric.Parse(right))
	return numeric.Format(numeric.Round(result))
}
