package calculator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned for a key label that is not on the keypad.
var ErrUnknownKey = errors.New("unknown key")

// ErrTooManyKeys is returned for a batch longer than MaxKeysPerRequest.
var ErrTooManyKeys = errors.New("too many keys")

// MaxKeysPerRequest is the longest key batch a single request may carry.
const MaxKeysPerRequest = 256

// KeyKind groups keypad keys by the engine operation they trigger.
type KeyKind string

const (
	KindDigit    KeyKind = "digit"
	KindDecimal  KeyKind = "decimal"
	KindOperator KeyKind = "operator"
	KindEquals   KeyKind = "equals"
	KindPercent  KeyKind = "percent"
	KindSign     KeyKind = "sign"
	KindClear    KeyKind = "clear"
	KindDelete   KeyKind = "delete"
)

// Key is a parsed keypad key.
type Key struct {
	Label    string
	Kind     KeyKind
	Digit    rune
	Operator Operator
}

var namedKeys = map[string]KeyKind{
	".":         KindDecimal,
	",":         KindDecimal,
	"=":         KindEquals,
	"%":         KindPercent,
	"ac":        KindClear,
	"c":         KindClear,
	"clear":     KindClear,
	"+/−":       KindSign,
	"+/-":       KindSign,
	"±":         KindSign,
	"neg":       KindSign,
	"⌫":         KindDelete,
	"del":       KindDelete,
	"backspace": KindDelete,
}

// ParseKey maps a keypad label to a Key.
func ParseKey(label string) (Key, error) {
	norm := strings.ToLower(strings.TrimSpace(label))

	if len(norm) == 1 && norm[0] >= '0' && norm[0] <= '9' {
		return Key{Label: label, Kind: KindDigit, Digit: rune(norm[0])}, nil
	}
	if kind, ok := namedKeys[norm]; ok {
		return Key{Label: label, Kind: kind}, nil
	}
	if op, ok := ParseOperator(norm); ok {
		return Key{Label: label, Kind: KindOperator, Operator: op}, nil
	}

	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, label)
}

// ParseKeys parses every label, failing on the first unknown one.
func ParseKeys(labels []string) ([]Key, error) {
	keys := make([]Key, 0, len(labels))
	for i, label := range labels {
		key, err := ParseKey(label)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Press applies a single key to s.
func (s State) Press(k Key) State {
	switch k.Kind {
	case KindDigit:
		return s.InputDigit(k.Digit)
	case KindDecimal:
		return s.InputDecimal()
	case KindOperator:
		return s.PerformOperation(k.Operator)
	case KindEquals:
		return s.Calculate()
	case KindPercent:
		return s.InputPercent()
	case KindSign:
		return s.ToggleSign()
	case KindClear:
		return s.Clear()
	case KindDelete:
		return s.DeleteLast()
	default:
		return s
	}
}

// PressAll applies keys in order.
func (s State) PressAll(keys []Key) State {
	for _, k := range keys {
		s = s.Press(k)
	}
	return s
}
