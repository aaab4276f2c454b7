package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"calculadora/internal/calculator"
)

func TestPressPrintsFormattedDisplay(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "division", args: []string{"press", "7", "÷", "2", "="}, want: "3,5"},
		{name: "chain", args: []string{"press", "2", "+", "3", "+", "4", "="}, want: "9"},
		{name: "grouping", args: []string{"press", "1", "2", "3", "4", "5", "6", "7"}, want: "1.234.567"},
		{name: "ascii operators", args: []string{"press", "6", "*", "7", "="}, want: "42"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := Execute(tc.args, &out); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if got := strings.TrimSpace(out.String()); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestPressStepsPrintsEveryKey(t *testing.T) {
	var out bytes.Buffer
	if err := Execute([]string{"press", "--steps", "9", "×", "3", "="}, &out); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[1], "9 ×") {
		t.Fatalf("expected expression line on operator step, got %q", lines[1])
	}
	if !strings.HasSuffix(lines[3], "27") {
		t.Fatalf("expected final display 27, got %q", lines[3])
	}
}

func TestPressRejectsUnknownKey(t *testing.T) {
	var out bytes.Buffer
	err := Execute([]string{"press", "1", "^", "2"}, &out)
	if !errors.Is(err, calculator.ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
}
