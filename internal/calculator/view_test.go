package calculator

import (
	"testing"

	"calculadora/internal/display"
)

func TestRenderIdle(t *testing.T) {
	f := display.NewFormatter(display.BrazilianPortuguese)

	v := Render(press(t, "1", "2", "3", "4", ",", "5"), f)

	want := View{Display: "1.234,5", Raw: "1234.5", FontSize: "text-6xl"}
	if v != want {
		t.Fatalf("expected %+v, got %+v", want, v)
	}
}

func TestRenderPendingOperator(t *testing.T) {
	f := display.NewFormatter(display.BrazilianPortuguese)

	v := Render(press(t, "1", "2", "0", "0", "×"), f)
	if v.Expression != "1.200 ×" {
		t.Fatalf("expected expression %q, got %q", "1.200 ×", v.Expression)
	}
	if v.Active != "×" || v.Operator != "×" || !v.Waiting {
		t.Fatalf("expected active ×, got %+v", v)
	}

	v = Render(press(t, "1", "2", "0", "0", "×", "3"), f)
	if v.Active != "" {
		t.Fatalf("expected no active key once the operand is typed, got %q", v.Active)
	}
	if v.Expression != "1.200 ×" || v.Display != "3" {
		t.Fatalf("unexpected view %+v", v)
	}
}

func TestRenderAfterEqualsClearsExpression(t *testing.T) {
	f := display.NewFormatter(display.BrazilianPortuguese)

	v := Render(press(t, "9", "9", "9", "9", "9", "×", "9", "9", "9", "9", "9", "="), f)
	if v.Raw != "9999800001" {
		t.Fatalf("expected raw 9999800001, got %q", v.Raw)
	}
	if v.Display != "9.9998e+9" {
		t.Fatalf("expected exponent display, got %q", v.Display)
	}
	if v.FontSize != "text-4xl" {
		t.Fatalf("expected text-4xl, got %q", v.FontSize)
	}
	if v.Expression != "" || v.Operator != "" || v.Active != "" {
		t.Fatalf("expected no pending operator, got %+v", v)
	}
}
