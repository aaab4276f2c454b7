package calculator

import "calculadora/internal/display"

// Formatter renders raw display values.
type Formatter interface {
	Format(value string) string
}

// View is what the widget draws for a State.
type View struct {
	// Display is the formatted main display.
	Display string `json:"display"`
	// Raw is the unformatted display value.
	Raw string `json:"raw"`
	// Expression is the line above the display, e.g. "1.200 ×".
	Expression string `json:"expression"`
	// Operator is the pending operator symbol, empty when idle.
	Operator string `json:"operator,omitempty"`
	// Active is the symbol of the highlighted operator key, if any.
	Active string `json:"active,omitempty"`
	// FontSize is the stylesheet class for the main display.
	FontSize string `json:"font_size"`
	Waiting  bool   `json:"waiting"`
}

// Render builds the View for s.
func Render(s State, f Formatter) View {
	v := View{
		Display:  f.Format(s.Display),
		Raw:      s.Display,
		Operator: s.Operator.Symbol(),
		FontSize: display.FontSizeFor(s.Display).Class(),
		Waiting:  s.Waiting,
	}

	if s.Pending() && s.Previous != "" {
		v.Expression = f.Format(s.Previous) + " " + s.Operator.Symbol()
	}
	if s.Pending() && s.Waiting {
		v.Active = s.Operator.Symbol()
	}
	return v
}
