package display

// FontSize is a display font-size tier, largest first.
type FontSize int

const (
	FontSizeLarge FontSize = iota
	FontSizeMedium
	FontSizeSmall
	FontSizeSmallest
)

// Class returns the stylesheet class the widget uses for the tier.
func (s FontSize) Class() string {
	switch s {
	case FontSizeMedium:
		return "text-5xl"
	case FontSizeSmall:
		return "text-4xl"
	case FontSizeSmallest:
		return "text-3xl"
	default:
		return "text-6xl"
	}
}

func (s FontSize) String() string {
	return s.Class()
}

// FontSizeFor picks the tier from the length of the raw, ungrouped display
// value.
func FontSizeFor(raw string) FontSize {
	switch n := len(raw); {
	case n > 12:
		return FontSizeSmallest
	case n > 9:
		return FontSizeSmall
	case n > 6:
		return FontSizeMedium
	default:
		return FontSizeLarge
	}
}
