package game

// Color identifies a side. White starts on rows 1-4 and moves toward row 10.
type Color int8

const (
	White Color = iota
	Black
)

func (c Color) Opponent() Color {
	return 1 - c
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "unknown"
	}
}

// ParseColor accepts "white"/"w" and "black"/"b".
func ParseColor(s string) (Color, bool) {
	switch s {
	case "white", "w", "White", "WHITE":
		return White, true
	case "black", "b", "Black", "BLACK":
		return Black, true
	}
	return White, false
}
