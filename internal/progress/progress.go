// Package progress mirrors a raw progress input into bar state.
//
// Everything here is pure: handlers take the current field and bar state
// and return the next state. Rendering lives in the ui package.
package progress

import (
	"math"
	"strconv"
	"strings"
)

// Tier is one of the four colour bands a bar can be in.
type Tier int

const (
	Neutral Tier = iota
	Danger
	Warning
	Success
)

func (t Tier) String() string {
	switch t {
	case Danger:
		return "danger"
	case Warning:
		return "warning"
	case Success:
		return "success"
	default:
		return "neutral"
	}
}

// PreviewGroup bars follow every field regardless of the field's group.
const PreviewGroup = "preview"

// Field is the raw progress input for one logical group.
type Field struct {
	Group string
	Value string
}

// Bar is the visual state paired with a progress field.
type Bar struct {
	Group   string
	Percent int
	Label   string
	Tier    Tier
}

// Parse reads a leading integer from raw. Leading whitespace and a single
// sign are accepted, anything after the digits is ignored, and input with
// no digits yields 0. Values that do not fit in an int saturate.
func Parse(raw string) int {
	s := strings.TrimLeft(raw, " \t\r\n")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Only range errors are possible here.
		n = math.MaxInt
	}
	if neg {
		return -n
	}
	return n
}

// Clamp constrains n to [0, 100].
func Clamp(n int) int {
	return max(0, min(100, n))
}

// TierFor picks the colour band for an already clamped value.
func TierFor(n int) Tier {
	switch {
	case n <= 0:
		return Neutral
	case n < 30:
		return Danger
	case n < 70:
		return Warning
	default:
		return Success
	}
}

// Reflect clamps raw and reports whether the field text needs correcting.
func Reflect(raw string) (clamped int, corrected bool) {
	clamped = Clamp(Parse(raw))
	return clamped, raw != strconv.Itoa(clamped)
}

// BarFor builds the bar state for a clamped value.
func BarFor(group string, clamped int) Bar {
	return Bar{
		Group:   group,
		Percent: clamped,
		Label:   strconv.Itoa(clamped) + "%",
		Tier:    TierFor(clamped),
	}
}

// Apply runs one update cycle: the field is normalized in place when its
// text differs from the clamped value, and every bar in the field's group
// or in PreviewGroup is set to the clamped value. Bars from other groups
// are returned untouched. The input slice is not modified.
func Apply(field Field, bars []Bar) (Field, []Bar) {
	clamped, corrected := Reflect(field.Value)
	if corrected {
		field.Value = strconv.Itoa(clamped)
	}

	next := make([]Bar, len(bars))
	for i, bar := range bars {
		if bar.Group == field.Group || bar.Group == PreviewGroup {
			bar = BarFor(bar.Group, clamped)
		}
		next[i] = bar
	}
	return field, next
}

// Step moves raw by delta and returns the clamped text, the way a range
// slider bound to the field would.
func Step(raw string, delta int) string {
	return strconv.Itoa(Clamp(Clamp(Parse(raw)) + delta))
}
