package ui

import (
	"image"
	"math"
	"strconv"

	"wavefloat/internal/core"
)

// HelpLines describes the viewer key bindings.
var HelpLines = []string{
	"Q/W  wave NW/NE",
	"A/S  wave SW/SE",
	"Space pause  N step",
	"R reset  H panel",
	"Esc quit",
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	textLine       = 16
	controlsTop    = panelPadding + headerBaseline + 14
)

type controlLayout struct {
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// layoutControls stacks n rows of -/+ buttons right-aligned in a panel of the given width.
func layoutControls(n, width int) []controlLayout {
	if n <= 0 || width <= 0 {
		return nil
	}
	out := make([]controlLayout, n)
	for i := range out {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		out[i] = controlLayout{top: top, minusRect: minus, plusRect: plus}
	}
	return out
}

// stepValue returns the value one step away from current in direction,
// clamped to the control bounds. ok is false when the value would not change.
func stepValue(ctrl core.ParameterControl, current float64, direction int) (float64, bool) {
	if direction == 0 {
		return current, false
	}
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	target := ctrl.Clamp(current + float64(direction)*step)
	if math.Abs(target-current) < 1e-9 {
		return current, false
	}
	return target, true
}

func formatFloat(step, value float64) string {
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
