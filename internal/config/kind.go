package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var keyKindRe = regexp.MustCompile(`^key\.(.+)$`)
var mouseClickRe = regexp.MustCompile(`^mouse\.click\.(left|right|middle)$`)

// ExpandKind resolves a binding's user-authored `kind:` string into the
// engine's internal Kind/Primitive/Axis/ButtonID tuple, per spec.md §3 and
// §6 ("the engine internally expands them" while the persisted file keeps
// the verbatim string).
func ExpandKind(raw string) (kind Kind, primitive Primitive, axis Axis, buttonID string, err error) {
	switch raw {
	case "mouse.move.x":
		return KindDelta, PrimitiveMoveRelative, AxisX, "", nil
	case "mouse.move.y":
		return KindDelta, PrimitiveMoveRelative, AxisY, "", nil
	case "mouse.scroll.x":
		return KindDelta, PrimitiveScroll, AxisX, "", nil
	case "mouse.scroll.y":
		return KindDelta, PrimitiveScroll, AxisY, "", nil
	case "mouse.pos.x":
		return KindAbsolute, PrimitiveSetPosition, AxisX, "", nil
	case "mouse.pos.y":
		return KindAbsolute, PrimitiveSetPosition, AxisY, "", nil
	}

	if m := mouseClickRe.FindStringSubmatch(raw); m != nil {
		return KindStateful, PrimitiveButton, "", "mouse_" + m[1], nil
	}
	if m := keyKindRe.FindStringSubmatch(raw); m != nil {
		return KindStateful, PrimitiveButton, "", "key:" + m[1], nil
	}

	return "", "", "", "", fmt.Errorf("config: unknown binding kind %q", raw)
}

// ParseSensitivity resolves the symbolic sensitivity values
// screen.width/screen.height (and their negations) against the current
// screen dimensions, or parses a plain signed number. Grounded on
// original_source/src/main.py's parse_sensitivity.
func ParseSensitivity(raw string, screenWidth, screenHeight int) (float64, error) {
	s := strings.TrimSpace(raw)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimPrefix(s, "-")
		s = strings.TrimSpace(s)
	}

	var v float64
	switch s {
	case "screen.width":
		v = float64(screenWidth)
	case "screen.height":
		v = float64(screenHeight)
	default:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("config: unparsable sensitivity %q: %w", raw, err)
		}
		v = n
	}

	if neg {
		v = -v
	}
	return v, nil
}
