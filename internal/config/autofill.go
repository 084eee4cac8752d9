package config

import "strings"

// DefaultSmoothing is spec.md §6's autofill default per category.
func DefaultSmoothing() Smoothing {
	return Smoothing{PositionMs: 120, MovementMs: 120, CurvatureMs: 80, GestureMs: 80}
}

// Autofill fills in every missing value a loaded config is allowed to omit,
// per spec.md §6 and original_source/src/config/loader.py's ensure_defaults:
// smoothing time constants, per-feature calibration blocks for every
// feature actually referenced by a gate or output, and kind-specific
// binding defaults. screenWidth/screenHeight resolve the absolute-axis
// min/max defaults ("screen edges") the same way ParseSensitivity resolves
// a delta binding's symbolic sensitivity.
func Autofill(c *Config, screenWidth, screenHeight int) {
	if c.Smoothing == (Smoothing{}) {
		c.Smoothing = DefaultSmoothing()
	}
	if c.Calibration.MotionAxes == nil {
		c.Calibration.MotionAxes = map[string]MotionAxis{}
	}
	if c.Calibration.Quads == nil {
		c.Calibration.Quads = map[string]Quad{}
	}
	if c.Calibration.Ranges == nil {
		c.Calibration.Ranges = map[string]Range{}
	}

	referenced := map[string]bool{}
	for i := range c.Outputs {
		b := &c.Outputs[i]
		autofillBinding(b, screenWidth, screenHeight)
		referenced[b.InputName] = true
		for j := range b.Gates {
			g := &b.Gates[j]
			*g = mergeGateDefaults(*g)
			referenced[g.InputName] = true
		}
	}

	for name := range referenced {
		autofillCalibration(c, name)
	}
}

func mergeGateDefaults(g Gate) Gate {
	d := DefaultGate(g.InputName)
	if g.Op == "" {
		g.Op = d.Op
	}
	if g.TriggerPct == 0 {
		g.TriggerPct = d.TriggerPct
	}
	if g.ReleasePct == 0 {
		g.ReleasePct = d.ReleasePct
	}
	if g.RefractoryMs == 0 {
		g.RefractoryMs = d.RefractoryMs
	}
	if g.LostHandPolicy == "" {
		g.LostHandPolicy = d.LostHandPolicy
	}
	return g
}

func autofillBinding(b *Binding, screenWidth, screenHeight int) {
	if b.Edge == nil {
		kind, primitive, axis, buttonID, err := ExpandKind(b.RawKind)
		if err == nil {
			b.Kind, b.Primitive, b.Axis, b.ButtonID = kind, primitive, axis, buttonID
		}
	} else {
		b.Kind = KindEdge
		b.Primitive = PrimitiveButton
	}

	switch b.Kind {
	case KindStateful, KindEdge:
		if b.Op == "" {
			b.Op = OpGreater
		}
		if b.TriggerPct == 0 {
			b.TriggerPct = 0.80
		}
		if b.ReleasePct == 0 {
			b.ReleasePct = 0.60
		}
		if b.RefractoryMs == 0 {
			b.RefractoryMs = 250
		}
		if b.LostHandPolicy == "" {
			b.LostHandPolicy = PolicyRelease
		}
	case KindDelta:
		if b.SensitivityRaw == "" {
			if b.Primitive == PrimitiveScroll {
				b.SensitivityRaw = "120"
			} else if b.Axis == AxisX {
				b.SensitivityRaw = "screen.width"
			} else {
				b.SensitivityRaw = "screen.height"
			}
		}
		if b.LostHandPolicy == "" {
			b.LostHandPolicy = PolicyZero
		}
	case KindAbsolute:
		if b.LostHandPolicy == "" {
			b.LostHandPolicy = PolicyHold
		}
		// Min/Max default to screen edges, spec.md §6's "absolute axes:
		// min/max = screen edges" — resolved here against the live screen
		// size, mirroring ParseSensitivity's symbolic substitution.
		if b.Min == 0 && b.Max == 0 {
			b.Min = 0
			if b.Axis == AxisX {
				b.Max = float64(screenWidth)
			} else {
				b.Max = float64(screenHeight)
			}
		}
	}
}

// autofillCalibration writes a default calibration block for a referenced
// feature missing one, per spec.md §6's default table.
func autofillCalibration(c *Config, name string) {
	if quadKey, ok := quadKeyFor(name); ok {
		if _, exists := c.Calibration.Quads[quadKey]; !exists {
			c.Calibration.Quads[quadKey] = ViewportQuad()
		}
		return
	}
	if strings.Contains(name, ".motion.") {
		if _, exists := c.Calibration.MotionAxes[name]; !exists {
			if strings.HasSuffix(name, ".up") {
				c.Calibration.MotionAxes[name] = MotionAxis{AxisX: 0, AxisY: -1, RangeNorm: 0.20}
			} else {
				c.Calibration.MotionAxes[name] = MotionAxis{AxisX: 1, AxisY: 0, RangeNorm: 0.20}
			}
		}
		return
	}

	if _, exists := c.Calibration.Ranges[name]; exists {
		return
	}
	switch {
	case strings.HasSuffix(name, ".gesture.closed"):
		c.Calibration.Ranges[name] = Range{Min: 0.30, Max: 0.95}
	case strings.Contains(name, ".curv.diff."):
		c.Calibration.Ranges[name] = Range{Min: -0.20, Max: 0.50}
	case strings.Contains(name, ".curv.rel."):
		c.Calibration.Ranges[name] = Range{Min: -0.20, Max: 0.50}
	case name == "hands.distance" || strings.HasPrefix(name, "hands.fingertip_distance."):
		c.Calibration.Ranges[name] = Range{Min: 0.10, Max: 0.80}
	case strings.Contains(name, ".bend."):
		c.Calibration.Ranges[name] = Range{Min: 0, Max: 3.14}
	default:
		c.Calibration.Ranges[name] = Range{Min: 0, Max: 1}
	}
}
