package engine

import (
	"math"

	"github.com/ayusman/kuchipudi-engine/internal/config"
	"github.com/ayusman/kuchipudi-engine/internal/sink"
)

// featureCategory maps a feature name to its smoothing category, per
// spec.md §2/§4.2: position (pos.*), movement (motion.*), curvature
// (curv.* and bend.*), gesture (gesture.* and everything else, including
// the cross-hand distance features, which track hand posture like
// gesture.closed does).
func featureCategory(name string) config.Category {
	switch {
	case contains(name, ".pos."):
		return config.CategoryPosition
	case contains(name, ".motion."):
		return config.CategoryMovement
	case contains(name, ".curv.") || contains(name, ".bend."):
		return config.CategoryCurvature
	default:
		return config.CategoryGesture
	}
}

func contains(s, sub string) bool {
	return len(sub) > 0 && indexOf(s, sub) >= 0
}

func indexOf(s, sub string) int {
	n, m := len(s), len(sub)
	if m > n {
		return -1
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == sub {
			return i
		}
	}
	return -1
}

// deltaState is a delta-axis binding's runtime state, spec.md §3's "Delta
// binding: last normalized input value (for differencing)."
type deltaState struct {
	hasPrev  bool
	prev     float64
	residual float64
}

// statefulState mirrors the gate FSM but belongs to a single stateful-edge
// binding, spec.md §3's "Stateful binding: boolean pressed, last transition
// timestamp."
type statefulState struct {
	gate gateState
}

// cursorTarget accumulates same-frame absolute-axis emissions so x and y
// coalesce into one set_position call, per spec.md §4.4: "the sink combines
// consecutive same-frame emissions into a single cursor placement; the
// last value within a frame wins for each axis."
type cursorTarget struct {
	hasX, hasY bool
	x, y       int
}

// evalDelta advances a delta-axis binding by one tick and emits through s
// if appropriate. Grounded on spec.md §4.4's delta-axis rules and
// SPEC_FULL §4.4.1's deadzone supplement.
func evalDelta(st *deltaState, b *config.Binding, v float64, valid bool, gateOpen bool, s sink.Sink) {
	effectiveV, effectiveValid := v, valid
	if !valid {
		switch b.LostHandPolicy {
		case config.PolicyZero:
			st.hasPrev = false
			st.residual = 0
			return
		case config.PolicyMin:
			effectiveV, effectiveValid = 0, true
		case config.PolicyMax:
			effectiveV, effectiveValid = 1, true
		case config.PolicyCenter:
			effectiveV, effectiveValid = 0.5, true
		case config.PolicyHold:
			if !st.hasPrev {
				return
			}
			effectiveV, effectiveValid = st.prev, true
		default:
			return
		}
	}
	if !effectiveValid {
		return
	}

	if !st.hasPrev {
		st.prev = effectiveV
		st.hasPrev = true
		return
	}

	delta := effectiveV - st.prev
	st.prev = effectiveV

	if !gateOpen {
		return
	}

	scaled := b.Sensitivity * delta
	if b.DeadzonePct > 0 && math.Abs(delta) < b.DeadzonePct {
		return
	}

	st.residual += scaled
	units := int(math.Trunc(st.residual))
	if units == 0 {
		return
	}
	st.residual -= float64(units)

	switch b.Primitive {
	case config.PrimitiveMoveRelative:
		if b.Axis == config.AxisX {
			s.MoveRelative(units, 0)
		} else {
			s.MoveRelative(0, units)
		}
	case config.PrimitiveScroll:
		if b.Axis == config.AxisX {
			s.Scroll(units, 0)
		} else {
			s.Scroll(0, units)
		}
	}
}

// evalAbsolute advances an absolute-axis binding, writing into the shared
// per-tick cursorTarget rather than emitting directly (spec.md §4.4's
// same-frame coalescing).
func evalAbsolute(target *cursorTarget, b *config.Binding, v float64, valid bool, gateOpen bool) {
	if !gateOpen {
		return
	}
	effectiveV, effectiveValid := resolveAbsoluteValue(b, v, valid)
	if !effectiveValid {
		return
	}

	v = clamp(effectiveV, 0, 1)
	pos := b.Min + v*(b.Max-b.Min)
	px := int(math.Round(pos))

	if b.Axis == config.AxisX {
		target.x, target.hasX = px, true
	} else {
		target.y, target.hasY = px, true
	}
}

func resolveAbsoluteValue(b *config.Binding, v float64, valid bool) (float64, bool) {
	if valid {
		return v, true
	}
	switch b.LostHandPolicy {
	case config.PolicyMin:
		return 0, true
	case config.PolicyMax:
		return 1, true
	case config.PolicyCenter:
		return 0.5, true
	default:
		// PolicyHold (the default) and any other policy: skip this axis,
		// leaving the engine's persistent committed position in place.
		return 0, false
	}
}

// evalStateful advances a stateful-edge binding (mouse.click.*, key.*),
// emitting button/edge primitives through s. Grounded on spec.md §4.4's
// gate-false-forces-release and hand-lost-policy rules.
func evalStateful(st *statefulState, b *config.Binding, v float64, valid bool, gateOpen bool, tMs float64, s sink.Sink) {
	wasPressed := st.gate.on

	if !gateOpen {
		if wasPressed {
			st.gate.on = false
			emitEdge(b, false, s)
		}
		return
	}

	cfg := config.Gate{
		InputName:      b.InputName,
		Op:             b.Op,
		TriggerPct:     b.TriggerPct,
		ReleasePct:     b.ReleasePct,
		RefractoryMs:   b.RefractoryMs,
		LostHandPolicy: b.LostHandPolicy,
	}
	nowPressed := evalGate(&st.gate, cfg, v, valid, tMs)

	if nowPressed != wasPressed {
		emitEdge(b, nowPressed, s)
	}
}

func emitEdge(b *config.Binding, down bool, s sink.Sink) {
	if b.Edge != nil {
		name := b.Edge.ReleaseName
		if down {
			name = b.Edge.TriggerName
		}
		s.Button(sink.ButtonID(name), down)
		return
	}
	s.Button(sink.ButtonID(b.ButtonID), down)
}
