package engine

import (
	"github.com/ayusman/kuchipudi-engine/internal/config"
	"github.com/ayusman/kuchipudi-engine/internal/sink"
)

// resolvedGate is a gate definition plus its runtime state, resolved once
// at construction per spec.md §9 ("resolution happens once at engine
// construction into direct handles; no runtime name lookup in the hot
// loop").
type resolvedGate struct {
	cfg   config.Gate
	state gateState
}

// resolvedBinding pairs a binding's config with its kind-specific runtime
// state. gates holds one resolvedGate per configured component; an empty
// slice means the binding is ungated.
type resolvedBinding struct {
	cfg   config.Binding
	gates []*resolvedGate
	delta deltaState
	stful statefulState
}

// Engine is the runtime evaluation engine of spec.md §2: a pure function
// of (state, inputs, t) once constructed. It owns no goroutines and never
// blocks; Tick is called once per capture-loop iteration.
type Engine struct {
	smoothing config.Smoothing
	calib     config.Calibration
	smoother  *smoother
	gates     []*resolvedGate
	bindings  []*resolvedBinding

	cursor cursorTarget // persists across ticks: last committed position
}

// New constructs an Engine from a validated config. Every gate/output's
// input-feature reference is resolved up front; each gate entry of each
// binding gets its own resolvedGate, so two bindings that declare the same
// gate keep separate gate state.
func New(cfg *config.Config) *Engine {
	e := &Engine{
		smoothing: cfg.Smoothing,
		calib:     cfg.Calibration,
		smoother:  newSmoother(),
	}

	for i := range cfg.Outputs {
		b := &cfg.Outputs[i]
		rb := &resolvedBinding{cfg: *b}
		for j := range b.Gates {
			rg := &resolvedGate{cfg: b.Gates[j]}
			e.gates = append(e.gates, rg)
			rb.gates = append(rb.gates, rg)
		}
		e.bindings = append(e.bindings, rb)
	}

	return e
}

// Tick advances the engine by one frame: extract → smooth → gate →
// evaluate outputs → emit, per spec.md §2 and §5's ordering guarantee.
func (e *Engine) Tick(frame LandmarkFrame, s sink.Sink) {
	raw := computeFeatures(frame, e.calib)
	smoothed := e.smoothFeatures(raw, frame.TimestampMs)

	target := cursorTarget{}

	for _, b := range e.bindings {
		e.evalBinding(b, smoothed, frame.TimestampMs, &target, s)
	}

	e.commitCursor(target, s)
}

func (e *Engine) smoothFeatures(raw map[string]FeatureValue, tMs float64) map[string]FeatureValue {
	out := make(map[string]FeatureValue, len(raw))
	for name, fv := range raw {
		if !fv.Valid {
			out[name] = fv
			continue
		}
		tau := e.smoothing.TauMs(featureCategory(name))
		v := e.smoother.apply(name, fv.Value, tMs, tau)
		out[name] = FeatureValue{Value: v, Valid: true}
	}
	return out
}

// evalBinding ANDs every one of the binding's component gates (spec.md §2
// step 4, §4.3's gate_all) before evaluating the binding's own output
// logic; each component's hysteresis and refractory state is tracked
// independently via its own resolvedGate.
func (e *Engine) evalBinding(b *resolvedBinding, features map[string]FeatureValue, tMs float64, target *cursorTarget, s sink.Sink) {
	gateOpen := true
	if len(b.gates) > 0 {
		states := make([]bool, len(b.gates))
		for i, rg := range b.gates {
			gv, gvalid := lookup(features, rg.cfg.InputName)
			states[i] = evalGate(&rg.state, rg.cfg, gv, gvalid, tMs)
		}
		gateOpen = gateAll(states)
	}

	fv, valid := lookup(features, b.cfg.InputName)

	switch b.cfg.Kind {
	case config.KindDelta:
		evalDelta(&b.delta, &b.cfg, fv, valid, gateOpen, s)
	case config.KindAbsolute:
		evalAbsolute(target, &b.cfg, fv, valid, gateOpen)
	case config.KindStateful, config.KindEdge:
		evalStateful(&b.stful, &b.cfg, fv, valid, gateOpen, tMs, s)
	}
}

func lookup(features map[string]FeatureValue, name string) (float64, bool) {
	fv, ok := features[name]
	if !ok {
		return 0, false
	}
	return fv.Value, fv.Valid
}

// commitCursor merges this tick's absolute-axis updates into the engine's
// persistent committed position and, if anything changed, emits exactly
// one set_position call — spec.md §4.4's "last value within a frame wins
// for each axis" plus the engine's own cross-tick hold semantics.
func (e *Engine) commitCursor(target cursorTarget, s sink.Sink) {
	if !target.hasX && !target.hasY {
		return
	}
	if target.hasX {
		e.cursor.x, e.cursor.hasX = target.x, true
	}
	if target.hasY {
		e.cursor.y, e.cursor.hasY = target.y, true
	}
	if e.cursor.hasX && e.cursor.hasY {
		s.SetPosition(e.cursor.x, e.cursor.y)
	}
}

// ReleaseAll forces every stateful/edge binding currently pressed to emit
// its release primitive, per spec.md §5's shutdown guarantee ("releasing
// any pressed stateful outputs to avoid leaving buttons down").
func (e *Engine) ReleaseAll(s sink.Sink) {
	for _, b := range e.bindings {
		if b.cfg.Kind != config.KindStateful && b.cfg.Kind != config.KindEdge {
			continue
		}
		if b.stful.gate.on {
			b.stful.gate.on = false
			emitEdge(&b.cfg, false, s)
		}
	}
}
