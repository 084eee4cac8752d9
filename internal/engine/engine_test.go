package engine

import (
	"testing"

	"github.com/ayusman/kuchipudi-engine/internal/config"
	"github.com/ayusman/kuchipudi-engine/internal/sink"
)

// TestEvalBinding_GateAllRequiresAllComponentsTrue is spec.md §8 invariant
// 4: a binding with more than one component gate only acts while every
// component is true at the same tick, each tracking its own hysteresis and
// refractory state independently.
func TestEvalBinding_GateAllRequiresAllComponentsTrue(t *testing.T) {
	b := config.Binding{
		ID:         "left_click",
		Kind:       config.KindStateful,
		Primitive:  config.PrimitiveButton,
		ButtonID:   string(sink.MouseLeft),
		InputName:  "right_hand.gesture.closed",
		Op:         config.OpGreater,
		TriggerPct: 0.5,
		ReleasePct: 0.4,
		Gates: []config.Gate{
			{InputName: "right_hand.motion.up", Op: config.OpGreater, TriggerPct: 0.5, ReleasePct: 0.4},
			{InputName: "left_hand.gesture.closed", Op: config.OpLess, TriggerPct: 0.5, ReleasePct: 0.6},
		},
	}

	rb := &resolvedBinding{cfg: b}
	for i := range b.Gates {
		rb.gates = append(rb.gates, &resolvedGate{cfg: b.Gates[i]})
	}
	e := &Engine{bindings: []*resolvedBinding{rb}}

	rec := sink.NewRecordingSink()
	target := cursorTarget{}

	features := map[string]FeatureValue{
		"right_hand.gesture.closed": {Value: 0.9, Valid: true},
		"right_hand.motion.up":      {Value: 0.9, Valid: true}, // first component: true
		"left_hand.gesture.closed":  {Value: 0.9, Valid: true}, // second component: false (0.9 is not < 0.5)
	}
	e.evalBinding(rb, features, 0, &target, rec)
	if rec.AnyPressed() {
		t.Fatalf("expected no press while one gate component is false, got %+v", rec.Emissions())
	}

	features["left_hand.gesture.closed"] = FeatureValue{Value: 0.1, Valid: true} // second component now true
	e.evalBinding(rb, features, 10, &target, rec)
	if !rec.AnyPressed() {
		t.Errorf("expected a press once every gate component is true, got %+v", rec.Emissions())
	}
}
