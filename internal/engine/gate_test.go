package engine

import (
	"testing"

	"github.com/ayusman/kuchipudi-engine/internal/config"
)

// TestGate_HysteresisOscillationInBand is SPEC_FULL §8 scenario S6: values
// inside the hysteresis band between release and trigger thresholds never
// cause a transition either way.
func TestGate_HysteresisOscillationInBand(t *testing.T) {
	cfg := config.Gate{
		InputName:  "right_hand.gesture.closed",
		Op:         config.OpGreater,
		TriggerPct: 0.8,
		ReleasePct: 0.6,
	}
	var st gateState

	seq := []struct {
		v          float64
		wantOn     bool
		wantChange bool
	}{
		{0.5, false, false},
		{0.85, true, true},
		{0.75, true, false},
		{0.65, true, false},
		{0.55, false, true},
		{0.7, false, false},
	}

	for i, step := range seq {
		before := st.on
		on := evalGate(&st, cfg, step.v, true, float64(i)*10)
		if on != step.wantOn {
			t.Errorf("sample %d (v=%.2f): on = %v, want %v", i+1, step.v, on, step.wantOn)
		}
		if changed := on != before; changed != step.wantChange {
			t.Errorf("sample %d (v=%.2f): transitioned = %v, want %v", i+1, step.v, changed, step.wantChange)
		}
	}
}

// TestGate_LostHandPolicies exercises all four lost-hand policies in
// isolation, independent of the literal S6 scenario above.
func TestGate_LostHandPolicies(t *testing.T) {
	base := config.Gate{InputName: "x", Op: config.OpGreater, TriggerPct: 0.5, ReleasePct: 0.4}

	t.Run("release", func(t *testing.T) {
		cfg := base
		cfg.LostHandPolicy = config.PolicyRelease
		var st gateState
		evalGate(&st, cfg, 0.9, true, 0)
		if on := evalGate(&st, cfg, 0, false, 10); on {
			t.Errorf("policy=release: on = true, want false")
		}
	})

	t.Run("hold", func(t *testing.T) {
		cfg := base
		cfg.LostHandPolicy = config.PolicyHold
		var st gateState
		evalGate(&st, cfg, 0.9, true, 0)
		if on := evalGate(&st, cfg, 0, false, 10); !on {
			t.Errorf("policy=hold: on = false, want true (held from before hand loss)")
		}
	})

	t.Run("true", func(t *testing.T) {
		cfg := base
		cfg.LostHandPolicy = config.PolicyTrue
		var st gateState
		if on := evalGate(&st, cfg, 0, false, 0); !on {
			t.Errorf("policy=true: on = false, want true")
		}
	})

	t.Run("toggle", func(t *testing.T) {
		cfg := base
		cfg.LostHandPolicy = config.PolicyToggle
		var st gateState
		beforeLoss := evalGate(&st, cfg, 0.1, true, 0)
		firstLost := evalGate(&st, cfg, 0, false, 10)
		if firstLost == beforeLoss {
			t.Errorf("policy=toggle: first lost frame did not flip state (stayed %v)", firstLost)
		}
		secondLost := evalGate(&st, cfg, 0, false, 20)
		if secondLost != firstLost {
			t.Errorf("policy=toggle: second consecutive lost frame changed state, want it to hold after entry")
		}
	})
}
