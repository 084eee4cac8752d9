package engine

import "github.com/ayusman/kuchipudi-engine/internal/config"

// gateState is one gate's hysteresis FSM state, per spec.md §4.3.
type gateState struct {
	on               bool
	lastTransitionMs float64
	hasTransitioned  bool
	lostEntered      bool // tracks toggle-on-entry for lost_hand_policy=toggle
}

// evalGate advances a gate's state given its smoothed input and validity,
// returning the resulting boolean. Shared by plain gates (§4.3) and
// stateful-edge bindings, which mirror the same FSM against their own
// input (§4.4).
func evalGate(st *gateState, cfg config.Gate, v float64, valid bool, tMs float64) bool {
	if !valid {
		return applyLostPolicy(st, cfg.LostHandPolicy, tMs)
	}
	st.lostEntered = false

	triggered := false
	if st.on {
		released := false
		switch cfg.Op {
		case config.OpGreater:
			released = v <= cfg.ReleasePct
		case config.OpLess:
			released = v >= cfg.ReleasePct
		}
		if released && refractoryElapsed(st, cfg.RefractoryMs, tMs) {
			st.on = false
			markTransition(st, tMs)
		}
		return st.on
	}

	switch cfg.Op {
	case config.OpGreater:
		triggered = v > cfg.TriggerPct
	case config.OpLess:
		triggered = v < cfg.TriggerPct
	}
	if triggered && refractoryElapsed(st, cfg.RefractoryMs, tMs) {
		st.on = true
		markTransition(st, tMs)
	}
	return st.on
}

func refractoryElapsed(st *gateState, refractoryMs, tMs float64) bool {
	if !st.hasTransitioned {
		return true
	}
	return tMs-st.lastTransitionMs >= refractoryMs
}

func markTransition(st *gateState, tMs float64) {
	st.hasTransitioned = true
	st.lastTransitionMs = tMs
}

// applyLostPolicy resolves a gate's (or stateful binding's) boolean while
// its input feature is invalid, per spec.md §4.3's four policies.
func applyLostPolicy(st *gateState, policy config.LostHandPolicy, tMs float64) bool {
	switch policy {
	case config.PolicyHold:
		return st.on
	case config.PolicyTrue:
		st.on = true
		return true
	case config.PolicyToggle:
		if !st.lostEntered {
			st.on = !st.on
			st.lostEntered = true
		}
		return st.on
	case config.PolicyRelease:
		fallthrough
	default:
		st.on = false
		return false
	}
}

// gateAll is the logical AND of one or more component gate booleans,
// spec.md §4.3's gate_all: a composite is false if any component is false,
// with refractory/hysteresis tracked per component.
func gateAll(states []bool) bool {
	for _, s := range states {
		if !s {
			return false
		}
	}
	return true
}
