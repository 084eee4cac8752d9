package config

import "fmt"

// ValidationError aggregates every config-invalid violation found during
// Validate, so all of them surface to the user at once rather than
// one-at-a-time (mirrors the teacher's internal/server/api handlers, which
// collect and report every invalid field in a create/update request rather
// than bailing on the first one).
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return "config invalid: " + e.Violations[0]
	}
	msg := fmt.Sprintf("config invalid: %d violations:", len(e.Violations))
	for _, v := range e.Violations {
		msg += "\n  - " + v
	}
	return msg
}

func (e *ValidationError) add(format string, args ...interface{}) {
	e.Violations = append(e.Violations, fmt.Sprintf(format, args...))
}

// Validate enforces spec.md §3's invariants: every referenced feature has a
// calibration entry, hysteresis inequalities hold, binding kinds resolve,
// and sensitivity strings parse. Returns nil if the config is valid.
func Validate(c *Config, screenWidth, screenHeight int) error {
	ve := &ValidationError{}

	referenced := map[string]bool{}
	if err := c.resolveKinds(ve); err != nil {
		return err
	}

	for i := range c.Outputs {
		b := &c.Outputs[i]
		referenced[b.InputName] = true
		for gi, g := range b.Gates {
			referenced[g.InputName] = true
			validateHysteresis(ve, fmt.Sprintf("output %q gate %d", b.ID, gi), g.Op, g.TriggerPct, g.ReleasePct)
		}

		switch b.Kind {
		case KindDelta:
			if b.SensitivityRaw != "" {
				v, err := ParseSensitivity(b.SensitivityRaw, screenWidth, screenHeight)
				if err != nil {
					ve.add("output %q: %v", b.ID, err)
				} else {
					b.Sensitivity = v
				}
			}
		case KindStateful:
			validateHysteresis(ve, fmt.Sprintf("output %q", b.ID), b.Op, b.TriggerPct, b.ReleasePct)
		}
	}

	for name := range referenced {
		if !c.hasCalibration(name) {
			ve.add("feature %q is referenced but has no calibration entry", name)
		}
	}

	if len(ve.Violations) > 0 {
		return ve
	}
	return nil
}

func (c *Config) resolveKinds(ve *ValidationError) error {
	for i := range c.Outputs {
		b := &c.Outputs[i]
		if b.Edge != nil {
			b.Kind = KindEdge
			b.Primitive = PrimitiveButton
			continue
		}
		kind, primitive, axis, buttonID, err := ExpandKind(b.RawKind)
		if err != nil {
			ve.add("output %q: %v", b.ID, err)
			continue
		}
		b.Kind, b.Primitive, b.Axis, b.ButtonID = kind, primitive, axis, buttonID
	}
	return nil
}

func validateHysteresis(ve *ValidationError, label string, op Op, trigger, release float64) {
	switch op {
	case OpGreater:
		if !(trigger > release) {
			ve.add("%s: op \">\" requires trigger_pct (%.3f) > release_pct (%.3f)", label, trigger, release)
		}
	case OpLess:
		if !(trigger < release) {
			ve.add("%s: op \"<\" requires trigger_pct (%.3f) < release_pct (%.3f)", label, trigger, release)
		}
	default:
		ve.add("%s: unknown op %q", label, op)
	}
}

func (c *Config) hasCalibration(name string) bool {
	if _, ok := c.Calibration.MotionAxes[name]; ok {
		return true
	}
	if _, ok := c.Calibration.Ranges[name]; ok {
		return true
	}
	// pos.x / pos.y share one quad keyed by the hand prefix.
	if quadKey, ok := quadKeyFor(name); ok {
		_, ok := c.Calibration.Quads[quadKey]
		return ok
	}
	return false
}

// quadKeyFor returns the shared quad calibration key for a *.pos.x/y
// feature name, e.g. "left_hand.pos.x" -> "left_hand.pos".
func quadKeyFor(featureName string) (string, bool) {
	const sx, sy = ".pos.x", ".pos.y"
	if len(featureName) > len(sx) && featureName[len(featureName)-len(sx):] == sx {
		return featureName[:len(featureName)-2], true
	}
	if len(featureName) > len(sy) && featureName[len(featureName)-len(sy):] == sy {
		return featureName[:len(featureName)-2], true
	}
	return "", false
}
