package calib

import (
	"fmt"

	"github.com/ayusman/kuchipudi-engine/internal/config"
	"github.com/ayusman/kuchipudi-engine/internal/detector"
	"github.com/ayusman/kuchipudi-engine/internal/engine"
)

// Step names the five ordered acquisition steps of spec.md §4.5.
type Step int

const (
	StepVerticalAxis Step = iota
	StepHorizontalAxis
	StepClosedRange
	StepLeftClickRange
	StepRightClickRange
	stepDone
)

func (s Step) String() string {
	switch s {
	case StepVerticalAxis:
		return "vertical_axis"
	case StepHorizontalAxis:
		return "horizontal_axis"
	case StepClosedRange:
		return "closed_range"
	case StepLeftClickRange:
		return "left_click_range"
	case StepRightClickRange:
		return "right_click_range"
	default:
		return "done"
	}
}

// Session drives one target hand through the five steps, accumulating
// samples for the active step and writing calibration parameters into the
// supplied config.Calibration on Advance.
type Session struct {
	hand        engine.HandSide
	step        Step
	points      []Point2D // steps 1-2
	scalars     []float64 // steps 3-5
	verticalRaw Point2D   // not written by Advance; step 2 orthogonalizes against verticalFit
	verticalFit Point2D   // step 1's upward-oriented axis, step 2's orthogonalization input
}

func NewSession(hand engine.HandSide) *Session {
	return &Session{hand: hand, step: StepVerticalAxis}
}

func (s *Session) Step() Step { return s.step }

// Sample feeds one frame's landmarks for the session's target hand into the
// active step's sample buffer. Frames for the other hand, or with the
// target hand absent, are ignored.
func (s *Session) Sample(h detector.HandLandmarks, side engine.HandSide) {
	if side != s.hand || s.step == stepDone {
		return
	}
	switch s.step {
	case StepVerticalAxis, StepHorizontalAxis:
		x, y := engine.PalmCenterXY(h)
		s.points = append(s.points, Point2D{X: x, Y: y})
	case StepClosedRange:
		s.scalars = append(s.scalars, engine.RawGestureClosed(h))
	case StepLeftClickRange:
		s.scalars = append(s.scalars, engine.RawCurvDiffIndexMinusMiddle(h))
	case StepRightClickRange:
		s.scalars = append(s.scalars, engine.RawCurvDiffMiddleMinusAvgIndexRing(h))
	}
}

// Cancel discards the active step's pending samples, keeping prior
// calibration untouched — spec.md §4.5's "cancellation before completion
// discards that step's pending values."
func (s *Session) Cancel() {
	s.points = nil
	s.scalars = nil
}

// Advance fits and commits the active step's calibration parameters into
// calib, then moves to the next step. Returns an error (without advancing)
// if the active step has insufficient samples.
func (s *Session) Advance(calib *config.Calibration) error {
	prefix := string(s.hand) + "_hand"

	switch s.step {
	case StepVerticalAxis:
		axis, ok := PrincipalAxis(s.points)
		if !ok {
			return fmt.Errorf("calib: vertical axis: not enough samples")
		}
		axis = OrientUpward(axis)
		_, _, span := ProjectionRange(s.points, axis)
		calib.MotionAxes[prefix+".motion.up"] = config.MotionAxis{AxisX: axis.X, AxisY: axis.Y, RangeNorm: span}
		s.verticalFit = axis

	case StepHorizontalAxis:
		raw, ok := PrincipalAxis(s.points)
		if !ok {
			return fmt.Errorf("calib: horizontal axis: not enough samples")
		}
		ortho, ok := Orthogonalize(raw, s.verticalFit)
		if !ok {
			return fmt.Errorf("calib: horizontal axis: degenerate orthogonalization")
		}
		ortho = OrientLeftward(ortho)
		_, _, span := ProjectionRange(s.points, ortho)
		calib.MotionAxes[prefix+".motion.left"] = config.MotionAxis{AxisX: ortho.X, AxisY: ortho.Y, RangeNorm: span}

	case StepClosedRange:
		min, max, ok := Extremes(s.scalars)
		if !ok {
			return fmt.Errorf("calib: closed range: not enough samples")
		}
		calib.Ranges[prefix+".gesture.closed"] = config.Range{Min: min, Max: max}

	case StepLeftClickRange:
		min, max, ok := Extremes(s.scalars)
		if !ok {
			return fmt.Errorf("calib: left-click range: not enough samples")
		}
		calib.Ranges[prefix+".curv.diff.index_minus_middle"] = config.Range{Min: min, Max: max}

	case StepRightClickRange:
		min, max, ok := Extremes(s.scalars)
		if !ok {
			return fmt.Errorf("calib: right-click range: not enough samples")
		}
		calib.Ranges[prefix+".curv.diff.middle_minus_avg_index_ring"] = config.Range{Min: min, Max: max}

	case stepDone:
		return fmt.Errorf("calib: session already complete")
	}

	s.points = nil
	s.scalars = nil
	s.step++
	return nil
}

// Done reports whether every step has been committed.
func (s *Session) Done() bool { return s.step == stepDone }
