package calib

import (
	"testing"

	"github.com/ayusman/kuchipudi-engine/internal/config"
	"github.com/ayusman/kuchipudi-engine/internal/detector"
	"github.com/ayusman/kuchipudi-engine/internal/engine"
)

func palmAt(x, y float64) detector.HandLandmarks {
	h := detector.HandLandmarks{Handedness: "Right"}
	h.Points[detector.Wrist] = detector.Point3D{X: x, Y: y}
	h.Points[detector.IndexMCP] = detector.Point3D{X: x, Y: y}
	h.Points[detector.MiddleMCP] = detector.Point3D{X: x, Y: y}
	h.Points[detector.RingMCP] = detector.Point3D{X: x, Y: y}
	h.Points[detector.PinkyMCP] = detector.Point3D{X: x, Y: y}
	return h
}

func TestSession_VerticalAxis(t *testing.T) {
	s := NewSession(engine.RightHand)
	if s.Step() != StepVerticalAxis {
		t.Fatalf("expected initial step to be StepVerticalAxis, got %v", s.Step())
	}

	for _, y := range []float64{0.8, 0.6, 0.4, 0.2} {
		s.Sample(palmAt(0.5, y), engine.RightHand)
	}

	calib := config.NewCalibration()
	if err := s.Advance(&calib); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if s.Step() != StepHorizontalAxis {
		t.Fatalf("expected step to advance to StepHorizontalAxis, got %v", s.Step())
	}

	axis, ok := calib.MotionAxes["right_hand.motion.up"]
	if !ok {
		t.Fatalf("expected right_hand.motion.up to be populated")
	}
	if axis.AxisY >= 0 {
		t.Errorf("expected an upward-oriented axis (negative Y), got %+v", axis)
	}
}

func TestSession_IgnoresOtherHand(t *testing.T) {
	s := NewSession(engine.RightHand)
	s.Sample(palmAt(0.5, 0.5), engine.LeftHand)

	calib := config.NewCalibration()
	if err := s.Advance(&calib); err == nil {
		t.Errorf("expected Advance to fail with no samples for the target hand")
	}
}

func TestSession_Cancel(t *testing.T) {
	s := NewSession(engine.LeftHand)
	s.Sample(palmAt(0.5, 0.5), engine.LeftHand)
	s.Cancel()

	calib := config.NewCalibration()
	if err := s.Advance(&calib); err == nil {
		t.Errorf("expected Advance to fail after Cancel discarded samples")
	}
	if s.Step() != StepVerticalAxis {
		t.Errorf("Cancel must not change the current step")
	}
}

func TestSession_FullSequence(t *testing.T) {
	s := NewSession(engine.LeftHand)
	calib := config.NewCalibration()

	steps := []struct {
		step   Step
		sample func()
	}{
		{StepVerticalAxis, func() {
			for _, y := range []float64{0.8, 0.6, 0.4, 0.2} {
				s.Sample(palmAt(0.5, y), engine.LeftHand)
			}
		}},
		{StepHorizontalAxis, func() {
			for _, x := range []float64{0.2, 0.4, 0.6, 0.8} {
				s.Sample(palmAt(x, 0.5), engine.LeftHand)
			}
		}},
		{StepClosedRange, func() {
			for _, v := range []float64{0.1, 0.9} {
				h := palmAt(0.5, 0.5)
				h.Points[detector.IndexTip] = detector.Point3D{X: v, Y: v}
				s.Sample(h, engine.LeftHand)
			}
		}},
		{StepLeftClickRange, func() {
			for _, v := range []float64{0.1, 0.9} {
				h := palmAt(0.5, 0.5)
				h.Points[detector.IndexTip] = detector.Point3D{X: v, Y: v}
				s.Sample(h, engine.LeftHand)
			}
		}},
		{StepRightClickRange, func() {
			for _, v := range []float64{0.1, 0.9} {
				h := palmAt(0.5, 0.5)
				h.Points[detector.IndexTip] = detector.Point3D{X: v, Y: v}
				s.Sample(h, engine.LeftHand)
			}
		}},
	}

	for _, st := range steps {
		if s.Step() != st.step {
			t.Fatalf("expected step %v, got %v", st.step, s.Step())
		}
		st.sample()
		if err := s.Advance(&calib); err != nil {
			t.Fatalf("Advance at step %v failed: %v", st.step, err)
		}
	}

	if !s.Done() {
		t.Errorf("expected session to be done after all five steps")
	}
	for _, key := range []string{"left_hand.gesture.closed", "left_hand.curv.diff.index_minus_middle", "left_hand.curv.diff.middle_minus_avg_index_ring"} {
		if _, ok := calib.Ranges[key]; !ok {
			t.Errorf("expected calibration range %q to be populated", key)
		}
	}
}
