// Package calib implements the guided calibration acquisition state
// machine of spec.md §4.5: five ordered steps per target hand that sample
// live feature values and, on advance, write calibration parameters the
// engine consumes.
package calib

import "math"

// Point2D is a bare 2D sample, independent of the engine/detector packages
// so this file has no import cycle with them.
type Point2D struct{ X, Y float64 }

// PrincipalAxis returns the dominant-variance unit direction of a 2D point
// cloud via a closed-form 2x2 covariance eigen-decomposition. No library in
// the retrieval pack offers linear algebra (no gonum anywhere in any
// go.mod) and a 2x2 eigensolve has a three-line closed form, so this stays
// on stdlib math rather than reaching for an external dependency — see
// DESIGN.md.
func PrincipalAxis(points []Point2D) (axis Point2D, ok bool) {
	if len(points) < 2 {
		return Point2D{}, false
	}

	var meanX, meanY float64
	for _, p := range points {
		meanX += p.X
		meanY += p.Y
	}
	n := float64(len(points))
	meanX /= n
	meanY /= n

	var cxx, cxy, cyy float64
	for _, p := range points {
		dx, dy := p.X-meanX, p.Y-meanY
		cxx += dx * dx
		cxy += dx * dy
		cyy += dy * dy
	}
	cxx /= n
	cxy /= n
	cyy /= n

	trace := cxx + cyy
	det := cxx*cyy - cxy*cxy
	disc := trace*trace - 4*det
	if disc < 0 {
		disc = 0
	}
	sq := math.Sqrt(disc)
	lambda := (trace + sq) / 2 // largest eigenvalue

	var vx, vy float64
	if math.Abs(cxy) > 1e-12 {
		vx, vy = cxy, lambda-cxx
	} else if cxx >= cyy {
		vx, vy = 1, 0
	} else {
		vx, vy = 0, 1
	}

	norm := math.Hypot(vx, vy)
	if norm < 1e-12 {
		return Point2D{}, false
	}
	return Point2D{X: vx / norm, Y: vy / norm}, true
}

// Orthogonalize removes axis's component from raw and renormalizes, per
// spec.md §4.5 step 2 ("orthogonalize against step 1's axis").
func Orthogonalize(raw, axis Point2D) (Point2D, bool) {
	d := raw.X*axis.X + raw.Y*axis.Y
	ortho := Point2D{X: raw.X - d*axis.X, Y: raw.Y - d*axis.Y}
	norm := math.Hypot(ortho.X, ortho.Y)
	if norm < 1e-12 {
		// raw was parallel to axis; fall back to the perpendicular of axis.
		perp := Point2D{X: -axis.Y, Y: axis.X}
		return perp, true
	}
	return Point2D{X: ortho.X / norm, Y: ortho.Y / norm}, true
}

// ProjectionRange returns (min, max) of points projected onto axis, and
// their span — spec.md §4.5's range_norm ("full sweep... of samples along
// that axis").
func ProjectionRange(points []Point2D, axis Point2D) (min, max, span float64) {
	if len(points) == 0 {
		return 0, 0, 0
	}
	min, max = math.Inf(1), math.Inf(-1)
	for _, p := range points {
		proj := p.X*axis.X + p.Y*axis.Y
		if proj < min {
			min = proj
		}
		if proj > max {
			max = proj
		}
	}
	return min, max, max - min
}

// OrientUpward flips axis, if needed, so that moving up in the (top-left
// origin) camera frame — decreasing y — yields a positive projection, per
// spec.md §4.5 step 1's sign convention.
func OrientUpward(axis Point2D) Point2D {
	// "Up" is the direction (dx=0, dy=-1). We want axis·up > 0, i.e.
	// axis.Y < 0.
	if axis.Y > 0 {
		return Point2D{X: -axis.X, Y: -axis.Y}
	}
	return axis
}

// OrientLeftward flips axis, if needed, so that moving left — decreasing x
// — yields a positive projection, mirroring OrientUpward for the
// horizontal axis.
func OrientLeftward(axis Point2D) Point2D {
	if axis.X > 0 {
		return Point2D{X: -axis.X, Y: -axis.Y}
	}
	return axis
}

// Extremes returns the (min, max) of a 1D sample slice, for the
// closed-hand/click-range calibration steps (spec.md §4.5 steps 3-5).
func Extremes(samples []float64) (min, max float64, ok bool) {
	if len(samples) == 0 {
		return 0, 0, false
	}
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range samples {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, true
}
