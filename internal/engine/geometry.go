package engine

import (
	"math"

	"github.com/ayusman/kuchipudi-engine/internal/detector"
)

// point is a bare 2D camera-normalized point; the engine works in 2D for
// palm center/width/motion/homography and only touches Z for curvature's
// joint angles, same split as original_source/src/input/geometry.py.
type point struct{ X, Y float64 }

func sub(a, b point) point { return point{a.X - b.X, a.Y - b.Y} }

func norm(a point) float64 { return math.Hypot(a.X, a.Y) }

func dot(a, b point) float64 { return a.X*b.X + a.Y*b.Y }

func dist(a, b point) float64 { return norm(sub(a, b)) }

func to2D(p detector.Point3D) point { return point{p.X, p.Y} }

// palmCenter is the mean of {wrist, index MCP, middle MCP, ring MCP, pinky
// MCP}, per spec.md §4.1.
func palmCenter(h detector.HandLandmarks) point {
	idx := [...]int{detector.Wrist, detector.IndexMCP, detector.MiddleMCP, detector.RingMCP, detector.PinkyMCP}
	var sum point
	for _, i := range idx {
		sum.X += h.Points[i].X
		sum.Y += h.Points[i].Y
	}
	n := float64(len(idx))
	return point{sum.X / n, sum.Y / n}
}

// palmWidth is the distance between index MCP and pinky MCP.
func palmWidth(h detector.HandLandmarks) float64 {
	return dist(to2D(h.Points[detector.IndexMCP]), to2D(h.Points[detector.PinkyMCP]))
}

type fingerJoints struct {
	mcp, pip, dip, tip int
}

var fingers = map[string]fingerJoints{
	"thumb":  {detector.ThumbCMC, detector.ThumbMCP, detector.ThumbIP, detector.ThumbTip},
	"index":  {detector.IndexMCP, detector.IndexPIP, detector.IndexDIP, detector.IndexTip},
	"middle": {detector.MiddleMCP, detector.MiddlePIP, detector.MiddleDIP, detector.MiddleTip},
	"ring":   {detector.RingMCP, detector.RingPIP, detector.RingDIP, detector.RingTip},
	"pinky":  {detector.PinkyMCP, detector.PinkyPIP, detector.PinkyDIP, detector.PinkyTip},
}

// curvatureFingers are the four fingers spec.md §4.1 contributes to
// gesture.closed; thumb is excluded there but available via bend.thumb
// (SPEC_FULL §3.1).
var curvatureFingers = []string{"index", "middle", "ring", "pinky"}

// bendAngles returns the three joint bend angles (radians) for a finger,
// following original_source/src/input/geometry.py's
// finger_bend_plane_angle: the angle, at each interior joint, between the
// two adjacent bone segments.
func bendAngles(h detector.HandLandmarks, f fingerJoints) [3]float64 {
	wrist := h.Points[detector.Wrist]
	tip := h.Points[f.tip]
	// Joints evaluated: MCP (wrist-mcp-pip), PIP (mcp-pip-dip), DIP (pip-dip-tip).
	pts := [5]detector.Point3D{wrist, h.Points[f.mcp], h.Points[f.pip], h.Points[f.dip], tip}
	var out [3]float64
	for i := 0; i < 3; i++ {
		a, b, c := pts[i], pts[i+1], pts[i+2]
		out[i] = jointAngle(a, b, c)
	}
	return out
}

// jointAngle is the angle at vertex b formed by segments b->a and b->c.
func jointAngle(a, b, c detector.Point3D) float64 {
	v1 := detector.Point3D{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
	v2 := detector.Point3D{X: c.X - b.X, Y: c.Y - b.Y, Z: c.Z - b.Z}
	n1 := math.Sqrt(v1.X*v1.X + v1.Y*v1.Y + v1.Z*v1.Z)
	n2 := math.Sqrt(v2.X*v2.X + v2.Y*v2.Y + v2.Z*v2.Z)
	if n1 < 1e-12 || n2 < 1e-12 {
		return 0
	}
	cosT := (v1.X*v2.X + v1.Y*v2.Y + v1.Z*v2.Z) / (n1 * n2)
	cosT = clamp(cosT, -1, 1)
	return math.Acos(cosT)
}

// curvature is spec.md §4.1's bounded formula: mean(1-cos θ_j)/2 across the
// finger's three bend angles, clamped to [0,1]. bendAngles yields interior
// joint angles (π for a straight joint), so each bend θ_j is π minus that
// angle: a straight finger scores 0 and a fully curled one approaches 1.
// Chosen over original_source's unbounded sum(π - angle) formula — see
// SPEC_FULL.md §9 and DESIGN.md.
func curvature(angles [3]float64) float64 {
	var sum float64
	for _, a := range angles {
		sum += (1 - math.Cos(math.Pi-a)) / 2
	}
	return clamp(sum/float64(len(angles)), 0, 1)
}

// meanBendAngle is the SPEC_FULL §3.1 bend.* feature: the mean raw joint
// angle, pre-curvature-transform.
func meanBendAngle(angles [3]float64) float64 {
	var sum float64
	for _, a := range angles {
		sum += a
	}
	return sum / float64(len(angles))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func affineNormalize(v, min, max float64) (float64, bool) {
	if max == min {
		return 0, false
	}
	return clamp((v-min)/(max-min), 0, 1), true
}
