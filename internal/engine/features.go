package engine

import (
	"sort"
	"strings"

	"github.com/ayusman/kuchipudi-engine/internal/config"
	"github.com/ayusman/kuchipudi-engine/internal/detector"
)

// FeatureValue is one named feature's per-tick result: spec.md §3's
// "named scalar v ∈ ℝ ... plus a validity bit".
type FeatureValue struct {
	Value float64
	Valid bool
}

// fingerOrder fixes the deterministic ordering used to enumerate the
// SPEC_FULL §3.1 cross-hand fingertip-distance pairs.
var fingerOrder = []string{"thumb", "index", "middle", "ring", "pinky"}

type handGeometry struct {
	present bool
	center  point
	width   float64
	curv    map[string]float64 // per-finger curvature, [0,1]
	bend    map[string]float64 // per-finger mean raw bend angle, radians
	tips    map[string]point
}

func computeHandGeometry(h detector.HandLandmarks) handGeometry {
	g := handGeometry{
		present: true,
		center:  palmCenter(h),
		width:   palmWidth(h),
		curv:    make(map[string]float64, len(fingers)),
		bend:    make(map[string]float64, len(fingers)),
		tips:    make(map[string]point, len(fingers)),
	}
	for name, fj := range fingers {
		angles := bendAngles(h, fj)
		g.curv[name] = curvature(angles)
		g.bend[name] = meanBendAngle(angles)
		g.tips[name] = to2D(h.Points[fj.tip])
	}
	return g
}

// computeFeatures is the extractor of spec.md §4.1 plus the SPEC_FULL §3.1
// supplements. It is purely data-driven off calib: a feature is emitted iff
// calibration carries an entry for it, which (after Autofill/Validate) is
// exactly the set of features actually referenced by a gate or output —
// spec.md's own "opt-in" framing for the supplemental features.
func computeFeatures(frame LandmarkFrame, calib config.Calibration) map[string]FeatureValue {
	out := make(map[string]FeatureValue)
	hands := frame.byHand()

	geoms := map[HandSide]handGeometry{}
	for _, side := range []HandSide{LeftHand, RightHand} {
		if lm, ok := hands[side]; ok {
			geoms[side] = computeHandGeometry(lm)
		}
	}

	for _, side := range []HandSide{LeftHand, RightHand} {
		prefix := string(side) + "_hand"
		g, present := geoms[side]
		emitPerHandFeatures(out, calib, prefix, g, present)
	}

	emitCrossHandFeatures(out, calib, geoms)
	return out
}

func emitPerHandFeatures(out map[string]FeatureValue, calib config.Calibration, prefix string, g handGeometry, present bool) {
	for name, ax := range calib.MotionAxes {
		if !strings.HasPrefix(name, prefix+".motion.") {
			continue
		}
		if !present {
			out[name] = FeatureValue{}
			continue
		}
		proj := g.center.X*ax.AxisX + g.center.Y*ax.AxisY
		v := proj
		if ax.RangeNorm != 0 {
			v = proj / ax.RangeNorm
		}
		out[name] = FeatureValue{Value: clamp(v, 0, 1), Valid: true}
	}

	for quadKey, quad := range calib.Quads {
		if !strings.HasPrefix(quadKey, prefix+".pos") {
			continue
		}
		xName, yName := quadKey+".x", quadKey+".y"
		if !present {
			out[xName] = FeatureValue{}
			out[yName] = FeatureValue{}
			continue
		}
		src := [4]point{{quad.TL.X, quad.TL.Y}, {quad.TR.X, quad.TR.Y}, {quad.BR.X, quad.BR.Y}, {quad.BL.X, quad.BL.Y}}
		dst := [4]point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
		hm, err := solveHomography(src, dst)
		if err != nil {
			out[xName] = FeatureValue{}
			out[yName] = FeatureValue{}
			continue
		}
		res := hm.apply(g.center)
		out[xName] = FeatureValue{Value: clamp(res.X, 0, 1), Valid: true}
		out[yName] = FeatureValue{Value: clamp(res.Y, 0, 1), Valid: true}
	}

	for name, rng := range calib.Ranges {
		if !strings.HasPrefix(name, prefix+".") {
			continue
		}
		raw, ok := perHandRangeFeatureRaw(name, prefix, g, present)
		if !present || !ok {
			out[name] = FeatureValue{}
			continue
		}
		v, valid := affineNormalize(raw, rng.Min, rng.Max)
		out[name] = FeatureValue{Value: v, Valid: valid}
	}
}

// perHandRangeFeatureRaw computes the raw (pre-normalization) value for
// every Range-calibrated per-hand feature name: gesture.closed, the two
// curvature-diff features (spec.md §4.1), and the bend/relative-curvature
// supplements (SPEC_FULL §3.1).
func perHandRangeFeatureRaw(name, prefix string, g handGeometry, present bool) (float64, bool) {
	if !present {
		return 0, false
	}
	suffix := strings.TrimPrefix(name, prefix+".")

	switch suffix {
	case "gesture.closed":
		var sum float64
		for _, f := range curvatureFingers {
			sum += g.curv[f]
		}
		return sum / float64(len(curvatureFingers)), true
	case "curv.diff.index_minus_middle":
		return g.curv["index"] - g.curv["middle"], true
	case "curv.diff.middle_minus_avg_index_ring":
		return g.curv["middle"] - (g.curv["index"]+g.curv["ring"])/2, true
	}

	if finger, ok := strings.CutPrefix(suffix, "bend."); ok {
		if v, exists := g.bend[finger]; exists {
			return v, true
		}
		return 0, false
	}
	if finger, ok := strings.CutPrefix(suffix, "curv.rel."); ok {
		finger = strings.TrimSuffix(finger, "_minus_avg")
		v, exists := g.curv[finger]
		if !exists {
			return 0, false
		}
		var othersSum float64
		var n int
		for _, f := range curvatureFingers {
			if f == finger {
				continue
			}
			othersSum += g.curv[f]
			n++
		}
		if n == 0 {
			return 0, false
		}
		return v - othersSum/float64(n), true
	}

	return 0, false
}

func emitCrossHandFeatures(out map[string]FeatureValue, calib config.Calibration, geoms map[HandSide]handGeometry) {
	left, haveLeft := geoms[LeftHand]
	right, haveRight := geoms[RightHand]
	bothPresent := haveLeft && haveRight

	for name, rng := range calib.Ranges {
		switch {
		case name == "hands.distance":
			if !bothPresent {
				out[name] = FeatureValue{}
				continue
			}
			raw := dist(left.center, right.center) / ((left.width + right.width) / 2)
			v, valid := affineNormalize(raw, rng.Min, rng.Max)
			out[name] = FeatureValue{Value: v, Valid: valid}
		case strings.HasPrefix(name, "hands.fingertip_distance."):
			a, b, ok := parseFingertipPair(name)
			if !ok || !bothPresent {
				out[name] = FeatureValue{}
				continue
			}
			lt, lok := left.tips[a]
			rt, rok := right.tips[b]
			if !lok || !rok {
				out[name] = FeatureValue{}
				continue
			}
			raw := dist(lt, rt) / ((left.width + right.width) / 2)
			v, valid := affineNormalize(raw, rng.Min, rng.Max)
			out[name] = FeatureValue{Value: v, Valid: valid}
		}
	}
}

func parseFingertipPair(name string) (a, b string, ok bool) {
	rest := strings.TrimPrefix(name, "hands.fingertip_distance.")
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// FingertipPairNames returns the 10 canonical unordered fingertip pair
// names used by SPEC_FULL §3.1's cross-hand distance features, in a stable
// order, for config authoring/autofill convenience.
func FingertipPairNames() []string {
	var names []string
	for i := 0; i < len(fingerOrder); i++ {
		for j := i + 1; j < len(fingerOrder); j++ {
			names = append(names, "hands.fingertip_distance."+fingerOrder[i]+"_"+fingerOrder[j])
		}
	}
	sort.Strings(names)
	return names
}
