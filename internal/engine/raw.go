package engine

import "github.com/ayusman/kuchipudi-engine/internal/detector"

// The functions in this file expose pre-calibration raw values to
// internal/calib, which samples them during acquisition before any
// min/max range exists to normalize against (spec.md §4.5).

// PalmCenterXY returns a hand's palm-center position in camera-normalized
// coordinates.
func PalmCenterXY(h detector.HandLandmarks) (x, y float64) {
	p := palmCenter(h)
	return p.X, p.Y
}

// RawGestureClosed is the pre-normalization mean curvature of
// index+middle+ring+pinky (spec.md §4.1's gesture.closed raw value).
func RawGestureClosed(h detector.HandLandmarks) float64 {
	var sum float64
	for _, f := range curvatureFingers {
		angles := bendAngles(h, fingers[f])
		sum += curvature(angles)
	}
	return sum / float64(len(curvatureFingers))
}

// RawCurvDiffIndexMinusMiddle is the pre-normalization
// curv.diff.index_minus_middle value.
func RawCurvDiffIndexMinusMiddle(h detector.HandLandmarks) float64 {
	ci := curvature(bendAngles(h, fingers["index"]))
	cm := curvature(bendAngles(h, fingers["middle"]))
	return ci - cm
}

// RawCurvDiffMiddleMinusAvgIndexRing is the pre-normalization
// curv.diff.middle_minus_avg_index_ring value.
func RawCurvDiffMiddleMinusAvgIndexRing(h detector.HandLandmarks) float64 {
	ci := curvature(bendAngles(h, fingers["index"]))
	cm := curvature(bendAngles(h, fingers["middle"]))
	cr := curvature(bendAngles(h, fingers["ring"]))
	return cm - (ci+cr)/2
}
