package engine

import "fmt"

// homography is the 8-parameter projective transform (h33 fixed to 1)
// sending four quad corners to the unit square, per spec.md §4.1's "apply
// the homography that sends the four calibration-quad points to
// (0,0),(1,0),(1,1),(0,1)".
type homography struct {
	h11, h12, h13 float64
	h21, h22, h23 float64
	h31, h32      float64
}

// solveHomography finds the unique projective map src[i] -> dst[i] for the
// four correspondences, via Gauss-Jordan elimination on the 8x8 linear
// system. No library in the pack exposes a bare-point homography solve
// (gocv's is Mat-to-Mat only) — see DESIGN.md.
func solveHomography(src, dst [4]point) (homography, error) {
	var a [8][8]float64
	var b [8]float64

	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		u, v := dst[i].X, dst[i].Y

		r0 := 2 * i
		a[r0] = [8]float64{x, y, 1, 0, 0, 0, -u * x, -u * y}
		b[r0] = u

		r1 := 2*i + 1
		a[r1] = [8]float64{0, 0, 0, x, y, 1, -v * x, -v * y}
		b[r1] = v
	}

	h, err := gaussJordan(a, b)
	if err != nil {
		return homography{}, fmt.Errorf("engine: solve homography: %w", err)
	}
	return homography{
		h11: h[0], h12: h[1], h13: h[2],
		h21: h[3], h22: h[4], h23: h[5],
		h31: h[6], h32: h[7],
	}, nil
}

// apply maps a source-plane point through the homography, returning the
// perspective-divided destination point.
func (hm homography) apply(p point) point {
	denom := hm.h31*p.X + hm.h32*p.Y + 1
	if denom == 0 {
		return point{}
	}
	u := (hm.h11*p.X + hm.h12*p.Y + hm.h13) / denom
	v := (hm.h21*p.X + hm.h22*p.Y + hm.h23) / denom
	return point{u, v}
}

// gaussJordan solves A*x = b for an 8x8 system with partial (row) pivoting,
// returning an error if A is singular (degenerate quad).
func gaussJordan(a [8][8]float64, b [8]float64) ([8]float64, error) {
	const n = 8
	var aug [n][n + 1]float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			aug[i][j] = a[i][j]
		}
		aug[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		best := aug[col][col]
		if best < 0 {
			best = -best
		}
		for row := col + 1; row < n; row++ {
			v := aug[row][col]
			if v < 0 {
				v = -v
			}
			if v > best {
				best, pivot = v, row
			}
		}
		if best < 1e-12 {
			return [8]float64{}, fmt.Errorf("singular system (degenerate quad)")
		}
		if pivot != col {
			aug[col], aug[pivot] = aug[pivot], aug[col]
		}

		pv := aug[col][col]
		for j := col; j <= n; j++ {
			aug[col][j] /= pv
		}
		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			factor := aug[row][col]
			if factor == 0 {
				continue
			}
			for j := col; j <= n; j++ {
				aug[row][j] -= factor * aug[col][j]
			}
		}
	}

	var x [8]float64
	for i := 0; i < n; i++ {
		x[i] = aug[i][n]
	}
	return x, nil
}
