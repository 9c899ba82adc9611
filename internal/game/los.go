package game

import "math"

// ClearShot reports whether the segment from a to b crosses none of the
// given blocked cells. Cells are squares of edge pitch.
func ClearShot(a, b Vec, blocked []Cell, pitch float64) bool {
	for _, c := range blocked {
		minX, minY := float64(c.Col)*pitch, float64(c.Row)*pitch
		if segmentHitsBox(a.X, a.Y, b.X, b.Y, minX, minY, minX+pitch, minY+pitch) {
			return false
		}
	}
	return true
}

// segmentEntryT returns the first segment parameter t in [0,1] where the line
// from (ox,oy)->(ex,ey) enters the box. The bool is false when no hit exists.
func segmentEntryT(ox, oy, ex, ey, minX, minY, maxX, maxY float64) (float64, bool) {
	tMin, tMax := 0.0, 1.0
	for _, axis := range [2][4]float64{
		{ox, ex - ox, minX, maxX},
		{oy, ey - oy, minY, maxY},
	} {
		o, d, lo, hi := axis[0], axis[1], axis[2], axis[3]
		if math.Abs(d) < 1e-12 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

func segmentHitsBox(ox, oy, ex, ey, minX, minY, maxX, maxY float64) bool {
	_, hit := segmentEntryT(ox, oy, ex, ey, minX, minY, maxX, maxY)
	return hit
}
