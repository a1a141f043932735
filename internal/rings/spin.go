package rings

import "math"

// ResolveSpin returns the rotation delta for the reel's next stop.
// The delta is always a whole number of segments, drawn uniformly
// between the reel's minimum and maximum travel, signed by direction.
func ResolveSpin(r Reel, rng Source) float64 {
	minSeg := int(math.Floor(r.MinRotation / SegmentDegrees))
	maxSeg := int(math.Floor(r.MaxRotation / SegmentDegrees))
	if maxSeg < minSeg {
		maxSeg = minSeg
	}

	n := minSeg + rng.Intn(maxSeg-minSeg+1)
	return float64(n) * SegmentDegrees * r.sign()
}

// NormalizeAngle maps any angle into [0, 360).
func NormalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}

	a := math.Mod(angle, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	// Tiny negatives round up to exactly FullTurn after the addition.
	if a >= FullTurn || a == 0 {
		return 0
	}
	return a
}

// SnapToNearestSegment rounds an angle to the nearest segment boundary.
// The result is a multiple of 30 in [0, 360); 345 snaps to 0.
func SnapToNearestSegment(angle float64) float64 {
	return float64(segmentIndex(angle)) * SegmentDegrees
}

// segmentIndex returns the segment (0..11) nearest to angle.
func segmentIndex(angle float64) int {
	seg := int(math.Round(NormalizeAngle(angle) / SegmentDegrees))
	return seg % SegmentCount
}
