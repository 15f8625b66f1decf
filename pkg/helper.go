package pkg

import "math"

// Round2 rounds to two decimal places, matching how scores are reported
// across the API.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Rate returns part/total as a percentage, 0 when total is 0.
func Rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round2(float64(part) / float64(total) * 100)
}

// Clamp keeps v within [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RenormalizeOrder moves the element currently at position old to position new
// and returns the dense 0..n-1 order for every id, in the resulting sequence.
// ids must already be sorted by their current order.
func RenormalizeOrder(ids []int64, oldPos, newPos int) []int64 {
	n := len(ids)
	if n == 0 {
		return ids
	}
	oldPos = Clamp(oldPos, 0, n-1)
	newPos = Clamp(newPos, 0, n-1)
	if oldPos == newPos {
		return ids
	}
	moved := ids[oldPos]
	rest := make([]int64, 0, n)
	rest = append(rest, ids[:oldPos]...)
	rest = append(rest, ids[oldPos+1:]...)
	out := make([]int64, 0, n)
	out = append(out, rest[:newPos]...)
	out = append(out, moved)
	out = append(out, rest[newPos:]...)
	return out
}
