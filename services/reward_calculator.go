package services

import (
	"fmt"
	"math"
)

// Eco point formula: 50 base points per tree, a 20% community buffer, then a
// 10% seasonal bonus. The multipliers are fixed program-wide rates, not
// per-barangay configuration.
const (
	BasePointsPerTree = 50

	communityBufferRate = 1.2
	seasonalBonusRate   = 1.1
)

// ComputePoints maps a tree count to an eco point award. Pure function; the
// final value is rounded half away from zero (math.Round).
func ComputePoints(treesPlanted int) (int, error) {
	if treesPlanted < 1 {
		return 0, fmt.Errorf("%w: trees planted must be at least 1, got %d", ErrInvalidArgument, treesPlanted)
	}

	basePoints := float64(treesPlanted * BasePointsPerTree)
	buffered := basePoints * communityBufferRate
	final := buffered * seasonalBonusRate

	return int(math.Round(final)), nil
}
