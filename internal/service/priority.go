package service

import (
	"time"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/model"
)

// rankSignals are the per-entry inputs the allocation ordering compares.
// Fairness strictly dominates, then the pace bias, then the staff adjustment;
// submission time and entry id break the remaining ties so the order is
// total.
type rankSignals struct {
	fairness    int
	tierBias    int
	adminAdjust int
	submittedAt time.Time
	entryID     string
}

// rankBefore reports whether a should be seated before b.
func rankBefore(a, b rankSignals) bool {
	if a.fairness != b.fairness {
		return a.fairness > b.fairness
	}
	if a.tierBias != b.tierBias {
		return a.tierBias > b.tierBias
	}
	if a.adminAdjust != b.adminAdjust {
		return a.adminAdjust > b.adminAdjust
	}
	if !a.submittedAt.Equal(b.submittedAt) {
		return a.submittedAt.Before(b.submittedAt)
	}
	return a.entryID < b.entryID
}

// speedTierBias converts a tier into its ordering bias. Fast groups rank
// earlier and so take the early, tightly packed blocks; slow groups drift
// later where they hold fewer players up.
func speedTierBias(tier string, weight int) int {
	switch tier {
	case model.SpeedTierFast:
		return weight
	case model.SpeedTierSlow:
		return -weight
	default:
		return 0
	}
}

// slowestTier collapses a party's tiers into the tier the whole group plays
// at.
func slowestTier(tiers []string) string {
	slowest := model.SpeedTierFast
	rank := func(t string) int {
		switch t {
		case model.SpeedTierSlow:
			return 2
		case model.SpeedTierAverage:
			return 1
		default:
			return 0
		}
	}
	if len(tiers) == 0 {
		return model.SpeedTierAverage
	}
	for _, t := range tiers {
		if rank(t) > rank(slowest) {
			slowest = t
		}
	}
	return slowest
}
