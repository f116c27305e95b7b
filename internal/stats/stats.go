// Package stats holds the pure derivation functions behind the dashboard
// counters: status buckets, order totals, loyalty tiers and nutrition scores.
// Nothing here touches storage; every function works on a snapshot.
package stats

import "github.com/greenharvest/marketplace/internal/workflow"

// BucketCounts partitions a snapshot by status. The buckets are exhaustive
// and disjoint: the counts always sum to len(records).
func BucketCounts[S comparable, T any](records []T, statusOf func(T) S) map[S]int {
	counts := make(map[S]int, 4)
	for _, r := range records {
		counts[statusOf(r)]++
	}
	return counts
}

// SumItemValue is the live line-item total of an order. The stored
// TotalAmount is frozen from this value at creation time and never
// reconciled afterwards.
func SumItemValue(items []workflow.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

const (
	silverThreshold   = 500
	goldThreshold     = 1500
	platinumThreshold = 3000
)

// LoyaltyTier maps lifetime spend to a tier. Monotonic in totalSpent.
func LoyaltyTier(totalSpent float64) Tier {
	switch {
	case totalSpent >= platinumThreshold:
		return TierPlatinum
	case totalSpent >= goldThreshold:
		return TierGold
	case totalSpent >= silverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// NextThreshold returns the spend needed for the next tier, or 0 when the
// customer is already platinum.
func NextThreshold(totalSpent float64) float64 {
	switch LoyaltyTier(totalSpent) {
	case TierBronze:
		return silverThreshold
	case TierSilver:
		return goldThreshold
	case TierGold:
		return platinumThreshold
	default:
		return 0
	}
}

// TierProgress is the percentage of the way to the next tier, capped at 100.
func TierProgress(totalSpent float64) float64 {
	next := NextThreshold(totalSpent)
	if next == 0 {
		return 100
	}
	progress := totalSpent / next * 100
	if progress > 100 {
		progress = 100
	}
	return progress
}

type NutritionInfo struct {
	FiberGrams   float64 `json:"fiber_grams"`
	ProteinGrams float64 `json:"protein_grams"`
	Vitamins     string  `json:"vitamins,omitempty"`
	Minerals     string  `json:"minerals,omitempty"`
	Allergens    string  `json:"allergens,omitempty"`
}

// NutritionScore is an additive 0..5 score: +2 for fiber above 3g, +2 for
// protein above 5g, +1 each for listed vitamins and minerals, +1 for being
// allergen-free, capped at 5.
func NutritionScore(info NutritionInfo) int {
	score := 0
	if info.FiberGrams > 3 {
		score += 2
	}
	if info.ProteinGrams > 5 {
		score += 2
	}
	if info.Vitamins != "" {
		score++
	}
	if info.Minerals != "" {
		score++
	}
	if info.Allergens == "" {
		score++
	}
	if score > 5 {
		score = 5
	}
	return score
}
