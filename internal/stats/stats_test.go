package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greenharvest/marketplace/internal/stats"
	"github.com/greenharvest/marketplace/internal/workflow"
)

func TestBucketCounts(t *testing.T) {
	t.Run("counts sum to record count", func(t *testing.T) {
		requests := []workflow.ProductRequest{
			{ID: "1", Status: workflow.RequestPending},
			{ID: "2", Status: workflow.RequestPending},
			{ID: "3", Status: workflow.RequestApproved},
			{ID: "4", Status: workflow.RequestRejected},
			{ID: "5", Status: workflow.RequestApproved},
		}

		counts := stats.BucketCounts(requests, func(r workflow.ProductRequest) workflow.RequestStatus {
			return r.Status
		})

		assert.Equal(t, 2, counts[workflow.RequestPending])
		assert.Equal(t, 2, counts[workflow.RequestApproved])
		assert.Equal(t, 1, counts[workflow.RequestRejected])

		total := 0
		for _, n := range counts {
			total += n
		}
		assert.Equal(t, len(requests), total)
	})

	t.Run("empty snapshot", func(t *testing.T) {
		counts := stats.BucketCounts(nil, func(o workflow.Order) workflow.OrderStatus {
			return o.Status
		})
		assert.Empty(t, counts)
	})
}

func TestSumItemValue(t *testing.T) {
	items := []workflow.OrderItem{
		{ProductID: "p1", Quantity: 3, Price: 2.50},
		{ProductID: "p2", Quantity: 1, Price: 10},
		{ProductID: "p3", Quantity: 0, Price: 99},
	}

	t.Run("sums price times quantity", func(t *testing.T) {
		assert.InDelta(t, 17.50, stats.SumItemValue(items), 1e-9)
	})

	t.Run("zero quantity lines contribute nothing", func(t *testing.T) {
		withoutZero := items[:2]
		assert.Equal(t, stats.SumItemValue(withoutZero), stats.SumItemValue(items))
	})

	t.Run("order of items does not matter", func(t *testing.T) {
		reversed := []workflow.OrderItem{items[2], items[1], items[0]}
		assert.Equal(t, stats.SumItemValue(items), stats.SumItemValue(reversed))
	})

	t.Run("no items", func(t *testing.T) {
		assert.Zero(t, stats.SumItemValue(nil))
	})
}

func TestLoyaltyTier(t *testing.T) {
	cases := []struct {
		spent float64
		want  stats.Tier
	}{
		{0, stats.TierBronze},
		{499.99, stats.TierBronze},
		{500, stats.TierSilver},
		{1499.99, stats.TierSilver},
		{1500, stats.TierGold},
		{2999.99, stats.TierGold},
		{3000, stats.TierPlatinum},
		{10000, stats.TierPlatinum},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, stats.LoyaltyTier(tc.spent), "spent %.2f", tc.spent)
	}
}

func TestNextThreshold(t *testing.T) {
	assert.Equal(t, 500.0, stats.NextThreshold(100))
	assert.Equal(t, 1500.0, stats.NextThreshold(500))
	assert.Equal(t, 3000.0, stats.NextThreshold(1500))
	assert.Equal(t, 0.0, stats.NextThreshold(3000))
}

func TestTierProgress(t *testing.T) {
	t.Run("halfway to silver", func(t *testing.T) {
		assert.InDelta(t, 50, stats.TierProgress(250), 1e-9)
	})

	t.Run("fresh silver", func(t *testing.T) {
		assert.InDelta(t, 500.0/1500*100, stats.TierProgress(500), 1e-9)
	})

	t.Run("platinum is always complete", func(t *testing.T) {
		assert.Equal(t, 100.0, stats.TierProgress(3000))
		assert.Equal(t, 100.0, stats.TierProgress(99999))
	})
}

func TestNutritionScore(t *testing.T) {
	cases := []struct {
		name string
		info stats.NutritionInfo
		want int
	}{
		{"nothing to score", stats.NutritionInfo{Allergens: "nuts"}, 0},
		{"allergen free only", stats.NutritionInfo{}, 1},
		{"fiber rich", stats.NutritionInfo{FiberGrams: 4, Allergens: "gluten"}, 2},
		{"protein rich", stats.NutritionInfo{ProteinGrams: 6, Allergens: "soy"}, 2},
		{"fiber at boundary does not count", stats.NutritionInfo{FiberGrams: 3, Allergens: "nuts"}, 0},
		{"vitamins and minerals", stats.NutritionInfo{Vitamins: "A,C", Minerals: "iron", Allergens: "milk"}, 2},
		{"everything capped at five", stats.NutritionInfo{FiberGrams: 10, ProteinGrams: 20, Vitamins: "A", Minerals: "zinc"}, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stats.NutritionScore(tc.info))
		})
	}
}
