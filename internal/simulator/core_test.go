package simulator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/simulator"
)

func TestEstimateDeliveryTime(t *testing.T) {
	testCases := []struct {
		name       string
		base       float64
		level      domain.TrafficLevel
		hasFatigue bool
		expected   int
	}{
		{"low traffic without fatigue keeps base time", 30, domain.TrafficLevelLow, false, 30},
		{"medium traffic adds ten percent", 50, domain.TrafficLevelMedium, false, 55},
		{"high traffic adds twenty percent", 35, domain.TrafficLevelHigh, false, 42},
		{"fatigue slows by thirty percent", 45, domain.TrafficLevelLow, true, 59}, // 58.5 -> 59
		{"fatigue then high traffic", 60, domain.TrafficLevelHigh, true, 94},      // 93.6 -> 94
		{"fatigue then medium traffic", 65, domain.TrafficLevelMedium, true, 93},  // 92.95 -> 93
		{"half rounds up", 5, domain.TrafficLevelMedium, false, 6},                // 5.5 -> 6
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			route := &domain.Route{BaseTimeMinutes: tc.base, TrafficLevel: tc.level}
			assert.Equal(t, tc.expected, simulator.EstimateDeliveryTime(route, tc.hasFatigue))
		})
	}
}

func TestFuelCost(t *testing.T) {
	for _, distance := range []float64{0.1, 8.7, 15.5, 20, 31.2} {
		assert.InDelta(t, distance*7, simulator.FuelCost(&domain.Route{DistanceKm: distance, TrafficLevel: domain.TrafficLevelHigh}), 1e-9)
		assert.InDelta(t, distance*5, simulator.FuelCost(&domain.Route{DistanceKm: distance, TrafficLevel: domain.TrafficLevelMedium}), 1e-9)
		assert.InDelta(t, distance*5, simulator.FuelCost(&domain.Route{DistanceKm: distance, TrafficLevel: domain.TrafficLevelLow}), 1e-9)
	}
}

func TestEvaluateOrder(t *testing.T) {
	route := &domain.Route{DistanceKm: 20, TrafficLevel: domain.TrafficLevelHigh, BaseTimeMinutes: 60}

	t.Run("late delivery pays penalty and no bonus", func(t *testing.T) {
		e := simulator.EvaluateOrder(&domain.Order{Value: 1500}, route, 94)

		assert.True(t, e.IsLate)
		assert.Equal(t, 50.0, e.Penalty)
		assert.Zero(t, e.Bonus)
		assert.Equal(t, 140.0, e.FuelCost)
		assert.Equal(t, 1500.0-50-140, e.Profit)
	})

	t.Run("grace window is measured against the unadjusted base time", func(t *testing.T) {
		onTime := simulator.EvaluateOrder(&domain.Order{Value: 500}, route, 70)
		late := simulator.EvaluateOrder(&domain.Order{Value: 500}, route, 71)

		assert.False(t, onTime.IsLate)
		assert.True(t, late.IsLate)
	})

	t.Run("on-time high-value order earns ten percent bonus", func(t *testing.T) {
		e := simulator.EvaluateOrder(&domain.Order{Value: 1500}, route, 60)

		assert.False(t, e.IsLate)
		assert.Equal(t, 150.0, e.Bonus)
		assert.Zero(t, e.Penalty)
		assert.Equal(t, 1500.0+150-140, e.Profit)
	})

	t.Run("value of exactly 1000 is not high value", func(t *testing.T) {
		e := simulator.EvaluateOrder(&domain.Order{Value: 1000}, route, 60)

		assert.Zero(t, e.Bonus)
		assert.Zero(t, e.Penalty)
	})

	t.Run("profit can be negative", func(t *testing.T) {
		longRoute := &domain.Route{DistanceKm: 100, TrafficLevel: domain.TrafficLevelHigh, BaseTimeMinutes: 30}
		e := simulator.EvaluateOrder(&domain.Order{Value: 200}, longRoute, 50)

		assert.Equal(t, 200.0-50-700, e.Profit)
		assert.Negative(t, e.Profit)
	})
}
