package simulator

import "github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"

type aggregator struct {
	result domain.SimulationResult
}

// totalOrders 为快照中待处理订单的数量，而不是实际分配的数量
func newAggregator(totalOrders int) *aggregator {
	return &aggregator{
		result: domain.SimulationResult{
			TotalOrders:     totalOrders,
			PerOrderResults: make([]domain.PerOrderOutcome, 0, totalOrders),
		},
	}
}

func (a *aggregator) add(outcome domain.PerOrderOutcome) {
	a.result.PerOrderResults = append(a.result.PerOrderResults, outcome)

	if !outcome.IsAssigned() {
		a.result.UnassignedOrders++
		return
	}

	if outcome.IsLate {
		a.result.LateDeliveries++
	} else {
		a.result.OnTimeDeliveries++
	}

	a.result.TotalProfit += outcome.Profit

	breakdown := &a.result.FuelCostBreakdown
	breakdown.TotalFuelCost += outcome.FuelCost
	switch outcome.TrafficLevel {
	case domain.TrafficLevelLow:
		breakdown.ByTrafficLevel.Low += outcome.FuelCost
	case domain.TrafficLevelMedium:
		breakdown.ByTrafficLevel.Medium += outcome.FuelCost
	case domain.TrafficLevelHigh:
		breakdown.ByTrafficLevel.High += outcome.FuelCost
	}
}

func (a *aggregator) finish() *domain.SimulationResult {
	if a.result.TotalOrders > 0 {
		a.result.EfficiencyScore = roundHalfUp(float64(a.result.OnTimeDeliveries) / float64(a.result.TotalOrders) * 100)
	} else {
		a.result.EfficiencyScore = 0
	}

	a.result.TotalProfit = roundTo2(a.result.TotalProfit)

	return &a.result
}
