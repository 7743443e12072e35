package simulator

import "github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"

/**
 * 估算配送时间（分钟）
 * 先乘疲劳倍率，再乘拥堵倍率，最后四舍五入，顺序不能调换
 */
func EstimateDeliveryTime(route *domain.Route, hasFatigue bool) int {
	minutes := route.BaseTimeMinutes

	if hasFatigue {
		minutes *= FatigueSlowdown
	}

	minutes *= trafficMultiplier(route.TrafficLevel)

	return roundHalfUp(minutes)
}

// FuelCost 油费与路线距离成正比，高拥堵路线每公里有附加费
func FuelCost(route *domain.Route) float64 {
	rate := BaseFuelCostPerKm
	if route.TrafficLevel == domain.TrafficLevelHigh {
		rate += HighTrafficSurchargeKm
	}
	return route.DistanceKm * rate
}

/**
 * 计算订单的财务结果
 * 是否迟到以路线的原始基础时间为准（而不是调整后的估算时间）
 * 罚款和奖励互斥：只有准时送达才会考虑高价值奖励
 */
func EvaluateOrder(order *domain.Order, route *domain.Route, deliveryTimeMinutes int) Evaluation {
	e := Evaluation{
		IsLate:   float64(deliveryTimeMinutes) > route.BaseTimeMinutes+LateGraceMinutes,
		FuelCost: FuelCost(route),
	}

	if e.IsLate {
		e.Penalty = LatePenalty
	} else if order.IsHighValue() {
		e.Bonus = order.Value * HighValueBonusRate
	}

	// 利润可以为负
	e.Profit = order.Value + e.Bonus - e.Penalty - e.FuelCost

	return e
}
