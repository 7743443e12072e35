package simulator

import "github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"

/**
 * 计分规则，金额单位均为卢比
 * 修改这些常量即修改公司的考核口径，请同步更新测试
 */
const (
	LatePenalty            = 50.0 // 迟到罚款
	HighValueBonusRate     = 0.1  // 高价值订单准时送达奖励比例
	HighValueThreshold     = domain.HighValueThreshold
	FatigueThresholdHours  = domain.FatigueThresholdHours
	FatigueSlowdown        = 1.3  // 疲劳司机的配送时间倍率
	BaseFuelCostPerKm      = 5.0  // 基础油费
	HighTrafficSurchargeKm = 2.0  // 高拥堵路线每公里附加油费
	LateGraceMinutes       = 10.0 // 相对于路线基础时间的宽限
)

var trafficMultipliers = map[domain.TrafficLevel]float64{
	domain.TrafficLevelLow:    1.0,
	domain.TrafficLevelMedium: 1.1,
	domain.TrafficLevelHigh:   1.2,
}

func trafficMultiplier(level domain.TrafficLevel) float64 {
	if m, ok := trafficMultipliers[level]; ok {
		return m
	}
	return 1.0
}
