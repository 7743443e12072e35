package domain

import "time"

type SaturationPolicy string

const (
	// 所有司机都已满负荷时，订单保持待处理状态并记为未分配
	SaturationPolicySkip SaturationPolicy = "skip"
	// 旧系统的行为：所有司机都已满负荷时仍然分配给下一位司机
	SaturationPolicyOverbook SaturationPolicy = "overbook"
)

type DeliveryOutcome string

const (
	DeliveryOutcomeDelivered  DeliveryOutcome = "delivered"
	DeliveryOutcomeLate       DeliveryOutcome = "late"
	DeliveryOutcomeUnassigned DeliveryOutcome = "unassigned"
)

type SimulationTrigger string

const (
	SimulationTriggerManual    SimulationTrigger = "manual"
	SimulationTriggerScheduled SimulationTrigger = "scheduled"
)

type SimulationParameters struct {
	AvailableDrivers        int              `json:"availableDrivers" validate:"min=1,max=50"`
	RouteStartTime          string           `json:"routeStartTime" validate:"required,hhmm"` // 仅记录，不参与计算
	MaxHoursPerDriverPerDay float64          `json:"maxHoursPerDriverPerDay" validate:"min=1,max=16"`
	SaturationPolicy        SaturationPolicy `json:"saturationPolicy" validate:"omitempty,oneof=skip overbook"`
}

type PerOrderOutcome struct {
	OrderID             int64           `json:"orderRecordId"`
	OrderCode           string          `json:"orderId"`
	AssignedDriverID    *int64          `json:"assignedDriverId"`
	Outcome             DeliveryOutcome `json:"outcome"`
	IsLate              bool            `json:"isLate"`
	DeliveryTimeMinutes int             `json:"deliveryTimeMinutes"`
	Profit              float64         `json:"profit"`
	Penalties           float64         `json:"penalties"`
	Bonus               float64         `json:"bonus"`
	FuelCost            float64         `json:"fuelCost"`
	TrafficLevel        TrafficLevel    `json:"trafficLevel"`
}

func (o *PerOrderOutcome) IsAssigned() bool {
	return o.Outcome != DeliveryOutcomeUnassigned
}

type FuelCostByTrafficLevel struct {
	Low    float64 `json:"Low"`
	Medium float64 `json:"Medium"`
	High   float64 `json:"High"`
}

type FuelCostBreakdown struct {
	TotalFuelCost  float64                `json:"totalFuelCost"`
	ByTrafficLevel FuelCostByTrafficLevel `json:"byTrafficLevel"`
}

type SimulationResult struct {
	TotalProfit       float64           `json:"totalProfit"`
	TotalOrders       int               `json:"totalOrders"`
	OnTimeDeliveries  int               `json:"onTimeDeliveries"`
	LateDeliveries    int               `json:"lateDeliveries"`
	UnassignedOrders  int               `json:"unassignedOrders"`
	EfficiencyScore   int               `json:"efficiencyScore"`
	FuelCostBreakdown FuelCostBreakdown `json:"fuelCostBreakdown"`
	PerOrderResults   []PerOrderOutcome `json:"perOrderResults"`
}

type SimulationRun struct {
	ID         int64                `json:"id"`
	Parameters SimulationParameters `json:"inputParameters"`
	Result     SimulationResult     `json:"results"`
	Trigger    SimulationTrigger    `json:"trigger"`
	CreatedAt  time.Time            `json:"timestamp"`
}

// SimulationRunSummary 是历史列表中的一项，不包含逐单结果
type SimulationRunSummary struct {
	ID                int64                `json:"id"`
	Parameters        SimulationParameters `json:"inputParameters"`
	Trigger           SimulationTrigger    `json:"trigger"`
	TotalProfit       float64              `json:"totalProfit"`
	TotalOrders       int                  `json:"totalOrders"`
	OnTimeDeliveries  int                  `json:"onTimeDeliveries"`
	LateDeliveries    int                  `json:"lateDeliveries"`
	UnassignedOrders  int                  `json:"unassignedOrders"`
	EfficiencyScore   int                  `json:"efficiencyScore"`
	FuelCostBreakdown FuelCostBreakdown    `json:"fuelCostBreakdown"`
	CreatedAt         time.Time            `json:"timestamp"`
}
