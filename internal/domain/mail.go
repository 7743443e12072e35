package domain

import "time"

// ReportMessage 是发送到报告队列中的消息
type ReportMessage struct {
	RunID            int64             `json:"runID"`
	Trigger          SimulationTrigger `json:"trigger"`
	Timestamp        time.Time         `json:"timestamp"`
	AvailableDrivers int               `json:"availableDrivers"`
	TotalOrders      int               `json:"totalOrders"`
	OnTimeDeliveries int               `json:"onTimeDeliveries"`
	LateDeliveries   int               `json:"lateDeliveries"`
	UnassignedOrders int               `json:"unassignedOrders"`
	EfficiencyScore  int               `json:"efficiencyScore"`
	TotalProfit      float64           `json:"totalProfit"`
	TotalFuelCost    float64           `json:"totalFuelCost"`
}

func NewReportMessage(run *SimulationRun) ReportMessage {
	return ReportMessage{
		RunID:            run.ID,
		Trigger:          run.Trigger,
		Timestamp:        run.CreatedAt,
		AvailableDrivers: run.Parameters.AvailableDrivers,
		TotalOrders:      run.Result.TotalOrders,
		OnTimeDeliveries: run.Result.OnTimeDeliveries,
		LateDeliveries:   run.Result.LateDeliveries,
		UnassignedOrders: run.Result.UnassignedOrders,
		EfficiencyScore:  run.Result.EfficiencyScore,
		TotalProfit:      run.Result.TotalProfit,
		TotalFuelCost:    run.Result.FuelCostBreakdown.TotalFuelCost,
	}
}
