package simulator

import (
	"fmt"
	"slices"

	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

type Simulator struct {
	parameters *domain.SimulationParameters
	drivers    []*domain.Driver // 顺序即轮转顺序
	orders     []*domain.Order  // 快照中的顺序，用于截止时间相同时保持稳定
}

func New(parameters *domain.SimulationParameters, snapshot *domain.Snapshot) (*Simulator, error) {
	if len(snapshot.Drivers) == 0 {
		return nil, domain.ErrInsufficientDrivers
	}
	if len(snapshot.Orders) == 0 {
		return nil, domain.ErrNoPendingOrders
	}

	for _, order := range snapshot.Orders {
		if order.Route == nil {
			return nil, fmt.Errorf("订单 %s 没有关联的路线", order.Code)
		}
	}

	return &Simulator{
		parameters: parameters,
		drivers:    snapshot.Drivers,
		orders:     snapshot.Orders,
	}, nil
}

/**
 * 按截止时间从早到晚依次处理订单，司机轮流接单
 * 当前司机的累计时长达到上限时顺延到下一位，所有司机都满负荷时根据 SaturationPolicy 决定：
 * 		1. skip: 订单不分配，保持待处理状态
 * 		2. overbook: 与旧系统一致，仍然分配给游标后的下一位司机
 */
func (s *Simulator) Simulate() (*domain.SimulationResult, error) {
	// 拷贝一份再排序，不修改快照
	orders := slices.Clone(s.orders)
	slices.SortStableFunc(orders, func(a, b *domain.Order) int {
		return a.DeliveryDeadline.Compare(b.DeliveryDeadline)
	})

	n := len(s.drivers)
	ledger := newHoursLedger(n)
	agg := newAggregator(len(orders))
	cursor := 0

	for _, order := range orders {
		idx, ok := ledger.nextAvailable(cursor, s.parameters.MaxHoursPerDriverPerDay)
		if !ok {
			if s.parameters.SaturationPolicy != domain.SaturationPolicyOverbook {
				agg.add(unassignedOutcome(order))
				continue
			}
			idx = (cursor + 1) % n
		}

		driver := s.drivers[idx]
		route := order.Route

		deliveryTimeMinutes := EstimateDeliveryTime(route, driver.HasFatigue())
		evaluation := EvaluateOrder(order, route, deliveryTimeMinutes)

		driverID := driver.ID
		outcome := domain.PerOrderOutcome{
			OrderID:             order.ID,
			OrderCode:           order.Code,
			AssignedDriverID:    &driverID,
			Outcome:             domain.DeliveryOutcomeDelivered,
			IsLate:              evaluation.IsLate,
			DeliveryTimeMinutes: deliveryTimeMinutes,
			Profit:              evaluation.Profit,
			Penalties:           evaluation.Penalty,
			Bonus:               evaluation.Bonus,
			FuelCost:            evaluation.FuelCost,
			TrafficLevel:        route.TrafficLevel,
		}
		if evaluation.IsLate {
			outcome.Outcome = domain.DeliveryOutcomeLate
		}
		agg.add(outcome)

		ledger.add(idx, deliveryTimeMinutes)
		cursor = (idx + 1) % n
	}

	result := agg.finish()

	// 还需要检查一下结果是否自洽
	if result.OnTimeDeliveries+result.LateDeliveries+result.UnassignedOrders != result.TotalOrders {
		return nil, fmt.Errorf("模拟结果不一致：准时 %d + 迟到 %d + 未分配 %d != 订单总数 %d",
			result.OnTimeDeliveries, result.LateDeliveries, result.UnassignedOrders, result.TotalOrders)
	}

	return result, nil
}

func unassignedOutcome(order *domain.Order) domain.PerOrderOutcome {
	return domain.PerOrderOutcome{
		OrderID:      order.ID,
		OrderCode:    order.Code,
		Outcome:      domain.DeliveryOutcomeUnassigned,
		TrafficLevel: order.Route.TrafficLevel,
	}
}
