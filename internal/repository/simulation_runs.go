package repository

import (
	"context"

	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

/**
 * 在同一个事务中完成：
 * 		1. 写入模拟记录
 * 		2. 写入逐单结果，position 保留处理顺序
 * 		3. 回写已分配的订单，只更新仍处于待处理状态的订单
 * 如果某个订单已经被其他模拟处理过，说明快照已过期，整个事务回滚
 */
func (r *Repository) InsertSimulationRun(ctx context.Context, run *domain.SimulationRun) error {
	ctx, cancel := context.WithTimeout(ctx, r.transactionTimeout())
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	params := run.Parameters
	result := run.Result
	fuel := result.FuelCostBreakdown

	insertRunQuery := `
		INSERT INTO simulation_runs (
			available_drivers, route_start_time, max_hours_per_driver, saturation_policy, trigger,
			total_profit, total_orders, on_time_deliveries, late_deliveries, unassigned_orders, efficiency_score,
			total_fuel_cost, fuel_cost_low, fuel_cost_medium, fuel_cost_high
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`
	args := []any{
		params.AvailableDrivers, params.RouteStartTime, params.MaxHoursPerDriverPerDay, params.SaturationPolicy, run.Trigger,
		result.TotalProfit, result.TotalOrders, result.OnTimeDeliveries, result.LateDeliveries, result.UnassignedOrders, result.EfficiencyScore,
		fuel.TotalFuelCost, fuel.ByTrafficLevel.Low, fuel.ByTrafficLevel.Medium, fuel.ByTrafficLevel.High,
	}
	if err := tx.QueryRowContext(ctx, insertRunQuery, args...).Scan(&run.ID, &run.CreatedAt); err != nil {
		return err
	}

	insertOutcomeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO simulation_run_orders (
			simulation_run_id, position, order_id, order_code, assigned_driver_id, outcome, is_late,
			delivery_time_minutes, profit, penalties, bonus, fuel_cost, traffic_level
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`)
	if err != nil {
		return err
	}
	defer insertOutcomeStmt.Close()

	updateOrderStmt, err := tx.PrepareContext(ctx, `
		UPDATE orders
		SET
			status = $1,
			assigned_driver_id = $2,
			delivery_time_minutes = $3,
			profit = $4,
			version = version + 1
		WHERE id = $5 AND status = 'pending'
	`)
	if err != nil {
		return err
	}
	defer updateOrderStmt.Close()

	for i, outcome := range result.PerOrderResults {
		args := []any{
			run.ID, i, outcome.OrderID, outcome.OrderCode, outcome.AssignedDriverID, outcome.Outcome, outcome.IsLate,
			outcome.DeliveryTimeMinutes, outcome.Profit, outcome.Penalties, outcome.Bonus, outcome.FuelCost, outcome.TrafficLevel,
		}
		if _, err := insertOutcomeStmt.ExecContext(ctx, args...); err != nil {
			return err
		}

		// 未分配的订单保持待处理状态
		if !outcome.IsAssigned() {
			continue
		}

		status := domain.OrderStatusDelivered
		if outcome.IsLate {
			status = domain.OrderStatusLate
		}

		res, err := updateOrderStmt.ExecContext(ctx, status, outcome.AssignedDriverID, outcome.DeliveryTimeMinutes, outcome.Profit, outcome.OrderID)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrSnapshotStale
		}
	}

	return tx.Commit()
}

const simulationRunColumns = `
	id, available_drivers, route_start_time, max_hours_per_driver, saturation_policy, trigger,
	total_profit, total_orders, on_time_deliveries, late_deliveries, unassigned_orders, efficiency_score,
	total_fuel_cost, fuel_cost_low, fuel_cost_medium, fuel_cost_high, created_at
`

func scanSimulationRunSummary(row rowScanner) (*domain.SimulationRunSummary, error) {
	summary := &domain.SimulationRunSummary{}

	dst := []any{
		&summary.ID,
		&summary.Parameters.AvailableDrivers,
		&summary.Parameters.RouteStartTime,
		&summary.Parameters.MaxHoursPerDriverPerDay,
		&summary.Parameters.SaturationPolicy,
		&summary.Trigger,
		&summary.TotalProfit,
		&summary.TotalOrders,
		&summary.OnTimeDeliveries,
		&summary.LateDeliveries,
		&summary.UnassignedOrders,
		&summary.EfficiencyScore,
		&summary.FuelCostBreakdown.TotalFuelCost,
		&summary.FuelCostBreakdown.ByTrafficLevel.Low,
		&summary.FuelCostBreakdown.ByTrafficLevel.Medium,
		&summary.FuelCostBreakdown.ByTrafficLevel.High,
		&summary.CreatedAt,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	return summary, nil
}

// GetSimulationRunSummaries 按时间从新到旧返回最近的 limit 条记录
func (r *Repository) GetSimulationRunSummaries(ctx context.Context, limit int) ([]*domain.SimulationRunSummary, error) {
	query := `SELECT ` + simulationRunColumns + ` FROM simulation_runs ORDER BY created_at DESC, id DESC LIMIT $1`

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]*domain.SimulationRunSummary, 0, limit)
	for rows.Next() {
		summary, err := scanSimulationRunSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (r *Repository) GetSimulationRunByID(ctx context.Context, id int64) (*domain.SimulationRun, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `SELECT ` + simulationRunColumns + ` FROM simulation_runs WHERE id = $1`
	summary, err := scanSimulationRunSummary(r.dbpool.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	run := &domain.SimulationRun{
		ID:         summary.ID,
		Parameters: summary.Parameters,
		Trigger:    summary.Trigger,
		CreatedAt:  summary.CreatedAt,
		Result: domain.SimulationResult{
			TotalProfit:       summary.TotalProfit,
			TotalOrders:       summary.TotalOrders,
			OnTimeDeliveries:  summary.OnTimeDeliveries,
			LateDeliveries:    summary.LateDeliveries,
			UnassignedOrders:  summary.UnassignedOrders,
			EfficiencyScore:   summary.EfficiencyScore,
			FuelCostBreakdown: summary.FuelCostBreakdown,
		},
	}

	outcomes, err := r.getSimulationRunOutcomes(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Result.PerOrderResults = outcomes

	return run, nil
}

func (r *Repository) getSimulationRunOutcomes(ctx context.Context, runID int64) ([]domain.PerOrderOutcome, error) {
	query := `
		SELECT
			order_id, order_code, assigned_driver_id, outcome, is_late,
			delivery_time_minutes, profit, penalties, bonus, fuel_cost, traffic_level
		FROM simulation_run_orders
		WHERE simulation_run_id = $1
		ORDER BY position
	`

	rows, err := r.dbpool.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outcomes := make([]domain.PerOrderOutcome, 0)
	for rows.Next() {
		outcome := domain.PerOrderOutcome{}
		dst := []any{
			&outcome.OrderID,
			&outcome.OrderCode,
			&outcome.AssignedDriverID,
			&outcome.Outcome,
			&outcome.IsLate,
			&outcome.DeliveryTimeMinutes,
			&outcome.Profit,
			&outcome.Penalties,
			&outcome.Bonus,
			&outcome.FuelCost,
			&outcome.TrafficLevel,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return outcomes, nil
}
