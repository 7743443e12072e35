package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

/**
 * 读取一次模拟所需的全部输入：
 * 		1. 按 id 排序的前 availableDrivers 个在职司机，顺序即轮转顺序
 * 		2. 全部待处理订单及其路线，按 id 排序，截止时间相同时依靠这个顺序保持稳定
 * 两次查询在同一个只读事务中进行，保证读到的是同一时刻的数据
 */
func (r *Repository) LoadSnapshot(ctx context.Context, availableDrivers int) (*domain.Snapshot, error) {
	if availableDrivers < 1 {
		return nil, domain.ErrInsufficientDrivers
	}

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	drivers, err := loadDrivers(ctx, tx, availableDrivers)
	if err != nil {
		return nil, fmt.Errorf("无法读取司机: %w", err)
	}
	if len(drivers) == 0 {
		return nil, domain.ErrInsufficientDrivers
	}

	orders, err := loadPendingOrders(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("无法读取待处理订单: %w", err)
	}
	if len(orders) == 0 {
		return nil, domain.ErrNoPendingOrders
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	routes := make([]*domain.Route, 0)
	seen := make(map[int64]bool)
	for _, order := range orders {
		if !seen[order.RouteID] {
			seen[order.RouteID] = true
			routes = append(routes, order.Route)
		}
	}

	return &domain.Snapshot{
		Drivers: drivers,
		Routes:  routes,
		Orders:  orders,
	}, nil
}

func loadDrivers(ctx context.Context, tx *sql.Tx, limit int) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE is_active ORDER BY id LIMIT $1`

	rows, err := tx.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]*domain.Driver, 0, limit)
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}

	return drivers, rows.Err()
}

// 订单引用的路线即使已停用也要带上，否则这些订单永远无法被模拟
func loadPendingOrders(ctx context.Context, tx *sql.Tx) ([]*domain.Order, error) {
	query := `
		SELECT
			o.id, o.code, o.value, o.route_id, o.delivery_deadline, o.status,
			o.customer_address, o.customer_phone, o.created_at, o.version,
			r.id, r.code, r.distance_km, r.traffic_level, r.base_time_minutes,
			r.description, r.is_active, r.created_at, r.version
		FROM orders o
		JOIN routes r ON r.id = o.route_id
		WHERE o.status = 'pending'
		ORDER BY o.id
	`

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// 同一条路线只保留一个对象
	routes := make(map[int64]*domain.Route)
	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order := &domain.Order{}
		route := &domain.Route{}
		dst := []any{
			&order.ID, &order.Code, &order.Value, &order.RouteID, &order.DeliveryDeadline, &order.Status,
			&order.CustomerAddress, &order.CustomerPhone, &order.CreatedAt, &order.Version,
			&route.ID, &route.Code, &route.DistanceKm, &route.TrafficLevel, &route.BaseTimeMinutes,
			&route.Description, &route.IsActive, &route.CreatedAt, &route.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if existing, ok := routes[route.ID]; ok {
			route = existing
		} else {
			routes[route.ID] = route
		}
		order.Route = route
		orders = append(orders, order)
	}

	return orders, rows.Err()
}
