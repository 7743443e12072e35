package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

const orderColumns = `id, code, value, route_id, delivery_deadline, status, assigned_driver_id, delivery_time_minutes, profit, customer_address, customer_phone, created_at, version`

func scanOrder(row rowScanner) (*domain.Order, error) {
	order := &domain.Order{}

	dst := []any{
		&order.ID,
		&order.Code,
		&order.Value,
		&order.RouteID,
		&order.DeliveryDeadline,
		&order.Status,
		&order.AssignedDriverID,
		&order.DeliveryTimeMinutes,
		&order.Profit,
		&order.CustomerAddress,
		&order.CustomerPhone,
		&order.CreatedAt,
		&order.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *Repository) CreateOrder(order *domain.Order) error {
	query := `
		INSERT INTO orders (code, value, route_id, delivery_deadline, customer_address, customer_phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, profit, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{order.Code, order.Value, order.RouteID, order.DeliveryDeadline, order.CustomerAddress, order.CustomerPhone}
	dst := []any{&order.ID, &order.Status, &order.Profit, &order.CreatedAt, &order.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetOrderByID(id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanOrder(r.dbpool.QueryRowContext(ctx, query, id))
}

// GetAllOrders 按状态过滤，status 为空时返回全部订单
func (r *Repository) GetAllOrders(status domain.OrderStatus) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE $1 = '' OR status = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateOrder 只允许修改待处理的订单，已经完成模拟的订单属于历史数据
func (r *Repository) UpdateOrder(order *domain.Order) error {
	query := `
		UPDATE orders
		SET
			value = $1,
			route_id = $2,
			delivery_deadline = $3,
			customer_address = $4,
			customer_phone = $5,
			version = version + 1
		WHERE id = $6 AND version = $7 AND status = 'pending'
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{order.Value, order.RouteID, order.DeliveryDeadline, order.CustomerAddress, order.CustomerPhone, order.ID, order.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&order.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteOrder(id int64) error {
	query := `DELETE FROM orders WHERE id = $1 AND status = 'pending'`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// CountOrdersByStatus 用于健康检查
func (r *Repository) CountOrdersByStatus(ctx context.Context, status domain.OrderStatus) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	count := 0
	if err := r.dbpool.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE status = $1`, string(status)).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
