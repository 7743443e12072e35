package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusLate      OrderStatus = "late"
)

// 高价值订单阈值（卢比）
const HighValueThreshold = 1000

type Order struct {
	ID                  int64       `json:"id"`
	Code                string      `json:"code"`
	Value               float64     `json:"value"`
	RouteID             int64       `json:"routeID"`
	Route               *Route      `json:"route,omitempty"` // 仅在快照中填充
	DeliveryDeadline    time.Time   `json:"deliveryDeadline"`
	Status              OrderStatus `json:"status"`
	AssignedDriverID    *int64      `json:"assignedDriverID"`
	DeliveryTimeMinutes *int        `json:"deliveryTimeMinutes"`
	Profit              float64     `json:"profit"`
	CustomerAddress     string      `json:"customerAddress"`
	CustomerPhone       string      `json:"customerPhone"`
	CreatedAt           time.Time   `json:"createdAt"`
	Version             int32       `json:"-"`
}

func (o *Order) IsHighValue() bool {
	return o.Value > HighValueThreshold
}
