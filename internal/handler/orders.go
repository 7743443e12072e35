package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

func (h *Handler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if err := h.validate.Var(status, "omitempty,oneof=pending delivered late"); err != nil {
		h.errorResponse(w, r, "订单状态无效")
		return
	}

	orders, err := h.repository.GetAllOrders(domain.OrderStatus(status))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取订单成功", orders)
}

// 订单只能挂在在职的路线上
func (h *Handler) checkRouteActive(w http.ResponseWriter, r *http.Request, routeID int64) bool {
	route, err := h.repository.GetRouteByID(routeID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "路线不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return false
	}

	if !route.IsActive {
		h.errorResponse(w, r, "路线已被停用")
		return false
	}

	return true
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code             string    `json:"code" validate:"required,ordercode"`
		Value            float64   `json:"value" validate:"gt=0"`
		RouteID          int64     `json:"routeID" validate:"required,gt=0"`
		DeliveryDeadline time.Time `json:"deliveryDeadline" validate:"required"`
		CustomerAddress  string    `json:"customerAddress" validate:"max=200"`
		CustomerPhone    string    `json:"customerPhone" validate:"omitempty,phone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !h.checkRouteActive(w, r, req.RouteID) {
		return
	}

	order := &domain.Order{
		Code:             req.Code,
		Value:            req.Value,
		RouteID:          req.RouteID,
		DeliveryDeadline: req.DeliveryDeadline,
		CustomerAddress:  req.CustomerAddress,
		CustomerPhone:    req.CustomerPhone,
	}

	if err := h.repository.CreateOrder(order); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "orders_code_key":
				h.errorResponse(w, r, "订单编号已存在")
			case "orders_route_id_fkey":
				h.errorResponse(w, r, "路线不存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建订单成功", order)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order := r.Context().Value(OrderCtx).(*domain.Order)

	h.successResponse(w, r, "获取订单成功", order)
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	order := r.Context().Value(OrderCtx).(*domain.Order)

	if order.Status != domain.OrderStatusPending {
		h.errorResponse(w, r, "只能修改待处理的订单")
		return
	}

	var req struct {
		Value            *float64   `json:"value" validate:"omitempty,gt=0"`
		RouteID          *int64     `json:"routeID" validate:"omitempty,gt=0"`
		DeliveryDeadline *time.Time `json:"deliveryDeadline"`
		CustomerAddress  *string    `json:"customerAddress" validate:"omitempty,max=200"`
		CustomerPhone    *string    `json:"customerPhone" validate:"omitempty,phone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Value != nil {
		order.Value = *req.Value
	}
	if req.RouteID != nil && *req.RouteID != order.RouteID {
		if !h.checkRouteActive(w, r, *req.RouteID) {
			return
		}
		order.RouteID = *req.RouteID
	}
	if req.DeliveryDeadline != nil {
		order.DeliveryDeadline = *req.DeliveryDeadline
	}
	if req.CustomerAddress != nil {
		order.CustomerAddress = *req.CustomerAddress
	}
	if req.CustomerPhone != nil {
		order.CustomerPhone = *req.CustomerPhone
	}

	if err := h.repository.UpdateOrder(order); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 版本不一致或订单已经被模拟处理
			h.errorResponse(w, r, "订单已被修改，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新订单成功", order)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	order := r.Context().Value(OrderCtx).(*domain.Order)

	if err := h.repository.DeleteOrder(order.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "只能删除待处理的订单")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除订单成功", nil)
}
