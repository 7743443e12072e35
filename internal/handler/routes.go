package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

func (h *Handler) GetAllRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.repository.GetAllRoutes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有路线成功", routes)
}

func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code            string  `json:"code" validate:"required,routecode"`
		DistanceKm      float64 `json:"distanceKm" validate:"gt=0"`
		TrafficLevel    string  `json:"trafficLevel" validate:"required,oneof=Low Medium High"`
		BaseTimeMinutes float64 `json:"baseTimeMinutes" validate:"gt=0"`
		Description     string  `json:"description" validate:"max=200"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	route := &domain.Route{
		Code:            req.Code,
		DistanceKm:      req.DistanceKm,
		TrafficLevel:    domain.TrafficLevel(req.TrafficLevel),
		BaseTimeMinutes: req.BaseTimeMinutes,
		Description:     req.Description,
	}

	if err := h.repository.CreateRoute(route); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "routes_code_key":
				h.errorResponse(w, r, "路线编号已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建路线成功", route)
}

func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	route := r.Context().Value(RouteCtx).(*domain.Route)

	h.successResponse(w, r, "获取路线成功", route)
}

// UpdateRoute 修改路线只影响之后的模拟，历史结果中已经记录了当时的油费和交通状况
func (h *Handler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	route := r.Context().Value(RouteCtx).(*domain.Route)

	var req struct {
		DistanceKm      *float64 `json:"distanceKm" validate:"omitempty,gt=0"`
		TrafficLevel    *string  `json:"trafficLevel" validate:"omitempty,oneof=Low Medium High"`
		BaseTimeMinutes *float64 `json:"baseTimeMinutes" validate:"omitempty,gt=0"`
		Description     *string  `json:"description" validate:"omitempty,max=200"`
		IsActive        *bool    `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.DistanceKm != nil {
		route.DistanceKm = *req.DistanceKm
	}
	if req.TrafficLevel != nil {
		route.TrafficLevel = domain.TrafficLevel(*req.TrafficLevel)
	}
	if req.BaseTimeMinutes != nil {
		route.BaseTimeMinutes = *req.BaseTimeMinutes
	}
	if req.Description != nil {
		route.Description = *req.Description
	}
	if req.IsActive != nil {
		route.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateRoute(route); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新路线成功", route)
}

func (h *Handler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	route := r.Context().Value(RouteCtx).(*domain.Route)

	if err := h.repository.DeactivateRoute(route.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "路线已被停用")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "停用路线成功", nil)
}
