package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

func (h *Handler) GetAllDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.repository.GetAllDrivers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有司机成功", drivers)
}

func (h *Handler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name               string     `json:"name" validate:"required,max=50"`
		Code               string     `json:"code" validate:"required,max=20"`
		CurrentShiftHours  float64    `json:"currentShiftHours" validate:"min=0,max=24"`
		Past7DaysWorkHours [7]float64 `json:"past7DaysWorkHours" validate:"dive,min=0,max=24"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	driver := &domain.Driver{
		Name:               req.Name,
		Code:               req.Code,
		CurrentShiftHours:  req.CurrentShiftHours,
		Past7DaysWorkHours: req.Past7DaysWorkHours,
	}

	if err := h.repository.CreateDriver(driver); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "drivers_code_key":
				h.errorResponse(w, r, "司机编号已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建司机成功", driver)
}

func (h *Handler) GetDriver(w http.ResponseWriter, r *http.Request) {
	driver := r.Context().Value(DriverCtx).(*domain.Driver)

	h.successResponse(w, r, "获取司机成功", driver)
}

func (h *Handler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	driver := r.Context().Value(DriverCtx).(*domain.Driver)

	var req struct {
		Name               *string     `json:"name" validate:"omitempty,max=50"`
		CurrentShiftHours  *float64    `json:"currentShiftHours" validate:"omitempty,min=0,max=24"`
		Past7DaysWorkHours *[7]float64 `json:"past7DaysWorkHours" validate:"omitempty,dive,min=0,max=24"`
		IsActive           *bool       `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		driver.Name = *req.Name
	}
	if req.CurrentShiftHours != nil {
		driver.CurrentShiftHours = *req.CurrentShiftHours
	}
	if req.Past7DaysWorkHours != nil {
		driver.Past7DaysWorkHours = *req.Past7DaysWorkHours
	}
	if req.IsActive != nil {
		driver.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateDriver(driver); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新司机成功", driver)
}

// DeleteDriver 只是停用司机，历史模拟结果中仍然会引用它
func (h *Handler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	driver := r.Context().Value(DriverCtx).(*domain.Driver)

	if err := h.repository.DeactivateDriver(driver.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "司机已被停用")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "停用司机成功", nil)
}
