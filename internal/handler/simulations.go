package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

const maxHistoryLimit = 100

// simulateResponse 将 KPI 展开到顶层，历史记录和按 id 查询仍然返回完整的 SimulationRun
type simulateResponse struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	domain.SimulationResult
}

func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req domain.SimulationParameters

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.SaturationPolicy == "" {
		req.SaturationPolicy = domain.SaturationPolicy(h.config.Simulation.SaturationPolicy)
	}

	// availableDrivers 为 0 时应该返回“没有可用的司机”而不是参数错误，这种情况交给 runner 判断
	if req.AvailableDrivers != 0 {
		if err := h.validate.Struct(req); err != nil {
			h.badRequest(w, r, err)
			return
		}
	}

	run, err := h.runner.Run(r.Context(), req, domain.SimulationTriggerManual)
	if err != nil {
		var validationErrors validator.ValidationErrors
		switch {
		case errors.As(err, &validationErrors):
			h.badRequest(w, r, validationErrors)
		case errors.Is(err, domain.ErrInsufficientDrivers),
			errors.Is(err, domain.ErrNoPendingOrders),
			errors.Is(err, domain.ErrInvalidParameters),
			errors.Is(err, domain.ErrSnapshotStale):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.cacheRun(r, run)

	h.successResponse(w, r, "模拟完成", simulateResponse{
		ID:               run.ID,
		Timestamp:        run.CreatedAt,
		SimulationResult: run.Result,
	})
}

func (h *Handler) GetSimulationRuns(w http.ResponseWriter, r *http.Request) {
	limit := h.config.Simulation.HistoryLimit

	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		n, err := strconv.Atoi(limitParam)
		if err != nil || n < 1 {
			h.errorResponse(w, r, "limit 必须是正整数")
			return
		}
		limit = n
	}
	limit = min(limit, maxHistoryLimit)

	summaries, err := h.repository.GetSimulationRunSummaries(r.Context(), limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取模拟历史成功", summaries)
}

func (h *Handler) GetSimulationRun(w http.ResponseWriter, r *http.Request) {
	runID, err := parseIDParam(r)
	if err != nil {
		h.errorResponse(w, r, "模拟ID无效")
		return
	}

	if h.runCache != nil {
		run, ok, err := h.runCache.Get(r.Context(), runID)
		if err != nil {
			// 缓存不可用时直接查数据库
			h.logWarning(r, "读取模拟缓存失败", err)
		}
		if ok {
			h.successResponse(w, r, "获取模拟结果成功", run)
			return
		}
	}

	run, err := h.repository.GetSimulationRunByID(r.Context(), runID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "模拟记录不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.cacheRun(r, run)

	h.successResponse(w, r, "获取模拟结果成功", run)
}

func (h *Handler) cacheRun(r *http.Request, run *domain.SimulationRun) {
	if h.runCache == nil {
		return
	}
	if err := h.runCache.Set(r.Context(), run); err != nil {
		h.logWarning(r, "写入模拟缓存失败", err)
	}
}
