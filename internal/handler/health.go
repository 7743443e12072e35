package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.repository.Ping(r.Context()); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 顺便返回待处理订单数，方便运维判断下一次模拟是否有意义
	pending, err := h.repository.CountOrdersByStatus(r.Context(), domain.OrderStatusPending)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "服务正常", map[string]any{
		"environment":   h.config.Environment,
		"pendingOrders": pending,
	})
}
