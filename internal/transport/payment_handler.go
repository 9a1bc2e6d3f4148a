package transport

import (
	"net/http"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	svc order.Service
}

func NewPaymentHandler(svc order.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// MockPayment stands in for a gateway callback: the buyer reports the charge
// outcome for their own order.
func (h *PaymentHandler) MockPayment(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req mockPaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, "MockPayment", err)
		return
	}
	if req.OrderNumber == "" {
		utils.WriteJSONError(w, "orderNumber is required", http.StatusBadRequest)
		return
	}

	logger.FromCtx(r.Context()).Info("mock payment received",
		zap.String("layer", "transport"),
		zap.String("order_number", req.OrderNumber),
		zap.String("status", req.Status),
	)

	var err error
	switch strings.ToLower(req.Status) {
	case mockPaymentSucceeded:
		err = h.svc.MarkAsPaid(r.Context(), req.OrderNumber, userID)
	case mockPaymentFailed:
		err = h.svc.MarkAsFailed(r.Context(), req.OrderNumber, userID)
	default:
		utils.WriteJSONError(w, "status must be succeeded or failed", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeServiceError(w, r, "MockPayment", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}
