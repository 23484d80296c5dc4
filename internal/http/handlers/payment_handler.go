// README: Rider payment handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/http/middleware"
	"carpool/internal/modules/payment"
	"carpool/internal/types"
)

type PaymentService interface {
	Create(ctx context.Context, cmd payment.CreateCommand) (*payment.Payment, error)
	ListByRider(ctx context.Context, riderID types.ID) ([]payment.Payment, error)
}

type PaymentHandler struct {
	payments PaymentService
}

func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: svc}
}

type createPaymentReq struct {
	RideID string `json:"ride_id"`
	Amount int64  `json:"amount"`
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req createPaymentReq
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.payments.Create(c.Request.Context(), payment.CreateCommand{
		RiderID: types.ID(middleware.CallerUID(c)),
		RideID:  types.ID(req.RideID),
		Amount:  req.Amount,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, p)
}

func (h *PaymentHandler) ListMine(c *gin.Context) {
	list, err := h.payments.ListByRider(c.Request.Context(), types.ID(middleware.CallerUID(c)))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if list == nil {
		list = []payment.Payment{}
	}
	writeJSON(c, http.StatusOK, gin.H{"payments": list})
}
