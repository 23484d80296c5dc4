// README: Rider request handlers for create/list/cancel.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/http/middleware"
	"carpool/internal/modules/request"
	"carpool/internal/types"
)

type RequestService interface {
	Create(ctx context.Context, cmd request.CreateCommand) (*request.RideRequest, error)
	ListByRider(ctx context.Context, riderID types.ID) ([]request.RideRequest, error)
	Cancel(ctx context.Context, cmd request.CancelCommand) error
}

type RequestHandler struct {
	requests RequestService
	routes   Router
	fares    Quoter
}

// NewRequestHandler returns a request handler. fares may be nil, in which case created
// requests are returned without a fare quote. routes may be nil; quotes then use the
// fallback distance.
func NewRequestHandler(svc RequestService, routes Router, fares Quoter) *RequestHandler {
	return &RequestHandler{requests: svc, routes: routes, fares: fares}
}

type createRequestReq struct {
	Pickup        string `json:"pickup"`
	Destination   string `json:"destination"`
	SeatsRequired int    `json:"seats_required"`
}

type createRequestResp struct {
	Request *request.RideRequest `json:"request"`
	Quote   *quoteResp           `json:"quote,omitempty"`
}

func (h *RequestHandler) Create(c *gin.Context) {
	var req createRequestReq
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.requests.Create(c.Request.Context(), request.CreateCommand{
		RiderID:       types.ID(middleware.CallerUID(c)),
		Pickup:        req.Pickup,
		Destination:   req.Destination,
		SeatsRequired: req.SeatsRequired,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp := createRequestResp{Request: r}
	if h.fares != nil {
		q := quoteRoute(c.Request.Context(), h.routes, h.fares, r.Pickup, r.Destination)
		resp.Quote = &q
	}
	writeJSON(c, http.StatusCreated, resp)
}

func (h *RequestHandler) ListMine(c *gin.Context) {
	list, err := h.requests.ListByRider(c.Request.Context(), types.ID(middleware.CallerUID(c)))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if list == nil {
		list = []request.RideRequest{}
	}
	writeJSON(c, http.StatusOK, gin.H{"requests": list})
}

func (h *RequestHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing request id")
		return
	}
	err := h.requests.Cancel(c.Request.Context(), request.CancelCommand{
		RequestID: types.ID(id),
		RiderID:   types.ID(middleware.CallerUID(c)),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"request_id": id, "status": request.StatusCancelled})
}
