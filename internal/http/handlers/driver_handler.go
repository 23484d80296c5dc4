// README: Driver dashboard handlers (grouped requests, accept, rides, earnings).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carpool/internal/http/middleware"
	"carpool/internal/modules/grouping"
	"carpool/internal/modules/ride"
	"carpool/internal/types"
)

const noGroupsMessage = "no pending grouped requests"

type GroupLister interface {
	PendingGroups(ctx context.Context) ([]grouping.Group, error)
}

type RideService interface {
	AcceptGroup(ctx context.Context, cmd ride.AcceptCommand) (*ride.Ride, error)
	Complete(ctx context.Context, cmd ride.CompleteCommand) (*ride.Ride, error)
	Earnings(ctx context.Context, driverID types.ID) (ride.Earnings, error)
	ListUpcoming(ctx context.Context) ([]ride.Ride, error)
	ListByDriver(ctx context.Context, driverID types.ID) ([]ride.Ride, error)
}

type DriverHandler struct {
	groups GroupLister
	rides  RideService
}

func NewDriverHandler(groups GroupLister, rides RideService) *DriverHandler {
	return &DriverHandler{groups: groups, rides: rides}
}

type groupsResp struct {
	Groups  []grouping.Group `json:"groups"`
	Message string           `json:"message,omitempty"`
}

func (h *DriverHandler) Groups(c *gin.Context) {
	groups, err := h.groups.PendingGroups(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp := groupsResp{Groups: groups}
	if len(groups) == 0 {
		resp.Groups = []grouping.Group{}
		resp.Message = noGroupsMessage
	}
	writeJSON(c, http.StatusOK, resp)
}

type acceptGroupReq struct {
	RequestIDs []string   `json:"request_ids"`
	DepartAt   *time.Time `json:"depart_at"`
}

func (h *DriverHandler) AcceptGroup(c *gin.Context) {
	var req acceptGroupReq
	if !bindJSON(c, &req) {
		return
	}
	cmd := ride.AcceptCommand{
		DriverID:   types.ID(middleware.CallerUID(c)),
		RequestIDs: make([]types.ID, len(req.RequestIDs)),
	}
	for i, id := range req.RequestIDs {
		cmd.RequestIDs[i] = types.ID(id)
	}
	if req.DepartAt != nil {
		cmd.DepartAt = *req.DepartAt
	}
	r, err := h.rides.AcceptGroup(c.Request.Context(), cmd)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, r)
}

func (h *DriverHandler) Earnings(c *gin.Context) {
	e, err := h.rides.Earnings(c.Request.Context(), types.ID(middleware.CallerUID(c)))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, e)
}

func (h *DriverHandler) Rides(c *gin.Context) {
	list, err := h.rides.ListByDriver(c.Request.Context(), types.ID(middleware.CallerUID(c)))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if list == nil {
		list = []ride.Ride{}
	}
	writeJSON(c, http.StatusOK, gin.H{"rides": list})
}

type completeReq struct {
	FinalFare int64 `json:"final_fare"`
}

func (h *DriverHandler) Complete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing ride id")
		return
	}
	var req completeReq
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	r, err := h.rides.Complete(c.Request.Context(), ride.CompleteCommand{
		RideID:    types.ID(id),
		DriverID:  types.ID(middleware.CallerUID(c)),
		FinalFare: req.FinalFare,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, r)
}

func (h *DriverHandler) Upcoming(c *gin.Context) {
	list, err := h.rides.ListUpcoming(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if list == nil {
		list = []ride.Ride{}
	}
	writeJSON(c, http.StatusOK, gin.H{"rides": list})
}
