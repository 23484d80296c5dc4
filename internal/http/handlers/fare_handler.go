// README: Fare quote handler; real route distance when routing is configured.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"carpool/internal/maps"
	"carpool/internal/modules/pricing"
)

type Router interface {
	Route(ctx context.Context, origin, destination string) (maps.Route, error)
}

type Quoter interface {
	Quote(ctx context.Context, distanceKm float64) pricing.Quote
}

type FareHandler struct {
	routes Router
	fares  Quoter
}

// NewFareHandler returns a fare handler. routes may be nil; quotes then use the fallback distance.
func NewFareHandler(routes Router, fares Quoter) *FareHandler {
	return &FareHandler{routes: routes, fares: fares}
}

type quoteReq struct {
	Pickup      string `json:"pickup"`
	Destination string `json:"destination"`
}

type quoteResp struct {
	pricing.Quote
	Routed          bool            `json:"routed"`
	DurationSeconds int64           `json:"duration_seconds,omitempty"`
	Path            json.RawMessage `json:"path,omitempty"`
}

func (h *FareHandler) Quote(c *gin.Context) {
	var req quoteReq
	if !bindJSON(c, &req) {
		return
	}
	pickup, dest := strings.TrimSpace(req.Pickup), strings.TrimSpace(req.Destination)
	if pickup == "" || dest == "" {
		writeError(c, http.StatusBadRequest, "pickup and destination are required")
		return
	}

	writeJSON(c, http.StatusOK, quoteRoute(c.Request.Context(), h.routes, h.fares, pickup, dest))
}

// quoteRoute prices the routed distance, or the fallback distance when routes is nil or fails.
func quoteRoute(ctx context.Context, routes Router, fares Quoter, pickup, dest string) quoteResp {
	var resp quoteResp
	if routes != nil {
		route, err := routes.Route(ctx, pickup, dest)
		if err == nil && route.DistanceKm > 0 {
			resp.Quote = fares.Quote(ctx, route.DistanceKm)
			resp.Routed = true
			resp.DurationSeconds = int64(route.Duration.Seconds())
			if path, err := maps.LineStringGeoJSON(route.Path); err == nil {
				resp.Path = path
			}
			return resp
		}
		logrus.WithError(err).WithFields(logrus.Fields{"pickup": pickup, "destination": dest}).
			Warn("fare: routing failed, quoting fallback distance")
	}
	resp.Quote = fares.Quote(ctx, 0)
	return resp
}
