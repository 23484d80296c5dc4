// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/http/handlers"
	"carpool/internal/http/middleware"
	"carpool/internal/infra"
)

const (
	roleRider  = "rider"
	roleDriver = "driver"
)

type RouterDeps struct {
	Verifier infra.TokenVerifier
	Accounts handlers.AccountService
	Requests handlers.RequestService
	Groups   handlers.GroupLister
	Rides    handlers.RideService
	Payments handlers.PaymentService
	Fares    handlers.Quoter
	Routes   handlers.Router // optional
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")

	authHandler := handlers.NewAuthHandler(deps.Accounts)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("", middleware.Auth(deps.Verifier))

	fareHandler := handlers.NewFareHandler(deps.Routes, deps.Fares)
	authed.POST("/fare/quote", fareHandler.Quote)

	rider := authed.Group("", middleware.RequireRole(roleRider))
	requestHandler := handlers.NewRequestHandler(deps.Requests, deps.Routes, deps.Fares)
	rider.POST("/requests", requestHandler.Create)
	rider.GET("/requests/mine", requestHandler.ListMine)
	rider.POST("/requests/:id/cancel", requestHandler.Cancel)

	paymentHandler := handlers.NewPaymentHandler(deps.Payments)
	rider.POST("/payments", paymentHandler.Create)
	rider.GET("/payments/mine", paymentHandler.ListMine)

	driver := authed.Group("", middleware.RequireRole(roleDriver))
	driverHandler := handlers.NewDriverHandler(deps.Groups, deps.Rides)
	driver.GET("/driver/groups", driverHandler.Groups)
	driver.POST("/driver/groups/accept", driverHandler.AcceptGroup)
	driver.GET("/driver/earnings", driverHandler.Earnings)
	driver.GET("/driver/rides", driverHandler.Rides)
	driver.POST("/rides/:id/complete", driverHandler.Complete)

	authed.GET("/rides/upcoming", driverHandler.Upcoming)

	return r
}
