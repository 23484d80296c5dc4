// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"carpool/internal/config"
	"carpool/internal/events"
	httptransport "carpool/internal/http"
	"carpool/internal/http/handlers"
	"carpool/internal/infra"
	"carpool/internal/maps"
	"carpool/internal/modules/account"
	"carpool/internal/modules/grouping"
	"carpool/internal/modules/payment"
	"carpool/internal/modules/pricing"
	"carpool/internal/modules/request"
	"carpool/internal/modules/ride"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	infra.SetupLogger(cfg.Log.Level, cfg.Log.File)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.AutoMigrate {
		if err := infra.WaitForDB(cfg.DB.DSN, 10, 2*time.Second); err != nil {
			logrus.Fatal(err)
		}
		if err := infra.Migrate(cfg.DB.DSN, cfg.DB.MigrationsPath); err != nil {
			logrus.Fatal(err)
		}
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logrus.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(ctx, cfg.Redis.Addr)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// tokens from /api/auth/login are checked first, then Firebase ID tokens
	var (
		tokens      account.TokenIssuer
		jwtVerifier infra.TokenVerifier
		fbVerifier  infra.TokenVerifier
	)
	if cfg.Auth.JWTSecret != "" {
		jwtManager, err := infra.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if err != nil {
			logrus.Fatal(err)
		}
		tokens, jwtVerifier = jwtManager, jwtManager
	}
	if cfg.Auth.FirebaseProjectID != "" {
		fbVerifier, err = infra.NewFirebaseVerifier(ctx, cfg.Auth.FirebaseProjectID, cfg.Auth.FirebaseCredentials)
		if err != nil {
			logrus.Fatalf("firebase init: %v", err)
		}
	}
	verifier := infra.ChainVerifier(jwtVerifier, fbVerifier)

	var publisher events.Publisher = events.Nop{}
	if cfg.Events.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			logrus.Fatal(err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	fallbackModel := pricing.FromConfig(cfg.Fare)
	pricingSvc := pricing.NewService(pricing.NewStore(dbPool), fallbackModel)

	var (
		routes   handlers.Router
		resolver grouping.DistanceResolver
	)
	if cfg.Routing.GoogleMapsKey != "" {
		routeSvc, err := maps.NewRouteService(cfg.Routing.GoogleMapsKey, cfg.Routing.Region, cfg.Routing.AddressSuffix)
		if err != nil {
			logrus.Fatal(err)
		}
		routes = routeSvc
		resolver = maps.NewDistanceCache(routeSvc, redisClient, cfg.Routing.CacheTTL)
	} else {
		logrus.Info("routing: no maps key configured, groups are priced at the fallback distance")
	}

	requestSvc := request.NewService(request.NewStore(dbPool), publisher)
	groupingSvc := grouping.NewService(requestSvc, pricingSvc, resolver, cfg.Grouping.Normalize)
	rideSvc := ride.NewService(ride.NewStore(dbPool), groupingSvc, publisher, cfg.Fare.Currency)
	paymentSvc := payment.NewService(payment.NewStore(dbPool), publisher, cfg.Fare.Currency)
	accountSvc := account.NewService(account.NewStore(dbPool), tokens)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Verifier: verifier,
		Accounts: accountSvc,
		Requests: requestSvc,
		Groups:   groupingSvc,
		Rides:    rideSvc,
		Payments: paymentSvc,
		Fares:    pricingSvc,
		Routes:   routes,
	})

	server := httptransport.NewServer(cfg.HTTP.Addr, router)
	if err := httptransport.Run(ctx, server); err != nil {
		logrus.Fatal(err)
	}
}
