package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/centpay/paygate/handler"
	"github.com/centpay/paygate/infra/config"
	"github.com/centpay/paygate/infra/logger"
	"github.com/centpay/paygate/infra/middle"
	"github.com/centpay/paygate/infra/opensearch"
	"github.com/centpay/paygate/infra/response"
	"github.com/centpay/paygate/provider"
	"github.com/centpay/paygate/router"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	appConfig := config.GetAppConfig()
	validate := config.App().Validator

	var osLogger *opensearch.Logger
	if appConfig.EnableLogging {
		osClient, err := opensearch.NewClient(appConfig)
		if err != nil {
			log.Printf("Warning: OpenSearch logging disabled: %v", err)
		} else {
			osLogger = opensearch.NewLogger(osClient)
		}
	}
	logger.InitGlobalLogger(osLogger)

	providerConfig := config.NewProviderConfig()
	providerConfig.LoadFromEnv()

	gatewayService := provider.NewGatewayService()
	for _, name := range providerConfig.GetAvailableProviders() {
		cfg, err := providerConfig.GetConfig(name)
		if err != nil {
			logger.Warn("Skipping gateway with unreadable config", logger.LogContext{Gateway: name})
			continue
		}
		if err := gatewayService.AddGateway(name, cfg); err != nil {
			logger.Error("Failed to initialize gateway", err, logger.LogContext{Gateway: name})
			continue
		}
		logger.Info("Gateway initialized", logger.LogContext{Gateway: name})
	}
	if names := gatewayService.GatewayNames(); len(names) > 0 {
		_ = gatewayService.SetDefaultGateway(names[0])
	} else {
		logger.Warn("No gateways configured, payment endpoints will reject requests", logger.LogContext{})
	}

	paymentHandler := handler.NewPaymentHandler(gatewayService, validate)
	healthHandler := handler.NewHealthHandler(gatewayService.GatewayNames)

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middle.SecurityHeadersMiddleware())
	r.Use(middle.PanicRecoveryMiddleware())
	r.Use(middle.RateLimitMiddleware(middle.NewRateLimiter()))
	if osLogger != nil {
		r.Use(middle.GatewayLoggingMiddleware(osLogger))
	}

	r.Get("/health", healthHandler.Health)
	r.Route("/v1", func(r chi.Router) {
		router.Routes(r, paymentHandler)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "Not found", nil)
	})

	server := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Server starting", logger.LogContext{Fields: map[string]any{"port": appConfig.Port}})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down server", logger.LogContext{})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
