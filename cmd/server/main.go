package main

import (
	"database/sql"
	"log"
	"net/http"

	"aloeherbal-be/internal/cart"
	"aloeherbal-be/internal/config"
	"aloeherbal-be/internal/db"
	"aloeherbal-be/internal/esewa"
	"aloeherbal-be/internal/logger"
	"aloeherbal-be/internal/middleware"
	"aloeherbal-be/internal/payment"
	"aloeherbal-be/internal/payment/verify"
)

// Indirections for testing
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv, cfg.Verbose)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	log.Printf("payment server running at http://localhost:%s/", cfg.AppPort)
	return startServerFunc(":"+cfg.AppPort, router)
}

func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo)

	sessionRepo := payment.NewRepository(database)

	client := esewa.NewClient(
		cfg.EsewaBaseURL,
		cfg.EsewaFormURL,
		cfg.EsewaProductCode,
		cfg.EsewaSecretKey,
		cfg.SuccessURL,
		cfg.FailureURL,
	)

	processor := payment.NewEsewaProcessor(client, cartSvc, sessionRepo, cfg.VerifyCallbackSignature)
	verifyHandler := verify.NewHandler(processor, sessionRepo)

	return setupRouter(cfg, verifyHandler)
}

func setupRouter(cfg *config.Config, verifyHandler *verify.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("/payments/verify", verifyHandler.VerifyHandler)

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)
	mux.Handle("/payments/status", requireAuth(http.HandlerFunc(verifyHandler.StatusHandler)))

	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)
	return handler
}
