package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budgee-insights/src/api"
	"budgee-insights/src/config"
	"budgee-insights/src/db"
	dbsql "budgee-insights/src/db/sql"
	"budgee-insights/src/logger"
	"budgee-insights/src/paycheck"
	plaidsync "budgee-insights/src/plaid"
	"budgee-insights/src/service"
	"budgee-insights/src/util"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	l := logger.New(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		l.Fatal().Err(err).Msg("DB connection failed")
	}
	defer pool.Close()
	if err := dbsql.Migrate(ctx, pool); err != nil {
		l.Fatal().Err(err).Msg("DB migration failed")
	}

	cache, err := db.NewCache(cfg.CacheMaxCost, cfg.CacheTTL)
	if err != nil {
		l.Fatal().Err(err).Msg("cache setup failed")
	}
	defer cache.Close()

	plaidAPI, err := plaidsync.NewPlaidClient(cfg.PlaidClientID, cfg.PlaidSecret, cfg.PlaidEnv)
	if err != nil {
		l.Fatal().Err(err).Msg("plaid client setup failed")
	}

	svc := service.New(dbsql.NewStore(pool), cache, service.Options{
		LookbackMonths: cfg.AnalysisLookbackMonths,
		Paycheck: paycheck.Options{
			MinAmount:      cfg.PaycheckMinAmount,
			Tolerance:      cfg.PaycheckAmountTolerance,
			MinOccurrences: cfg.PaycheckMinOccurrences,
		},
		AllocationHorizon: cfg.AllocationHorizon,
	})

	router := api.NewRouter(api.Deps{
		Pool:            pool,
		Service:         svc,
		Plaid:           plaidsync.NewClient(plaidAPI),
		Verifier:        util.NewVerifier(util.PlaidKeyFetcher(plaidAPI)),
		Logger:          l,
		JWTSecret:       cfg.JWTSecret,
		CORSOrigins:     cfg.CORSOrigins,
		PlaidWebhookURL: cfg.PlaidWebhookURL,
		ReadOnly:        cfg.ReadOnly,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	l.Info().Str("port", cfg.Port).Str("plaid_env", cfg.PlaidEnv).Bool("read_only", cfg.ReadOnly).Msg("API server running")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Fatal().Err(err).Msg("server failed")
	}
}
