package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/auth"
	"tradejournal/src/handler"
	"tradejournal/src/repository"
)

func Router() chi.Router {
	r := chi.NewRouter()

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error(" \"/health error")
		}
	})

	// Everything below requires an API key
	authenticate := auth.Middleware(repository.NewUserRepository())

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		// MT5 Expert Advisor ingest (extra shared-token check inside)
		r.Post("/webhook/mt5", handler.DefaultMT5WebhookHandler())

		r.Route("/api", func(r chi.Router) {
			r.Route("/trades", func(r chi.Router) {
				r.Get("/", handler.DefaultSearchTradesHandler())
				r.Post("/", handler.DefaultCreateTradeHandler())
				r.Get("/{id}", handler.DefaultGetTradeHandler())
				r.Put("/{id}", handler.DefaultUpdateTradeHandler())
				r.Delete("/{id}", handler.DefaultDeleteTradeHandler())
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/summary", handler.DefaultSummaryHandler())
				r.Get("/equity-curve", handler.DefaultEquityCurveHandler())
				r.Get("/monthly", handler.DefaultMonthlyPerformanceHandler())
				r.Get("/day-of-week", handler.DefaultDayOfWeekHandler())
				r.Get("/asset-classes", handler.DefaultAssetClassesHandler())
				r.Get("/pairs", handler.DefaultPairsHandler())
				r.Get("/strategies", handler.DefaultStrategiesHandler())
				r.Get("/exit-reasons", handler.DefaultExitReasonsHandler())
				r.Get("/rules", handler.DefaultRulesHandler())
				r.Get("/emotions", handler.DefaultEmotionsHandler())
				r.Get("/setups", handler.DefaultSetupQualityHandler())
			})

			r.Post("/import/csv", handler.DefaultImportCSVHandler())

			r.Route("/export", func(r chi.Router) {
				r.Get("/trades.csv", handler.DefaultExportTradesCSVHandler())
				r.Get("/summary.csv", handler.DefaultExportSummaryCSVHandler())
				r.Get("/monthly.csv", handler.DefaultExportMonthlyCSVHandler())
			})

			r.Get("/risk/position-size", handler.PositionSizeHandler())
		})
	})

	return r
}

func StartServer(port string) {
	if port == "" {
		port = GetConfig().Port
	}

	// Graceful server
	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: Router(),
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
