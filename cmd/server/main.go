package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"transparency/internal/app"
	"transparency/internal/cache"
	"transparency/internal/config"
	"transparency/internal/logging"
	"transparency/internal/questions"
	"transparency/internal/service"
	"transparency/internal/transport/rest"
	"transparency/internal/transport/ws"

	"golang.org/x/sync/errgroup"
)

// @title Product Transparency API
// @version 1.0
// @description Transparency scoring, follow-up questions and reports for consumer products
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		logging.Log.WithError(err).Fatal("server failed")
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return err
	}
	logging.SetFormat(cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Question provider
	selector, err := questions.NewSelectorFromConfig(cfg.AI)
	if err != nil {
		return err
	}
	logging.Log.WithField("provider", selector.Provider()).Info("Question provider ready")
	if cfg.AI.ResolvedProvider() == config.ProviderGemini {
		logging.Log.WithField("model", cfg.AI.Model).Info("Gemini API key configured")
	}

	// Stores
	store, err := app.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	rdb, err := app.ConnectRedis(ctx, cfg.RedisAddr())
	if err != nil {
		return err
	}
	defer rdb.Close()

	// Initialize WebSocket hub
	wsHub := ws.NewHub()

	// Initialize services
	authSvc := service.NewAuthService(store.Users, cfg.JWTSecret)
	productSvc := service.NewProductService(store.Products)
	reportSvc := service.NewReportService(store.Reports)
	sessionSvc := service.NewSessionService(cache.NewSessionCache(rdb, cfg.SessionTTL), selector, reportSvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	sessionSvc.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		AuthService:    authSvc,
		ProductService: productSvc,
		ReportService:  reportSvc,
		SessionService: sessionSvc,
		Selector:       selector,
		WSHub:          wsHub,
		CORS:           cfg.CORS,
		StoreName:      store.Store,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Log.WithField("addr", srv.Addr).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logging.Log.Info("Server exited")
	return nil
}
