package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "petcare-wallet/docs"
	"petcare-wallet/internal/broker"
	"petcare-wallet/internal/cache"
	"petcare-wallet/internal/config"
	"petcare-wallet/internal/database"
	"petcare-wallet/internal/repositories/kafkarepo"
	"petcare-wallet/internal/repositories/postgresrepo"
	"petcare-wallet/internal/repositories/redisrepo"
	"petcare-wallet/internal/services"
	"petcare-wallet/internal/transport/http/handler"
	"petcare-wallet/internal/transport/ws"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type API struct {
	cfg        *config.Config
	logger     *zap.Logger
	httpServer *http.Server
	redisRepo  *redisrepo.WalletRepository
	hub        *ws.Hub
}

// @title Pet-Care Marketplace Wallet API
// @version 1.0
// @description Wallet and transaction ledger service for the pet-care marketplace.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func NewAPI() (*API, error) {
	a := new(API)

	a.cfg = config.New()

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	a.logger = logger

	db, err := database.NewPostgres(a.cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	redis, err := cache.NewRedis(a.cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("cache connection error: %w", err)
	}

	kafka, err := broker.NewKafkaWriter(a.cfg.Kafka)
	if err != nil {
		return nil, fmt.Errorf("broker connection error: %w", err)
	}

	postgresRepo := postgresrepo.NewWalletRepository(db)
	a.redisRepo = redisrepo.NewWalletRepository(redis)
	kafkaRepo := kafkarepo.NewOperationRepository(kafka)

	walletService := services.NewWalletService(postgresRepo, a.redisRepo, kafkaRepo, logger)

	a.hub = ws.NewHub(logger)

	mux := http.NewServeMux()
	handler.NewWallet(mux, walletService)
	ws.NewHandler(mux, a.hub)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	return a, nil
}

func (a *API) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.pumpInvalidations(ctx)
	go a.hub.Heartbeat(30 * time.Second)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		a.logger.Info("received shutdown signal")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown error", zap.Error(err))
		}
	}()

	a.logger.Info("starting http server", zap.String("addr", a.cfg.Server.Port))
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// pumpInvalidations forwards walletUpdated messages from the Redis channel
// to the WebSocket hub. The worker publishes after every committed batch.
func (a *API) pumpInvalidations(ctx context.Context) {
	pubsub := a.redisRepo.SubscribeWalletUpdated(ctx)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			a.hub.Notify(msg.Payload)
		}
	}
}
