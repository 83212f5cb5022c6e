package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"folio-service/internal/config"
	hrest "folio-service/internal/handler/rest"
	"folio-service/internal/pub"
	"folio-service/internal/repository"
	"folio-service/internal/router"
	"folio-service/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Server owns every long-lived resource: the connection pool, the optional
// redis and kafka clients, and the HTTP listener. Components receive their
// dependencies explicitly; there is no package-level shared state.
type Server struct {
	httpServer  *http.Server
	pool        *pgxpool.Pool
	rdb         *redis.Client
	kafkaWriter *kafka.Writer
	logger      *zap.Logger
}

func New(cfg config.AppConfig, logger *zap.Logger) (*Server, error) {
	pool, err := config.ConnectDB(logger)
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
		})
	}

	var kafkaWriter *kafka.Writer
	if len(cfg.KafkaBrokers) > 0 {
		kafkaWriter = &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		}
	}
	publisher := pub.NewPostingEventPublisher(kafkaWriter, logger)

	txRepo := repository.NewTransactionRepo(pool)
	cfRepo := repository.NewCashflowRepo(pool)
	fxRepo := repository.NewFxRateRepo(pool)
	sysRepo := repository.NewSystemRepo(pool)

	txUC := usecase.NewTransactionUsecase(txRepo, publisher, logger)
	cfUC := usecase.NewCashflowUsecase(cfRepo, publisher, logger)
	fxUC := usecase.NewFxUsecase(fxRepo, rdb, logger)

	handler := hrest.NewFolioRestHandler(
		txUC, cfUC, fxUC, sysRepo,
		cfg.PivotCcy,
		!cfg.IsProduction(),
		logger,
	)

	r := chi.NewRouter()
	router.SetupRoutes(r, handler)

	if !cfg.IsProduction() {
		logger.Info("dev routes enabled at /dev/db")
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		pool:        pool,
		rdb:         rdb,
		kafkaWriter: kafkaWriter,
		logger:      logger,
	}, nil
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then releases clients and the pool.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	if s.kafkaWriter != nil {
		if closeErr := s.kafkaWriter.Close(); closeErr != nil {
			s.logger.Warn("failed to close kafka writer", zap.Error(closeErr))
		}
	}
	if s.rdb != nil {
		if closeErr := s.rdb.Close(); closeErr != nil {
			s.logger.Warn("failed to close redis client", zap.Error(closeErr))
		}
	}
	s.pool.Close()

	return err
}
