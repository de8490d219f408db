package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"example.com/extracurricular/internal/api"
	"example.com/extracurricular/internal/catalog"
	"example.com/extracurricular/internal/config"
	"example.com/extracurricular/internal/domain"
	"example.com/extracurricular/internal/logging"
	"example.com/extracurricular/internal/observability"
	"example.com/extracurricular/internal/outbox"
	"example.com/extracurricular/internal/registry"
	httptransport "example.com/extracurricular/internal/transport/http"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seed := catalog.Default()
	if cfg.CatalogFile != "" {
		seed, err = catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			logger.Fatal("failed to load catalog", zap.Error(err))
		}
	}
	roster := registry.NewInMemoryRegistry(seed)
	for _, a := range seed {
		observability.RecordRosterSize(a.Name, len(a.Participants))
	}

	opts := []domain.Option{domain.WithLogger(logger.Named("domain"))}

	var dispatcher *outbox.Dispatcher
	if len(cfg.KafkaBrokers) > 0 {
		producer := outbox.NewKafkaProducer(cfg.KafkaBrokers, 50*time.Millisecond, logger.Named("kafka"))
		defer producer.Close()

		queue := outbox.NewQueue(cfg.OutboxCapacity)
		dispatcher = outbox.NewDispatcher(queue, producer, cfg.RosterTopic, cfg.OutboxPollInterval, cfg.OutboxBatchSize, logger.Named("outbox"))
		go dispatcher.Start(ctx)

		opts = append(opts, domain.WithPublisher(queue))
	} else {
		logger.Info("KAFKA_BROKERS not set; roster events disabled")
	}

	service := domain.NewService(roster, opts...)

	handler := api.NewHandler(service, logger.Named("api"))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	server := httptransport.NewServer(httptransport.DefaultServerConfig(cfg.HTTPAddress), httptransport.RequestLogger(logger.Named("http"), httptransport.CORS(cfg.CORSAllowedOrigin, mux)))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("roster service listening",
			zap.String("address", cfg.HTTPAddress),
			zap.Int("activities", roster.Len()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-shutdownCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	// Stop the dispatcher only after in-flight requests have queued their events.
	cancel()
	if dispatcher != nil {
		dispatcher.Wait()
	}
}
