package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightdb/config"
	"github.com/Domenick1991/flightdb/internal/audit"
	"github.com/Domenick1991/flightdb/internal/kafka"
	"github.com/Domenick1991/flightdb/internal/logging"
	"github.com/Domenick1991/flightdb/internal/metrics"
	"github.com/Domenick1991/flightdb/internal/repository"
	"github.com/Domenick1991/flightdb/internal/service/dashboard"
	"github.com/jackc/pgx/v5/pgxpool"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("load config")
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		zlog.Fatal().Err(err).Msg("init logger")
	}
	if closer != nil {
		defer closer.Close()
	}
	logger = logger.With().Str("process", "worker").Logger()
	metrics.Register()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	stats := dashboard.NewService(repository.NewCounter(pool), logger)
	sink := audit.NewSink(logger)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.RecordsTopic)
	defer consumer.Close()

	go func() {
		if err := consumer.Consume(ctx, kafka.RecordEventHandler(logger, sink.Record)); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("consumer stopped")
		}
	}()

	statsTicker := time.NewTicker(time.Duration(cfg.Worker.StatsIntervalSeconds) * time.Second)
	defer statsTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-statsTicker.C:
			event := logger.Info()
			for _, s := range stats.Stats(ctx) {
				if s.Ready {
					event = event.Int64(string(s.Table), s.Value)
				}
			}
			for table, n := range sink.Counts() {
				event = event.Int("events_"+string(table), n)
			}
			event.Msg("dashboard summary")
		case s := <-sig:
			logger.Info().Str("signal", s.String()).Msg("shutting down")
			return
		}
	}
}
