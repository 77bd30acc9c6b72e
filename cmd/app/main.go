package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightdb/api"
	"github.com/Domenick1991/flightdb/config"
	"github.com/Domenick1991/flightdb/internal/bootstrap"
	"github.com/Domenick1991/flightdb/internal/cache"
	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/Domenick1991/flightdb/internal/kafka"
	"github.com/Domenick1991/flightdb/internal/logging"
	"github.com/Domenick1991/flightdb/internal/metrics"
	"github.com/Domenick1991/flightdb/internal/repository"
	"github.com/Domenick1991/flightdb/internal/service/dashboard"
	"github.com/Domenick1991/flightdb/internal/service/listing"
	"github.com/Domenick1991/flightdb/internal/session"
	"github.com/Domenick1991/flightdb/internal/web"
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
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	redisClient := cache.NewRedisClient(cfg.Redis)
	defer redisClient.Close()
	listCache := cache.NewRedisCache(redisClient, time.Duration(cfg.Cache.ListTTLSeconds)*time.Second)
	sessions := session.NewManager(
		session.NewRedisStorage(redisClient, time.Duration(cfg.Session.TTLHours)*time.Hour),
		logger,
	)

	producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		logger.Warn().Err(err).Msg("kafka unavailable; record events will be dropped until it recovers")
	}

	opts := listing.Options{
		Cache:    listCache,
		Producer: producer,
		Topic:    cfg.Kafka.RecordsTopic,
		Logger:   logger,
	}
	views := web.Views{
		Flights:  listing.NewView(domain.TableFlight, repository.NewFlightRepository(pool), opts),
		Airlines: listing.NewView(domain.TableAirline, repository.NewAirlineRepository(pool), opts),
		Airports: listing.NewView(domain.TableAirport, repository.NewAirportRepository(pool), opts),
		Bookings: listing.NewView(domain.TableBooking, repository.NewBookingRepository(pool), opts),
	}
	catalog := listing.NewCatalog(
		views.Airlines,
		views.Airports,
		views.Flights,
		listing.NewView(domain.TablePassenger, repository.NewPassengerRepository(pool), opts),
		views.Bookings,
		listing.NewView(domain.TableTicket, repository.NewTicketRepository(pool), opts),
		listing.NewView(domain.TableBaggageAllowance, repository.NewBaggageAllowanceRepository(pool), opts),
	)

	counter := repository.NewCounter(pool)

	deps := bootstrap.Deps{
		Config:    cfg,
		Logger:    logger,
		Views:     views,
		Catalog:   catalog,
		Counter:   counter,
		Dashboard: dashboard.NewService(counter, logger),
		Sessions:  sessions,
		Checks: map[string]api.Check{
			"postgres": pool.Ping,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
			"kafka": producer.CheckConnection,
		},
	}

	if err := bootstrap.Run(ctx, deps); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
