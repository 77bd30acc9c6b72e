package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/flightdb/api"
	"github.com/Domenick1991/flightdb/config"
	"github.com/Domenick1991/flightdb/docs"
	recordsapi "github.com/Domenick1991/flightdb/internal/api/records_service_api"
	"github.com/Domenick1991/flightdb/internal/middleware"
	"github.com/Domenick1991/flightdb/internal/repository"
	"github.com/Domenick1991/flightdb/internal/service/dashboard"
	"github.com/Domenick1991/flightdb/internal/service/listing"
	"github.com/Domenick1991/flightdb/internal/session"
	"github.com/Domenick1991/flightdb/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Deps is everything the servers route to.
type Deps struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Views     web.Views
	Catalog   *listing.Catalog
	Counter   repository.Counter
	Dashboard dashboard.DashboardUseCase
	Sessions  *session.Manager
	Checks    map[string]api.Check
}

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
	gatewayCC  *grpc.ClientConn
}

// Run starts gRPC and HTTP (console, JSON API, grpc-gateway, swagger, metrics)
// servers and blocks until context is canceled or a server fails.
func Run(ctx context.Context, deps Deps) error {
	s, err := newServers(deps)
	if err != nil {
		return err
	}
	defer s.gatewayCC.Close()

	logger := deps.Logger.With().Str("component", "bootstrap").Logger()
	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", deps.Config.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", deps.Config.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()
	logger.Info().Str("address", deps.Config.GRPC.Address).Msg("gRPC listening")

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logger.Info().Str("address", deps.Config.HTTP.Address).Msg("HTTP listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(deps Deps) (*Servers, error) {
	grpcSrv := grpc.NewServer(grpc.ChainUnaryInterceptor(recordsapi.LoggingUnaryInterceptor(deps.Logger)))
	recordsapi.RegisterRecordsServiceServer(grpcSrv, recordsapi.NewServer(deps.Catalog, deps.Counter, deps.Logger))

	conn, err := grpc.NewClient(deps.Config.GRPC.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial gateway client: %w", err)
	}
	gateway, err := recordsapi.NewGateway(recordsapi.NewRecordsServiceClient(conn))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("register records gateway: %w", err)
	}

	router, err := NewRouter(deps, gateway)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	httpSrv := &http.Server{
		Addr:              deps.Config.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: httpSrv,
		gatewayCC:  conn,
	}, nil
}

// NewRouter assembles the gin engine. gateway serves /v1/*.
func NewRouter(deps Deps, gateway http.Handler) (*gin.Engine, error) {
	cfg := deps.Config
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestLogger(deps.Logger), middleware.Metrics())

	limiter := middleware.NewRateLimiter(cfg.RateLimit, deps.Logger)
	sessions := middleware.Session(deps.Sessions, cfg.Session)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api.NewHealthHandler(deps.Checks).Register(engine)
	engine.GET("/docs/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", docs.OpenAPI)
	})
	engine.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/openapi.json"))))

	console := web.NewConsole(deps.Views, deps.Dashboard, deps.Logger)
	if err := console.Register(engine, engine.Group("", sessions, limiter.Mutations())); err != nil {
		return nil, err
	}

	v1 := engine.Group("/api/v1", sessions, limiter.Mutations())
	api.NewRecordHandler(deps.Catalog).Register(v1)
	api.NewDashboardHandler(deps.Dashboard).Register(v1)
	api.NewSessionHandler().Register(v1)

	engine.Any("/v1/*path", limiter.Mutations(), gin.WrapH(gateway))

	return engine, nil
}
