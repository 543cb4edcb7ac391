package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/squareboat/razorpay-cashier/internal/adapters/postgres"
	"github.com/squareboat/razorpay-cashier/internal/adapters/razorpay"
	"github.com/squareboat/razorpay-cashier/internal/config"
	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	subscriptionHandler "github.com/squareboat/razorpay-cashier/internal/handlers/subscription"
	"github.com/squareboat/razorpay-cashier/internal/services/cashier"
	pkghttp "github.com/squareboat/razorpay-cashier/pkg/http"
	"github.com/squareboat/razorpay-cashier/pkg/logging"
	"github.com/squareboat/razorpay-cashier/pkg/middleware"
	"github.com/squareboat/razorpay-cashier/pkg/observability"
	"github.com/squareboat/razorpay-cashier/pkg/shutdown"
)

const poolMonitorInterval = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logging.New(cfg.Logger.Level, cfg.Logger.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	logger := logging.NewZapLogger(zapLogger)
	logger.Info("Starting razorpay cashier",
		ports.String("http_addr", listenAddr(cfg.Server.Host, cfg.Server.HTTPPort)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownMgr := shutdown.NewManager(zapLogger, cfg.Server.ShutdownTimeout)

	// Database
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.ConnectionString())
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns

	pool, err := postgres.NewPool(ctx, poolCfg, logger)
	if err != nil {
		return err
	}
	shutdownMgr.RegisterNoErr("database", pool.Close)

	if err := postgres.Migrate(ctx, pool, logger); err != nil {
		return err
	}
	postgres.StartPoolMonitoring(ctx, pool, poolMonitorInterval, logger)

	// Gateway
	gatewayCfg, secretCloser, err := razorpayConfig(ctx, cfg, zapLogger)
	if secretCloser != nil {
		shutdownMgr.RegisterNoErr("secret_manager", func() { _ = secretCloser.Close() })
	}
	if err != nil {
		return err
	}
	httpClient := pkghttp.NewHTTPClient(pkghttp.RazorpayClientConfig(), cfg.Razorpay.Timeout)
	gateway := razorpay.NewClient(gatewayCfg, httpClient, logger)

	// Service
	dbExecutor := postgres.NewDBExecutor(pool)
	service := cashier.NewService(
		dbExecutor,
		postgres.NewSubscriptionRepository(dbExecutor),
		postgres.NewInvoiceRepository(dbExecutor),
		gateway,
		cashier.Options{
			Currency:          cfg.Razorpay.Currency,
			TotalCount:        cfg.Razorpay.TotalCount,
			InvoiceExpiryDays: cfg.Razorpay.InvoiceExpiryDays,
		},
		logger,
	)

	// Health
	grpcHealth := health.NewServer()
	healthChecker := observability.NewHealthChecker(pool).WithGRPCHealth(grpcHealth)

	metricsServer := observability.StartMetricsServer(strconv.Itoa(cfg.Server.MetricsPort), healthChecker, logger)
	shutdownMgr.RegisterHTTPServer("metrics_server", metricsServer)

	// gRPC health and reflection
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(observability.UnaryServerInterceptor()))
	healthpb.RegisterHealthServer(grpcServer, grpcHealth)
	reflection.Register(grpcServer)

	listener, err := net.Listen("tcp", listenAddr(cfg.Server.Host, cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}
	go func() {
		logger.Info("gRPC health server listening", ports.String("address", listener.Addr().String()))
		if err := grpcServer.Serve(listener); err != nil {
			logger.Error("gRPC server stopped", ports.Err(err))
			cancel()
		}
	}()
	shutdownMgr.RegisterNoErr("grpc_server", func() {
		grpcHealth.Shutdown()
		grpcServer.GracefulStop()
	})

	// HTTP API
	mux := http.NewServeMux()
	subscriptionHandler.NewHandler(service, zapLogger).RegisterRoutes(mux)
	mux.HandleFunc("GET /health", healthChecker.HealthHandler())

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	shutdownMgr.RegisterNoErr("rate_limiter", rateLimiter.Shutdown)

	httpServer := &http.Server{
		Addr: listenAddr(cfg.Server.Host, cfg.Server.HTTPPort),
		Handler: middleware.Chain(mux,
			middleware.Recovery(logger),
			middleware.Logging(logger),
			observability.HTTPMiddleware,
			rateLimiter.Middleware,
			middleware.Timeout(cfg.Server.RequestTimeout),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", ports.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", ports.Err(err))
			cancel()
		}
	}()
	shutdownMgr.RegisterHTTPServer("http_server", httpServer)

	return shutdownMgr.WaitForShutdown(ctx)
}

func listenAddr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
