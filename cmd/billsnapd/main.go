package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/hanwen-zhu/billsnap/internal/common"
	"github.com/hanwen-zhu/billsnap/internal/export"
	"github.com/hanwen-zhu/billsnap/internal/parser"
	"github.com/hanwen-zhu/billsnap/internal/repository"
	"github.com/hanwen-zhu/billsnap/internal/server"
	"github.com/hanwen-zhu/billsnap/internal/upload"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slogger := slog.Default()

	// Store
	db, err := repository.Open(ctx, repository.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, slogger)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer db.Close(slogger)

	if err := db.HealthCheck(ctx, 3*time.Second, slogger); err != nil {
		log.Fatalf("store health failed: %v", err)
	}
	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatalf("migrating store: %v", err)
	}
	log.Infow("store ready", "dsn", cfg.Database.DSN)

	records := repository.NewRecordRepository(db, slogger)
	metadata := repository.NewMetadataRepository(db, slogger)

	p := parser.New(slogger, parser.Config{DefaultCurrency: cfg.Parser.DefaultCurrency})
	builder := upload.NewBuilder(cfg.Ledger, slogger)
	client := upload.NewClient(cfg.Ledger, slogger)
	svc := server.NewService(slogger, p, records, metadata, builder, client, cfg.Parser.HistoryWindow)
	exporter := export.NewService(records, slogger)

	// gRPC health + reflection, for probes and grpcurl
	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	grpcLis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		log.Fatalf("grpc listen: %v", err)
	}
	go func() {
		if err := grpcServer.Serve(grpcLis); err != nil {
			log.Fatalf("grpc serve: %v", err)
		}
	}()
	log.Infof("gRPC health serving on %s", cfg.Server.GRPCAddr)

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: server.Router(svc, exporter),
	}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()
	log.Infof("HTTP serving on %s", cfg.Server.HTTPAddr)

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	grpcServer.GracefulStop()
	log.Info("bye")
}
