package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"

	"github.com/JoeShih716/go-mem-bank/internal/app/core"
	grpc_adapter "github.com/JoeShih716/go-mem-bank/internal/app/core/adapter/in/grpc"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/adapter/in/rest"
	"github.com/JoeShih716/go-mem-bank/internal/config"
	"github.com/JoeShih716/go-mem-bank/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config yaml")
	flag.Parse()

	// 1. 載入設定
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slogger, err := logger.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// 2. 組裝銀行核心 (Journal + Ledger + IDGenerator + BankService)
	bank, err := core.NewBank(cfg, slogger)
	if err != nil {
		log.Fatalf("Failed to init bank: %v", err)
	}
	defer bank.Close()

	// 3. gRPC Adapter (Driving Adapter)
	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(grpc_adapter.LoggingInterceptor(slogger)),
		// 配合 pkg/grpc Pool 的 keepalive (10 秒 Ping，允許無 Stream)
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
	)
	grpc_adapter.RegisterBankServiceServer(s, grpc_adapter.NewGrpcServer(bank.Service))
	reflection.Register(s)

	go func() {
		slogger.Info("starting gRPC server", "addr", cfg.GRPC.Addr)
		if err := s.Serve(lis); err != nil {
			log.Fatalf("failed to serve gRPC: %v", err)
		}
	}()

	// 4. HTTP Adapter
	router := rest.NewRouter(rest.NewHandler(bank.Service), slogger, cfg.HTTP.RequestTimeout)
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}
	go func() {
		slogger.Info("starting HTTP server", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to serve HTTP: %v", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slogger.Info("shutting down servers")

	// Graceful Shutdown: 先停止接收新請求，再關閉帳本
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slogger.Error("HTTP shutdown", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(cfg.GRPC.ShutdownTimeout):
		s.Stop()
	}
	slogger.Info("server exited")
}
