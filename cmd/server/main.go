package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/config"
	chatHttp "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/chat/delivery/http"
	chatModels "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/chat/model"
	chatRepository "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/chat/repository"
	chatUsecase "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/chat/usecase"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/middleware"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/presence"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/realtime"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/storage"
	userHttp "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/user/delivery/http"
	userModels "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/user/model"
	userRepository "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/user/repository"
	userUsecase "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/user/usecase"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	v, err := config.LoadConfig("config")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	db, err := connectDB(ctx, cfg.Bun.DSN)
	if err != nil {
		appLogger.Error("database connection failed", "err", err)
		return
	}
	defer db.Close()

	imageStore, err := storage.NewImageStore(ctx, cfg.Minio, *appLogger)
	if err != nil {
		appLogger.Error("object storage init failed", "err", err)
		return
	}

	tracker := presence.NewTracker()
	hub := realtime.NewHub(tracker, *appLogger)

	userRepo := userRepository.NewUserRepository(db, *appLogger)
	chatRepo := chatRepository.NewChatRepository(db, *appLogger)

	userUC := userUsecase.NewUserUsecase(userRepo, tracker, *appLogger, *cfg)
	chatUC := chatUsecase.NewChatUsecase(chatRepo, userRepo, imageStore, hub, tracker, *appLogger)
	hub.SetChatUsecase(chatUC)

	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	wsHandler := realtime.NewHandler(hub, *cfg, *appLogger)
	router.GET("/ws", wsHandler.Serve)

	api := router.Group("/api", middleware.AuthRequired(*cfg))
	chatHttp.NewHandlers(chatUC, *appLogger).Register(api)
	userHttp.NewHandlers(userUC, *appLogger).Register(api)

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("server listening", "addr", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", "err", err)
	}
}

func connectDB(ctx context.Context, dsn string) (*bun.DB, error) {
	connector := pgdriver.NewConnector(pgdriver.WithDSN(dsn))
	sqlDB := sql.OpenDB(connector)
	db := bun.NewDB(sqlDB, pgdialect.New())

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	tables := []any{
		(*userModels.User)(nil),
		(*chatModels.Conversation)(nil),
		(*chatModels.Message)(nil),
	}
	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return nil, err
		}
	}
	return db, nil
}
