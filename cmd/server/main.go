package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/techgit41/Advanced-Todo-App/api/handler"
	"github.com/techgit41/Advanced-Todo-App/internal/auth"
	"github.com/techgit41/Advanced-Todo-App/internal/config"
	mongoInfra "github.com/techgit41/Advanced-Todo-App/internal/infrastructure/mongodb"
	"github.com/techgit41/Advanced-Todo-App/internal/infrastructure/monitor"
	"github.com/techgit41/Advanced-Todo-App/internal/middleware"
	"github.com/techgit41/Advanced-Todo-App/internal/router"
	"github.com/techgit41/Advanced-Todo-App/internal/services/hub"
	"github.com/techgit41/Advanced-Todo-App/internal/services/lifecycle"
	"github.com/techgit41/Advanced-Todo-App/pkg/httpcontext"
	"github.com/techgit41/Advanced-Todo-App/pkg/logger"
	"github.com/techgit41/Advanced-Todo-App/repository/mongodb"
	authUC "github.com/techgit41/Advanced-Todo-App/usecase/auth"
	todoUC "github.com/techgit41/Advanced-Todo-App/usecase/todo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	mongoClient, err := mongoInfra.NewClient(appCtx, cfg.Mongo, zapLogger)
	if err != nil {
		zapLogger.Fatal("invalid mongodb configuration", zap.Error(err))
	}
	manager.Register("mongodb", func(ctx context.Context) error {
		return mongoInfra.Close(mongoClient, zapLogger)
	})

	liveHub := hub.New(zapLogger)

	mon := monitor.New(mongoClient, liveHub, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	db := mongoClient.Database(cfg.Mongo.Database)
	userRepo := mongodb.NewUserRepository(db)
	todoRepo := mongodb.NewTodoRepository(db)

	tokens := auth.NewManager(cfg.JWT.Secret, cfg.JWT.TokenTTL)

	authUseCase := authUC.New(userRepo, tokens, zapLogger)
	todoUseCase := todoUC.New(todoRepo, liveHub, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Todo:   apiHandler.NewTodoHandler(todoUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
		WS:     apiHandler.NewWSHandler(liveHub, tokens, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(tokens, zapLogger)
	r := router.New(handlers, authMiddleware)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window)
	manager.Register("rate_limiter", func(ctx context.Context) error {
		rateLimiter.Stop()
		return nil
	})

	chain := middleware.CORS(cfg.CORS.AllowedOrigins)(rateLimiter.Handler(r.Handler))

	server := &fasthttp.Server{
		Handler:      chain,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
