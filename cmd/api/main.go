package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/inventory-system/internal/api"
	"github.com/99minutos/inventory-system/internal/api/handler"
	"github.com/99minutos/inventory-system/internal/core/domain"
	"github.com/99minutos/inventory-system/internal/core/ports"
	"github.com/99minutos/inventory-system/internal/core/service"
	"github.com/99minutos/inventory-system/internal/infrastructure/db/mongo"
	"github.com/99minutos/inventory-system/internal/infrastructure/db/redis"
	"github.com/99minutos/inventory-system/internal/infrastructure/queue"
	"github.com/99minutos/inventory-system/internal/infrastructure/security"
	"github.com/99minutos/inventory-system/internal/infrastructure/token"
	"github.com/99minutos/inventory-system/internal/pkg/config"
	"github.com/99minutos/inventory-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

//	@title						Inventory API
//	@version					1.0
//	@description				Product inventory CRUD and reporting with role-based access control.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "inventory-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongo.Disconnect(client, shutdownTimeout); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	userRepo := mongo.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	productRepo := mongo.NewProductRepository(db)

	var (
		rdb     *goredis.Client
		limiter ports.LoginLimiter
	)
	if cfg.Redis.Enabled {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		limiter = redis.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
	}

	// --- Audit trail ---
	auditCtx, cancelAudit := context.WithCancel(context.Background())
	defer cancelAudit()
	audit := queue.NewAuditDispatcher(0, mongo.NewAuditRepository(db), log)
	audit.Start(auditCtx)
	defer audit.Close()

	// --- Services ---
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	authService, err := service.NewAuthService(userRepo, security.NewBcryptHasher(bcrypt.DefaultCost), tokens, limiter, log)
	if err != nil {
		return err
	}
	if err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return err
	}

	router := api.NewRouter(api.Deps{
		Auth:        authService,
		Users:       service.NewUserService(userRepo, audit, log),
		Products:    service.NewProductService(productRepo, log),
		Gate:        service.NewGate(tokens, userRepo, domain.NewHierarchy(), log),
		Health:      handler.NewHealthHandler(db, rdb),
		Log:         log,
		RBACEnabled: cfg.RBACEnabled,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Bool("rbac", cfg.RBACEnabled).
			Bool("redis", cfg.Redis.Enabled).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
