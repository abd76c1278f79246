package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-storefront/internal/admin"
	"go-storefront/internal/ai"
	"go-storefront/internal/auth"
	"go-storefront/internal/cart"
	"go-storefront/internal/checkout"
	"go-storefront/internal/config"
	"go-storefront/internal/database"
	"go-storefront/internal/handlers"
	"go-storefront/internal/kvstore"
	"go-storefront/internal/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	dotenvErr := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		// no logger yet, configuration decides which one to build
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Production())
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if dotenvErr != nil {
		logger.Warn("no .env file found, using process environment")
	}

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}
	rows := database.NewRowStore(db)

	// --- Cost overrides: Redis when configured, settings table otherwise ---
	var kv kvstore.Store = database.NewSettingsStore(db)
	if cfg.RedisAddr != "" {
		redisStore := kvstore.NewRedis(cfg.RedisAddr, "storefront")
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisStore.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warn("redis unreachable, keeping cost overrides in the database", zap.Error(err))
			_ = redisStore.Close()
		} else {
			defer func() { _ = redisStore.Close() }()
			kv = redisStore
			logger.Info("cost overrides stored in redis", zap.String("addr", cfg.RedisAddr))
		}
	}

	costs := admin.NewCostBook(kv, admin.CostDefaults{
		Shirt:   cfg.DefaultShirtCost,
		Jewelry: cfg.DefaultJewelryCost,
	}, logger)
	costs.Load(context.Background())

	sessions := auth.NewSessions(rows, auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL), logger)
	sessions.OnChange(func(e auth.Event) {
		logger.Info("session changed", zap.String("event", string(e.Kind)), zap.Uint("user_id", e.UserID))
	})

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()

	carts := cart.NewRegistry()
	go carts.RunSweeper(sweepCtx, time.Minute, cfg.CartIdleTTL, func(n int) {
		logger.Info("idle carts dropped", zap.Int("count", n), zap.Int("live", carts.Len()))
	})
	submitter := checkout.NewSubmitter(rows, checkout.Options{
		PickupLocation: cfg.PickupLocation,
		Currency:       cfg.Currency,
	}, logger)

	var agent handlers.Asker
	if cfg.GeminiAPIKey != "" {
		agent = ai.NewAgent(cfg.GeminiAPIKey, ai.NewToolbox(rows, rows, costs), logger)
	} else {
		logger.Info("GEMINI_API_KEY not set, AI assistant disabled")
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logging.GinLogger(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatal("upload dir", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}
	r.Static("/uploads", cfg.UploadDir)

	handlers.Router{
		Products:          handlers.NewProductHandler(rows, cfg.BaseURL, cfg.UploadDir, logger),
		Carts:             handlers.NewCartHandler(carts, rows, logger),
		Checkout:          handlers.NewCheckoutHandler(carts, submitter, cfg.PickupLocation, logger),
		Auth:              handlers.NewAuthHandler(sessions, logger),
		Admin:             handlers.NewAdminHandler(rows, costs, logger),
		AI:                handlers.NewAIHandler(agent, logger),
		Sessions:          sessions,
		AllowRegistration: cfg.AllowRegistration,
	}.Mount(r)

	if cfg.AllowRegistration {
		logger.Warn("registration route is OPEN, disable ALLOW_REGISTRATION in production")
	}

	// --- Serve the storefront SPA ---
	r.Static("/assets", "./web/assets")
	r.NoRoute(func(c *gin.Context) {
		c.File("./web/index.html")
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("base_url", cfg.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
