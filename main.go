package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/fintrack/fintrack/backend/go-services/handlers"
	"github.com/fintrack/fintrack/backend/go-services/internal/budgets"
	"github.com/fintrack/fintrack/backend/go-services/internal/config"
	"github.com/fintrack/fintrack/backend/go-services/internal/database"
	"github.com/fintrack/fintrack/backend/go-services/internal/goals"
	"github.com/fintrack/fintrack/backend/go-services/internal/reports"
	"github.com/fintrack/fintrack/backend/go-services/internal/storage"
	"github.com/fintrack/fintrack/backend/go-services/internal/tokens"
	"github.com/fintrack/fintrack/backend/go-services/internal/transactions"
	"github.com/fintrack/fintrack/backend/go-services/internal/users"
	"github.com/fintrack/fintrack/backend/go-services/pkg/logger"
	"github.com/fintrack/fintrack/backend/go-services/pkg/metrics"
	"github.com/fintrack/fintrack/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: env=%s redis=%v rate_limit=%v", cfg.Server.Environment, cfg.Redis.Host != "", cfg.RateLimit.Enabled)

	ctx := context.Background()

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple; production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate limiter can use it when configured
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			rdb = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	tokenMgr := tokens.NewManager(cfg)
	auth := middleware.AuthMiddleware(tokenMgr)

	// Optional global rate limiter (per-user when authenticated, otherwise
	// per-IP). The identity hint runs first so authenticated requests key by
	// user id; the strict auth on protected groups still decides access.
	if cfg.RateLimit.Enabled {
		r.Use(middleware.IdentityHint(tokenMgr))
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Connect to Postgres with retry/backoff to tolerate startup races
	const maxAttempts = 5
	backoff := time.Second
	var db *sql.DB
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		conn, errConn := database.ConnectPostgres(ctx, cfg.Postgres.DSN, cfg.Postgres.ConnectTimeout, cfg.Postgres.MaxOpenConns)
		if errConn == nil {
			db = conn
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to Postgres: %v", attempt, maxAttempts, errConn)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if db == nil {
		logger.Fatalf("could not connect to Postgres after %d attempts", maxAttempts)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatalf("failed to run migrations: %v", err)
	}

	usersSvc := users.NewService(users.NewPostgresRepository(db), tokenMgr)
	txSvc := transactions.NewService(transactions.NewPostgresRepository(db))
	budgetSvc := budgets.NewService(budgets.NewPostgresRepository(db))
	goalSvc := goals.NewService(goals.NewPostgresRepository(db))
	reportSvc := reports.NewService(reports.NewPostgresRepository(db))

	handlers.NewAuthHandler(usersSvc).Register(&r.RouterGroup, auth)
	handlers.NewTransactionHandler(txSvc).Register(&r.RouterGroup, auth)
	handlers.NewBudgetHandler(budgetSvc).Register(&r.RouterGroup, auth)
	handlers.NewGoalHandler(goalSvc).Register(&r.RouterGroup, auth)
	handlers.NewReportHandler(reportSvc).Register(&r.RouterGroup, auth)
	handlers.RegisterSwagger(r)

	// Receipt storage is optional; routes appear only when MinIO is configured
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		store, errStore := storage.NewReceiptStore(mcfg)
		if errStore != nil {
			logger.Warnf("receipt storage unavailable: %v", errStore)
		} else {
			handlers.NewReceiptHandler(txSvc, store).Register(&r.RouterGroup, auth)
			logger.Infof("receipt storage enabled: bucket=%s", mcfg.Bucket)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when critical dependencies answer
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		deps["postgres"] = db.PingContext(pingCtx) == nil
		if !deps["postgres"] {
			ready = false
		}

		// Redis only gates readiness when the rate limiter depends on it
		if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
			deps["redis"] = rdb != nil && rdb.Ping(pingCtx).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting fintrack service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
