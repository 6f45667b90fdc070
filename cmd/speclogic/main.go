package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/handler"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/repository"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/service"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/sse"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/config"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/database"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/logger"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/middleware"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting speclogic service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	gormLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLevel = gormlogger.Info
	}
	db, err := database.Open(cfg.Database, gormLevel)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate catalog", zap.Error(err))
	}

	// 初始化Redis
	rdb := database.OpenRedis(cfg.Redis)
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		// 装机会话读写失败时按空方案处理，不阻止启动
		zapLogger.Warn("Redis unavailable, builds will not persist", zap.Error(err))
	}

	// 初始化各层
	hub := sse.NewHub(zapLogger)
	repos := repository.NewRepositories(db, rdb, cfg.Build.StorageKey, cfg.Build.TTL, zapLogger)
	services := service.NewServices(repos, hub, cfg, zapLogger)
	health := handler.NewHealthHandler(Version, map[string]handler.Check{
		"database": func(ctx context.Context) error { return pingDB(ctx, db) },
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}).WithBuildTime(BuildTime).WithSessions(services.Build.Sessions)
	handlers := handler.NewHandlers(services, hub, health)

	// 清理空闲装机会话
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go services.Build.RunJanitor(janitorCtx, cfg.Build.IdleTimeout, cfg.Build.SweepInterval)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS(cfg.Build.SessionHeader))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/v1/build/events"})))

	// 注册路由
	handlers.Register(router, handler.RouteConfig{
		SessionHeader: cfg.Build.SessionHeader,
		JWTSecret:     cfg.JWT.Secret,
	})

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		zapLogger.Warn("Failed to close database", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
