package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/swaggo/swag" // 导入 swag

	"digital_diary/config"
	"digital_diary/db"
	_ "digital_diary/docs" // 导入 swagger 文档
	"digital_diary/extractor"
	"digital_diary/handlers"
	"digital_diary/logger"
	"digital_diary/repository"
	"digital_diary/scheduler"
	"digital_diary/services"
	"digital_diary/utils"
)

func main() {
	cfg := config.Load()

	// 初始化日志系统
	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	logger.Info("日志系统初始化成功", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)

	if err := db.InitMySQLWithConfig(cfg); err != nil {
		logger.Error("初始化MySQL失败", "error", err)
		os.Exit(1)
	}
	logger.Info("MySQL连接成功",
		"max_open_conns", cfg.DB.MaxOpenConns,
		"max_idle_conns", cfg.DB.MaxIdleConns,
		"conn_max_lifetime", cfg.DB.ConnMaxLifetime)

	// 存储层
	userRepo := repository.UserRepo{}
	entryRepo := repository.EntryRepo{}
	enrichmentRepo := repository.EnrichmentRepo{}
	adviceRepo := repository.AdviceRepo{}

	// 抽取器集合进程内只构建一次，经构造函数注入各服务
	extractors := extractor.NewSet(cfg)

	tokens := utils.NewTokenManager(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		time.Duration(cfg.JWT.AccessExpireMin)*time.Minute,
		time.Duration(cfg.JWT.RefreshExpireHrs)*time.Hour,
	)

	// 服务层
	enrichment := services.NewEnrichmentService(enrichmentRepo, extractors)
	temporal := services.NewTemporalService(entryRepo, enrichment)
	analysis := services.NewAnalysisService(userRepo, entryRepo, temporal, enrichment)
	userService := services.NewUserService(userRepo, tokens)
	entryService := services.NewEntryService(entryRepo, services.DefaultSanitizer())
	adviceService := services.NewAdviceService(userRepo, entryRepo, adviceRepo, enrichment, temporal, extractors.Advisor)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	handlers.RegisterRoutes(r, &handlers.Deps{
		Config:   cfg,
		Tokens:   tokens,
		Users:    userService,
		Entries:  entryService,
		Analysis: analysis,
		Advice:   adviceService,
	})

	// 启动夜间预富化任务
	scheduler.Start(cfg, entryRepo, enrichment)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("服务器启动", "address", serverAddr)
	logger.Info("Swagger文档可访问", "url", fmt.Sprintf("http://%s/swagger/index.html", serverAddr))
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port), r))
}
