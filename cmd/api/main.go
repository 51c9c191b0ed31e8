package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "officebot/api/swagger" // swagger docs
	"officebot/configs"
	"officebot/internal/config"
	"officebot/internal/database"
	"officebot/internal/handler"
	"officebot/internal/logger"
	"officebot/internal/middleware"
	"officebot/internal/repository"
	"officebot/internal/service"
	"officebot/internal/taxconfig"
	"officebot/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Office Bot Calculation API
// @version         1.0
// @description     Indonesian tax, payroll and business finance calculations.
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg, envLoaded := config.Load()

	log, err := logger.New(cfg.IsDevelopment())
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	if !envLoaded {
		log.Info("no configs/.env file found, using environment only")
	}

	db, err := database.NewConnection(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	log.Info("connected to PostgreSQL")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Set up dependencies (Repository -> Service -> Handler)
	taxYearRepo := repository.NewTaxYearRepository(db)
	calcLogRepo := repository.NewCalculationLogRepository(db)
	txManager := repository.NewTransactionManager(db)

	store, err := loadTaxTables(ctx, cfg, taxYearRepo)
	if err != nil {
		log.Fatal("invalid tax tables", zap.Error(err))
	}
	log.Info("tax tables loaded", zap.Ints("years", store.Current().Years()))

	wsHub := websocket.NewHub(log)
	go wsHub.Run(ctx)

	taxService := service.NewTaxService(store, calcLogRepo, log)
	payrollService := service.NewPayrollService(store, calcLogRepo, log)
	financeService := service.NewFinanceService(store, calcLogRepo, log)
	taxYearService := service.NewTaxYearService(store, taxYearRepo, txManager, wsHub, calcLogRepo, log)
	calcLogService := service.NewCalculationLogService(calcLogRepo)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(log), middleware.Recovery(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "tax_years": store.Current().Years(), "ws_clients": wsHub.Clients()})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// API Routing
	api := router.Group("")
	handler.NewTaxHandler(taxService).RegisterRoutes(api)
	handler.NewPayrollHandler(payrollService).RegisterRoutes(api)
	handler.NewFinanceHandler(financeService).RegisterRoutes(api)
	handler.NewTaxYearHandler(taxYearService, cfg.PublishEnabled).RegisterRoutes(api)
	handler.NewCalculationHandler(calcLogService).RegisterRoutes(api)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.Bool("publish_enabled", cfg.PublishEnabled))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// loadTaxTables builds the live registry: the embedded defaults (or
// TAX_CONFIG_PATH) with every published year from the database on top.
func loadTaxTables(ctx context.Context, cfg config.Config, repo repository.TaxYearRepository) (*taxconfig.Store, error) {
	var (
		doc taxconfig.Document
		err error
	)
	if cfg.TaxConfigPath != "" {
		doc, err = taxconfig.LoadFile(cfg.TaxConfigPath)
	} else {
		doc, err = taxconfig.ParseDocument(configs.TaxYears)
	}
	if err != nil {
		return nil, err
	}

	overrides, err := service.PublishedOverrides(ctx, repo)
	if err != nil {
		return nil, err
	}
	reg, err := taxconfig.LoadRegistry(doc, overrides...)
	if err != nil {
		return nil, err
	}
	return taxconfig.NewStore(reg), nil
}
