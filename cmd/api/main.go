package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/yacouba/Boutique-api/internal/application/auth"
	"github.com/yacouba/Boutique-api/internal/application/finance"
	"github.com/yacouba/Boutique-api/internal/application/inventory"
	"github.com/yacouba/Boutique-api/internal/application/presentation"
	"github.com/yacouba/Boutique-api/internal/application/reports"
	"github.com/yacouba/Boutique-api/internal/application/returns"
	"github.com/yacouba/Boutique-api/internal/application/stores"
	infracache "github.com/yacouba/Boutique-api/internal/infrastructure/cache"
	infrapdf "github.com/yacouba/Boutique-api/internal/infrastructure/pdf"
	"github.com/yacouba/Boutique-api/internal/infrastructure/postgres"
	httpRouter "github.com/yacouba/Boutique-api/internal/interfaces/http"
	"github.com/yacouba/Boutique-api/pkg/config"
	"github.com/yacouba/Boutique-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de resúmenes: Redis si está configurado, no-op si no.
	var reportCache reports.Cache = infracache.NoopCache{}
	if cfg.Redis.Addr != "" {
		redisCache, err := infracache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, arrancando sin caché")
		} else {
			defer redisCache.Close()
			reportCache = redisCache
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	returnTxRunner := postgres.NewReturnTxRunner(pool)

	presentationTable := presentation.NewTable(cfg.Caps)
	pdfGenerator := infrapdf.NewCountReportGenerator()

	authUC := auth.NewUseCase(userRepo, cfg.JWT, log)
	storeUC := stores.NewUseCase(storeRepo, reportCache, log)
	inventoryUC := inventory.NewUseCase(sessionRepo, storeRepo, txRunner, pdfGenerator, log)
	returnUC := returns.NewUseCase(returnRepo, saleRepo, returnTxRunner, reportCache, presentationTable, log)
	reportUC := reports.NewUseCase(saleRepo, reportCache, log)
	financeUC := finance.NewUseCase(saleRepo, expenseRepo, reportCache, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Boutique Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		StoreUC:      storeUC,
		InventoryUC:  inventoryUC,
		ReturnUC:     returnUC,
		ReportUC:     reportUC,
		FinanceUC:    financeUC,
		Presentation: presentationTable,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
