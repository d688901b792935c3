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
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/pos-api/internal/application/analytics"
	"github.com/jhoicas/pos-api/internal/application/billing"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/pos-api/internal/interfaces/http"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
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

	if err := postgres.RunMigrations(pool, log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if cfg.App.Seed {
		seeded, err := postgres.SeedSampleData(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("datos de ejemplo")
		}
		if seeded {
			log.Info().Msg("catálogo de ejemplo cargado")
		}
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogUC := usecase.NewCatalogUseCase(categoryRepo, itemRepo, txRunner)
	importUC := usecase.NewImportItemsUseCase(catalogUC, spreadsheet.NewExcelizeReader())
	billUC := billing.NewBillUseCase(txRunner, billRepo)
	receiptUC := billing.NewReceiptUseCase(billUC, infrapdf.NewMarotoReceiptGenerator(), billing.StoreInfo{
		Name: cfg.App.StoreName,
	})
	analyticsUC := analytics.NewUseCase(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit(),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	metrics := httpRouter.NewMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:   catalogUC,
		ImportUC:    importUC,
		BillUC:      billUC,
		ReceiptUC:   receiptUC,
		AnalyticsUC: analyticsUC,
		Logger:      log.Component("http"),
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
