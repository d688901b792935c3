package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/analytics"
	"github.com/jhoicas/pos-api/internal/application/billing"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC   *usecase.CatalogUseCase
	ImportUC    *usecase.ImportItemsUseCase
	BillUC      *billing.BillUseCase
	ReceiptUC   *billing.ReceiptUseCase
	AnalyticsUC *analytics.UseCase
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CatalogUC, deps.Logger)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)

	// Items (import-excel antes de /:id)
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.CatalogUC, deps.ImportUC, deps.Logger)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Post("/import-excel", itemHandler.ImportExcel)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Bills
	bills := api.Group("/bills")
	billHandler := NewBillHandler(deps.BillUC, deps.ReceiptUC, deps.Logger)
	bills.Get("/", billHandler.List)
	bills.Post("/", billHandler.Create)
	bills.Post("/clear", billHandler.Clear)
	bills.Get("/:id", billHandler.GetByID)
	bills.Put("/:id", billHandler.Update)
	bills.Delete("/:id", billHandler.Delete)
	bills.Get("/:id/receipt", billHandler.Receipt)

	// Analytics
	analyticsGroup := api.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC, deps.Logger)
	analyticsGroup.Get("/revenue", analyticsHandler.Revenue)
	analyticsGroup.Get("/items", analyticsHandler.Items)
	analyticsGroup.Get("/categories", analyticsHandler.Categories)
	analyticsGroup.Get("/summary", analyticsHandler.Summary)
}
