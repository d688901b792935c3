package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/analytics"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// AnalyticsHandler expone la analítica de ventas. Siempre calculada al vuelo.
type AnalyticsHandler struct {
	uc  *analytics.UseCase
	log *logger.Logger
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, log: log}
}

// Revenue godoc
// @Summary      Ingreso total
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dto.RevenueResponse
// @Router       /api/analytics/revenue [get]
func (h *AnalyticsHandler) Revenue(c *fiber.Ctx) error {
	out, err := h.uc.TotalRevenue(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Items godoc
// @Summary      Ventas por artículo
// @Description  Todos los artículos, también los que no se vendieron. Orden: ingreso desc, categoría, nombre.
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  dto.ItemAnalyticsDTO
// @Router       /api/analytics/items [get]
func (h *AnalyticsHandler) Items(c *fiber.Ctx) error {
	out, err := h.uc.ItemAnalytics(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Ventas por categoría
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  dto.CategoryAnalyticsDTO
// @Router       /api/analytics/categories [get]
func (h *AnalyticsHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.CategoryAnalytics(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen para el tablero
// @Description  Ingreso total, cantidad de facturas, top 5 artículos y ventas por categoría.
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dto.AnalyticsSummaryDTO
// @Router       /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
