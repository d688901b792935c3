package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/pos-api/internal/application/analytics"
	"github.com/jhoicas/pos-api/internal/application/billing"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-api/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/pos-api/internal/interfaces/http"
	"github.com/jhoicas/pos-api/internal/testutil/memstore"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testApp struct {
	app   *fiber.App
	store *memstore.Store
}

// buildTestApp arma la API completa sobre el store en memoria.
func buildTestApp(t *testing.T) *testApp {
	t.Helper()
	st := memstore.New()
	log := logger.Nop()

	catalogUC := usecase.NewCatalogUseCase(st.Categories(), st.Items(), st)
	billUC := billing.NewBillUseCase(st, st.Bills())
	reg := prometheus.NewRegistry()
	metrics := apphttp.NewMetrics(reg, reg)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogUC:   catalogUC,
		ImportUC:    usecase.NewImportItemsUseCase(catalogUC, spreadsheet.NewExcelizeReader()),
		BillUC:      billUC,
		ReceiptUC:   billing.NewReceiptUseCase(billUC, pdf.NewMarotoReceiptGenerator(), billing.StoreInfo{Name: "Tienda"}),
		AnalyticsUC: analytics.NewUseCase(st.Analytics()),
		Logger:      log,
	})
	return &testApp{app: app, store: st}
}

func (ta *testApp) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "esperado %s, obtenido %s", want, got)
}

// seedCatalog crea "Snacks" con "Chips" (2.50) y devuelve (categoría, artículo).
func (ta *testApp) seedCatalog(t *testing.T) (int64, int64) {
	t.Helper()
	resp := ta.do(t, http.MethodPost, "/api/categories", map[string]any{"name": "Snacks"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	cat := decode[dto.CategoryResponse](t, resp)

	resp = ta.do(t, http.MethodPost, "/api/items", map[string]any{
		"category_id": cat.ID, "name": "Chips", "price": "2.50",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	item := decode[dto.ItemResponse](t, resp)
	return cat.ID, item.ID
}

func (ta *testApp) createBill(t *testing.T, itemID int64, qty int, price string) dto.CreateBillResponse {
	t.Helper()
	resp := ta.do(t, http.MethodPost, "/api/bills", map[string]any{
		"items": []map[string]any{{"item_id": itemID, "quantity": qty, "unit_price": price}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.CreateBillResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCategories_CrearYListar(t *testing.T) {
	ta := buildTestApp(t)
	ta.seedCatalog(t)

	resp := ta.do(t, http.MethodGet, "/api/categories", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[[]dto.CategoryResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "Snacks", list[0].Name)
}

func TestCategories_NombreRequerido(t *testing.T) {
	ta := buildTestApp(t)
	resp := ta.do(t, http.MethodPost, "/api/categories", map[string]any{"name": ""})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, "name")
}

func TestItems_CuerpoInvalido(t *testing.T) {
	ta := buildTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestItems_PrecioRequerido(t *testing.T) {
	ta := buildTestApp(t)
	catID, _ := ta.seedCatalog(t)
	resp := ta.do(t, http.MethodPost, "/api/items", map[string]any{"category_id": catID, "name": "Soda"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, "price es requerido")
}

func TestItems_CategoriaInexistente(t *testing.T) {
	ta := buildTestApp(t)
	resp := ta.do(t, http.MethodPost, "/api/items", map[string]any{"category_id": 42, "name": "Soda", "price": 1})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestItems_FiltroPorCategoria(t *testing.T) {
	ta := buildTestApp(t)
	catID, itemID := ta.seedCatalog(t)

	resp := ta.do(t, http.MethodGet, "/api/items?category_id="+itoa(catID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[[]dto.ItemResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, itemID, list[0].ID)
	assert.Equal(t, "Snacks", list[0].CategoryName)

	resp = ta.do(t, http.MethodGet, "/api/items?category_id=999", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.ItemResponse](t, resp))

	resp = ta.do(t, http.MethodGet, "/api/items?category_id=abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestItems_ActualizarInexistente(t *testing.T) {
	ta := buildTestApp(t)
	catID, _ := ta.seedCatalog(t)
	resp := ta.do(t, http.MethodPut, "/api/items/999", map[string]any{"category_id": catID, "name": "X", "price": "1"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestItems_IDInvalido(t *testing.T) {
	ta := buildTestApp(t)
	resp := ta.do(t, http.MethodDelete, "/api/items/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", decode[dto.ErrorResponse](t, resp).Code)
}

func TestItems_BorrarReferenciado(t *testing.T) {
	ta := buildTestApp(t)
	_, itemID := ta.seedCatalog(t)
	bill := ta.createBill(t, itemID, 2, "2.50")

	resp := ta.do(t, http.MethodDelete, "/api/items/"+itoa(itemID), nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "ITEM_REFERENCED", body.Code)
	assert.Contains(t, body.Message, "1 línea(s)")

	resp = ta.do(t, http.MethodDelete, "/api/bills/"+itoa(bill.BillID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = ta.do(t, http.MethodDelete, "/api/items/"+itoa(itemID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Facturas
// ──────────────────────────────────────────────────────────────────────────────

func TestBills_CrearYObtener(t *testing.T) {
	ta := buildTestApp(t)
	_, itemID := ta.seedCatalog(t)
	created := ta.createBill(t, itemID, 3, "2.50")
	assertDecimal(t, "7.50", created.TotalAmount)
	assert.True(t, strings.HasPrefix(created.BillNumber, "BILL-"))

	resp := ta.do(t, http.MethodGet, "/api/bills/"+itoa(created.BillID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	detail := decode[dto.BillDetailResponse](t, resp)
	assert.Equal(t, created.BillNumber, detail.BillNumber)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "Chips", detail.Items[0].ItemName)
	assert.Equal(t, 3, detail.Items[0].Quantity)
	assertDecimal(t, "7.50", detail.Items[0].Subtotal)
}

func TestBills_Validacion(t *testing.T) {
	ta := buildTestApp(t)
	_, itemID := ta.seedCatalog(t)

	cases := map[string]map[string]any{
		"sin líneas":       {"items": []any{}},
		"cantidad cero":    {"items": []map[string]any{{"item_id": itemID, "quantity": 0, "unit_price": "1"}}},
		"sin precio":       {"items": []map[string]any{{"item_id": itemID, "quantity": 1}}},
		"precio negativo":  {"items": []map[string]any{{"item_id": itemID, "quantity": 1, "unit_price": "-1"}}},
		"subtotal erróneo": {"items": []map[string]any{{"item_id": itemID, "quantity": 2, "unit_price": "1", "subtotal": "3"}}},
		"artículo ausente": {"items": []map[string]any{{"item_id": 999, "quantity": 1, "unit_price": "1"}}},
		"cantidad enorme":  {"items": []map[string]any{{"item_id": itemID, "quantity": 2147483648, "unit_price": "1"}}},
		"total desbordado": {"items": []map[string]any{{"item_id": itemID, "quantity": 3, "unit_price": "5000000000"}}},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := ta.do(t, http.MethodPost, "/api/bills", body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
		})
	}

	resp := ta.do(t, http.MethodGet, "/api/bills", nil)
	assert.Empty(t, decode[[]dto.BillResponse](t, resp))
}

func TestBills_ActualizarYBorrarInexistente(t *testing.T) {
	ta := buildTestApp(t)
	_, itemID := ta.seedCatalog(t)

	resp := ta.do(t, http.MethodPut, "/api/bills/999", map[string]any{
		"items": []map[string]any{{"item_id": itemID, "quantity": 1, "unit_price": "1"}},
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = ta.do(t, http.MethodDelete, "/api/bills/999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = ta.do(t, http.MethodGet, "/api/bills/999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestBills_ActualizarReemplazaLineas(t *testing.T) {
	ta := buildTestApp(t)
	_, itemID := ta.seedCatalog(t)
	created := ta.createBill(t, itemID, 1, "2.50")

	resp := ta.do(t, http.MethodPut, "/api/bills/"+itoa(created.BillID), map[string]any{
		"items": []map[string]any{{"item_id": itemID, "quantity": 4, "unit_price": "2.00"}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	detail := decode[dto.BillDetailResponse](t, resp)
	assertDecimal(t, "8.00", detail.TotalAmount)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, 4, detail.Items[0].Quantity)
	assert.Equal(t, created.BillNumber, detail.BillNumber)
}

func TestBills_ClearYAnalitica(t *testing.T) {
	ta := buildTestApp(t)
	_, itemID := ta.seedCatalog(t)
	ta.createBill(t, itemID, 2, "2.50")
	ta.createBill(t, itemID, 1, "2.50")

	resp := ta.do(t, http.MethodGet, "/api/analytics/revenue", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assertDecimal(t, "7.50", decode[dto.RevenueResponse](t, resp).TotalRevenue)

	resp = ta.do(t, http.MethodGet, "/api/analytics/items", nil)
	items := decode[[]dto.ItemAnalyticsDTO](t, resp)
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].TotalQuantitySold)

	resp = ta.do(t, http.MethodGet, "/api/analytics/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	summary := decode[dto.AnalyticsSummaryDTO](t, resp)
	assert.Equal(t, int64(2), summary.BillCount)

	for i := 0; i < 2; i++ {
		resp = ta.do(t, http.MethodPost, "/api/bills/clear", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp = ta.do(t, http.MethodGet, "/api/analytics/categories", nil)
	cats := decode[[]dto.CategoryAnalyticsDTO](t, resp)
	require.Len(t, cats, 1)
	assert.Equal(t, int64(0), cats[0].TotalItemsSold)
	assertDecimal(t, "0", cats[0].TotalRevenue)

	resp = ta.do(t, http.MethodGet, "/api/items", nil)
	assert.Len(t, decode[[]dto.ItemResponse](t, resp), 1)
}

func TestBills_Recibo(t *testing.T) {
	ta := buildTestApp(t)
	_, itemID := ta.seedCatalog(t)
	created := ta.createBill(t, itemID, 2, "2.50")

	resp := ta.do(t, http.MethodGet, "/api/bills/"+itoa(created.BillID)+"/receipt", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "recibo_"+created.BillNumber+".pdf")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = ta.do(t, http.MethodGet, "/api/bills/999/receipt", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación
// ──────────────────────────────────────────────────────────────────────────────

func xlsxBody(t *testing.T, filename string, rows [][]any) (*bytes.Buffer, string) {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, r := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", ref, &r))
	}
	book, err := f.WriteToBuffer()
	require.NoError(t, err)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.Copy(part, book)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestImportExcel(t *testing.T) {
	ta := buildTestApp(t)
	ta.seedCatalog(t)

	body, contentType := xlsxBody(t, "items.xlsx", [][]any{
		{"Category", "Name", "Price", "Image URL"},
		{"snacks", "Maní", 1.75, "None"},
		{"Bebidas", "Soda", 1.25},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/items/import-excel", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[dto.ImportItemsResponse](t, resp)
	assert.Equal(t, 1, out.Created)
	assert.Equal(t, "Se importaron 1 artículos", out.Message)
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0], "Fila 3")
}

func TestImportExcel_ExtensionInvalida(t *testing.T) {
	ta := buildTestApp(t)
	for _, name := range []string{"items.csv", "items.xls"} {
		t.Run(name, func(t *testing.T) {
			body, contentType := xlsxBody(t, name, [][]any{{"Category", "Name", "Price"}})
			req := httptest.NewRequest(http.MethodPost, "/api/items/import-excel", body)
			req.Header.Set("Content-Type", contentType)
			resp, err := ta.app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "INVALID_FILE", decode[dto.ErrorResponse](t, resp).Code)
		})
	}
}

func TestImportExcel_SinArchivo(t *testing.T) {
	ta := buildTestApp(t)
	resp := ta.do(t, http.MethodPost, "/api/items/import-excel", map[string]any{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_FILE", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores internos y métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestErrorInterno(t *testing.T) {
	ta := buildTestApp(t)
	ta.store.Fail(memstore.OpListCategories, errors.New("conexión perdida"))

	resp := ta.do(t, http.MethodGet, "/api/categories", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "conexión perdida")
}

func TestMetrics(t *testing.T) {
	ta := buildTestApp(t)
	ta.do(t, http.MethodGet, "/api/bills", nil).Body.Close()

	resp := ta.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `pos_http_requests_total{method="GET",route="/api/bills`)
	assert.Contains(t, string(raw), `pos_http_request_duration_seconds_bucket`)
}
