// import_items carga artículos desde un .xlsx directamente en la base de datos.
// Usa la misma configuración que la API (DATABASE_URL o DB_*).
//
// Uso: go run ./cmd/import_items ruta/articulos.xlsx
// Columnas: Category | Name | Price | Image URL (opcional). Las categorías deben existir.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: import_items <archivo.xlsx>")
		os.Exit(2)
	}
	path := os.Args[1]
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		fmt.Fprintf(os.Stderr, "El archivo debe ser .xlsx: %s\n", path)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	base := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: cfg.App.Name})
	log := base.Component("import")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(pool, base.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("abrir archivo")
	}
	defer f.Close()

	catalogUC := usecase.NewCatalogUseCase(
		postgres.NewCategoryRepository(pool),
		postgres.NewItemRepository(pool),
		postgres.NewTxRunner(pool),
	)
	importUC := usecase.NewImportItemsUseCase(catalogUC, spreadsheet.NewExcelizeReader())

	out, err := importUC.Import(ctx, f)
	if err != nil {
		log.Fatal().Err(err).Msg("importar artículos")
	}

	fmt.Println(out.Message)
	for _, e := range out.Errors {
		fmt.Fprintln(os.Stderr, e)
	}
	if len(out.Errors) > 0 {
		os.Exit(1)
	}
}
