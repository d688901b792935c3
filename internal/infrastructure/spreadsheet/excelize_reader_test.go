package spreadsheet_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/pos-api/internal/infrastructure/spreadsheet"
)

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, r := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadRows(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"Category", "Name", "Price", "Image URL"},
		{"Snacks", "Chips", 2.5},
		{"Bebidas", "Soda", "1.25", "https://img/soda.png"},
	})

	rows, err := spreadsheet.NewExcelizeReader().ReadRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Category", "Name", "Price", "Image URL"}, rows[0])
	assert.Equal(t, []string{"Snacks", "Chips", "2.5"}, rows[1])
	assert.Equal(t, "https://img/soda.png", rows[2][3])
}

func TestReadRows_ArchivoInvalido(t *testing.T) {
	_, err := spreadsheet.NewExcelizeReader().ReadRows(strings.NewReader("no es un xlsx"))
	assert.Error(t, err)
}
