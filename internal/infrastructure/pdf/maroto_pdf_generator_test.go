package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/billing"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":       "0.00",
		"2.5":     "2.50",
		"999.99":  "999.99",
		"25000":   "25,000.00",
		"1000000": "1,000,000.00",
		"-1234.5": "-1,234.50",
		"12.345":  "12.35",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	bill := &entity.BillWithItems{
		Bill: entity.Bill{
			ID:          1,
			BillNumber:  "BILL-20240101-ABCDEF12",
			TotalAmount: decimal.RequireFromString("6.25"),
			CreatedAt:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		},
		Items: []entity.BillItemDetail{
			{
				BillItem: entity.BillItem{
					ID: 1, BillID: 1, ItemID: 2, Quantity: 2,
					UnitPrice: decimal.RequireFromString("2.50"),
					Subtotal:  decimal.RequireFromString("5.00"),
				},
				ItemName:     "Chips",
				CurrentPrice: decimal.RequireFromString("3.00"),
			},
			{
				BillItem: entity.BillItem{
					ID: 2, BillID: 1, ItemID: 3, Quantity: 1,
					UnitPrice: decimal.RequireFromString("1.25"),
					Subtotal:  decimal.RequireFromString("1.25"),
				},
				ItemName:     "Soda",
				CurrentPrice: decimal.RequireFromString("1.25"),
			},
		},
	}

	out, err := NewMarotoReceiptGenerator().GenerateReceiptPDF(context.Background(), billing.StoreInfo{Name: "Tienda"}, bill)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, 3, totalUnits(bill.Items))
}
