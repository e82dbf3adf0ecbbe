package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name         string
		quantity     int
		reorderPoint int
		expected     string
	}{
		{"zero quantity", 0, 10, StatusOutOfStock},
		{"below reorder point", 5, 10, StatusLowStock},
		{"exactly reorder point", 10, 10, StatusLowStock},
		{"between thresholds", 15, 10, StatusMediumStock},
		{"exactly twice reorder point", 20, 10, StatusMediumStock},
		{"above twice reorder point", 21, 10, StatusHighStock},
		{"zero reorder point nonzero quantity", 1, 0, StatusHighStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StockStatus(tt.quantity, tt.reorderPoint))
		})
	}
}

func TestRecalculate(t *testing.T) {
	item := InventoryItem{
		Quantity:     7,
		UnitCost:     decimal.NewFromFloat(3.25),
		ReorderPoint: 10,
	}

	item.Recalculate()

	assert.True(t, item.TotalValue.Equal(decimal.NewFromFloat(22.75)))
	assert.Equal(t, StatusLowStock, item.Status)
}
