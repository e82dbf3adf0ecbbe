package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock status classification. Derived from quantity vs reorder point,
// never stored independently of a recalculation.
const (
	StatusOutOfStock  = "out_of_stock"
	StatusLowStock    = "low_stock"
	StatusMediumStock = "medium_stock"
	StatusHighStock   = "high_stock"
)

type InventoryItem struct {
	ID           string          `json:"id" db:"id"`
	ProductID    string          `json:"productId" db:"product_id"`
	ShopID       string          `json:"shopId" db:"shop_id"`
	Quantity     int             `json:"quantity" db:"quantity"`
	UnitCost     decimal.Decimal `json:"unitCost" db:"unit_cost"`
	SellingPrice decimal.Decimal `json:"sellingPrice" db:"selling_price"`
	TotalValue   decimal.Decimal `json:"totalValue" db:"total_value"`
	Status       string          `json:"status" db:"status"`
	ReorderPoint int             `json:"reorderPoint" db:"reorder_point"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// StockStatus classifies a quantity against the reorder point thresholds.
func StockStatus(quantity, reorderPoint int) string {
	switch {
	case quantity == 0:
		return StatusOutOfStock
	case quantity <= reorderPoint:
		return StatusLowStock
	case quantity <= 2*reorderPoint:
		return StatusMediumStock
	default:
		return StatusHighStock
	}
}

// Recalculate refreshes the fields derived from quantity. Must be called
// after every quantity change before the row is written back.
func (i *InventoryItem) Recalculate() {
	i.TotalValue = i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
	i.Status = StockStatus(i.Quantity, i.ReorderPoint)
}
