package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

const (
	MovementAdded      = "Added"
	MovementSold       = "Sold"
	MovementReturned   = "Returned"
	MovementAdjustment = "Adjustment"
)

// StockMovement is one recorded change to inventory quantity. Rows are
// append-only; they are never updated or deleted.
type StockMovement struct {
	ID            string          `json:"id" db:"id"`
	ProductID     string          `json:"productId" db:"product_id"`
	InventoryID   string          `json:"inventoryId" db:"inventory_id"`
	Quantity      int             `json:"quantity" db:"quantity"`
	Direction     string          `json:"direction" db:"direction"`
	MovementType  string          `json:"movementType" db:"movement_type"`
	Reason        string          `json:"reason" db:"reason"`
	PerformedByID string          `json:"performedById" db:"performed_by_id"`
	CostPerUnit   decimal.Decimal `json:"costPerUnit" db:"cost_per_unit"`
	TotalCost     decimal.Decimal `json:"totalCost" db:"total_cost"`
	SystemCount   *int            `json:"systemCount,omitempty" db:"system_count"`
	PhysicalCount *int            `json:"physicalCount,omitempty" db:"physical_count"`
	Date          time.Time       `json:"date" db:"date"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}
