package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string          `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	SKU           string          `json:"sku" db:"sku"`
	Description   *string         `json:"description,omitempty" db:"description"`
	CategoryID    *string         `json:"categoryId,omitempty" db:"category_id"`
	ShopID        string          `json:"shopId" db:"shop_id"`
	BusinessID    string          `json:"businessId" db:"business_id"`
	SellingPrice  decimal.Decimal `json:"sellingPrice" db:"selling_price"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" db:"purchase_price"`
	Quantity      int             `json:"quantity" db:"quantity"`
	ReorderPoint  int             `json:"reorderPoint" db:"reorder_point"`
	Status        string          `json:"status" db:"status"`
	UnitType      *string         `json:"unitType,omitempty" db:"unit_type"`
	FeaturedImage *string         `json:"featuredImage,omitempty" db:"featured_image"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`

	Category *Category `json:"category,omitempty" db:"-"`
}
