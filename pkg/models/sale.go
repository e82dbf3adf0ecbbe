package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID         string          `json:"id" db:"id"`
	ShopID     string          `json:"shopId" db:"shop_id"`
	EmployeeID *string         `json:"employeeId,omitempty" db:"employee_id"`
	NetAmount  decimal.Decimal `json:"netAmount" db:"net_amount"`
	Total      decimal.Decimal `json:"total" db:"total"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
}
