package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Income struct {
	ID            string          `json:"id" db:"id"`
	Date          time.Time       `json:"date" db:"date"`
	Description   string          `json:"description" db:"description"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	PaymentMethod string          `json:"paymentMethod" db:"payment_method"`
	OhadaCodeID   string          `json:"ohadaCodeId" db:"ohada_code_id"`
	ShopID        *string         `json:"shopId,omitempty" db:"shop_id"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`

	OhadaCode *OhadaCode `json:"ohadaCode,omitempty" db:"-"`
}
