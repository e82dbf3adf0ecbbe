package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string           `json:"id" db:"id"`
	FirstName        string           `json:"firstName" db:"first_name"`
	LastName         string           `json:"lastName" db:"last_name"`
	Phone            *string          `json:"phone,omitempty" db:"phone"`
	Status           string           `json:"status" db:"status"`
	HireDate         time.Time        `json:"hireDate" db:"hire_date"`
	EmploymentStatus *string          `json:"employmentStatus,omitempty" db:"employment_status"`
	Salary           *decimal.Decimal `json:"salary,omitempty" db:"salary"`
	UserID           string           `json:"userId" db:"user_id"`
	ShopID           string           `json:"shopId" db:"shop_id"`
	BusinessID       string           `json:"businessId" db:"business_id"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`

	User *User `json:"user,omitempty" db:"-"`
	Shop *Shop `json:"shop,omitempty" db:"-"`
}
