package models

type Category struct {
	ID         string  `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	BusinessID string  `json:"businessId" db:"business_id"`
	Image      *string `json:"image,omitempty" db:"image"`
}

type Supplier struct {
	ID         string  `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	BusinessID string  `json:"businessId" db:"business_id"`
	Phone      *string `json:"phone,omitempty" db:"phone"`
	Email      *string `json:"email,omitempty" db:"email"`
}
