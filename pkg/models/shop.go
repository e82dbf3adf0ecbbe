package models

import "time"

type Shop struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	BusinessID string    `json:"businessId" db:"business_id"`
	Address    *string   `json:"address,omitempty" db:"address"`
	City       *string   `json:"city,omitempty" db:"city"`
	Country    *string   `json:"country,omitempty" db:"country"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type Business struct {
	ID               string    `json:"id" db:"id"`
	FullBusinessName string    `json:"fullBusinessName" db:"full_business_name"`
	BusinessType     *string   `json:"businessType,omitempty" db:"business_type"`
	OwnerID          string    `json:"ownerId" db:"owner_id"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}
