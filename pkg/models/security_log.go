package models

import "time"

// Security events recorded by pkg/auditlog.
const (
	EventLogin       = "login"
	EventFailedLogin = "failed_login"
	EventLogout      = "logout"
)

type SecurityLog struct {
	ID          string    `json:"id" db:"id"`
	UserID      *string   `json:"userId,omitempty" db:"user_id"`
	EventType   string    `json:"eventType" db:"event_type"`
	Status      string    `json:"status" db:"status"`
	Description string    `json:"description" db:"event_description"`
	Severity    string    `json:"severity" db:"severity"`
	ShopID      *string   `json:"shopId,omitempty" db:"shop_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
