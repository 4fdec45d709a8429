package models

import "time"

// AuditLog records mutating API calls for auditing.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Method    string    `gorm:"size:16" json:"method"`
	Path      string    `gorm:"size:255" json:"path"`
	Body      string    `gorm:"size:2048" json:"body,omitempty"`
	Status    int       `json:"status"`
	IP        string    `gorm:"size:64" json:"ip"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}
