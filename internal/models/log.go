package models

import "github.com/google/uuid"

// Log levels.
const (
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Log categories.
const (
	LogCategoryAPI        = "api"
	LogCategoryAdmin      = "admin"
	LogCategoryBackground = "background"
	LogCategoryError      = "error"
	LogCategorySystem     = "system"
)

// LogEntry is a persisted application log row. Entries older than one
// year are purged by the cleanup-logs maintenance job.
type LogEntry struct {
	BaseModel
	Level    string     `gorm:"index" json:"level"`
	Category string     `gorm:"index" json:"category"`
	Message  string     `json:"message"`
	Metadata []byte     `gorm:"type:jsonb" json:"metadata"`
	UserID   *uuid.UUID `gorm:"type:uuid" json:"user_id"`
	IP       string     `json:"ip"`
}

func (LogEntry) TableName() string {
	return "logs"
}
