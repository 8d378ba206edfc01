package logstore

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/printly/internal/models"
)

// Store persists application log entries to the logs table.
type Store struct {
	db *gorm.DB
}

// New constructs a Store.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Entry carries optional context for a log row.
type Entry struct {
	Metadata map[string]interface{}
	UserID   *uuid.UUID
	IP       string
}

// Info writes an info-level entry.
func (s *Store) Info(category, message string, entry Entry) {
	s.write(models.LogLevelInfo, category, message, entry)
}

// Warn writes a warn-level entry.
func (s *Store) Warn(category, message string, entry Entry) {
	s.write(models.LogLevelWarn, category, message, entry)
}

// Error writes an error-level entry.
func (s *Store) Error(category, message string, entry Entry) {
	s.write(models.LogLevelError, category, message, entry)
}

// write never propagates failures; a broken log store must not take
// request handling down with it.
func (s *Store) write(level, category, message string, entry Entry) {
	if s == nil || s.db == nil {
		return
	}

	row := models.LogEntry{
		Level:    level,
		Category: category,
		Message:  message,
		UserID:   entry.UserID,
		IP:       entry.IP,
	}

	if len(entry.Metadata) > 0 {
		if data, err := json.Marshal(entry.Metadata); err == nil {
			row.Metadata = data
		}
	}

	if err := s.db.Create(&row).Error; err != nil {
		log.Printf("[logstore] failed to persist log entry: %v", err)
	}
}
