package persistence

import (
	"context"

	"github.com/societyhub/backend/internal/domain/audit"
	"github.com/societyhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAuditRecorder persists audit events to the audit_events table
type GormAuditRecorder struct {
	db *gorm.DB
}

// NewGormAuditRecorder creates a new GormAuditRecorder
func NewGormAuditRecorder(db *gorm.DB) *GormAuditRecorder {
	return &GormAuditRecorder{db: db}
}

// Record inserts the event. The table is append-only so this is always a
// create, never an upsert.
func (r *GormAuditRecorder) Record(ctx context.Context, event audit.Event) error {
	model := models.AuditEventModelFromDomain(&event)
	return r.db.WithContext(ctx).Create(model).Error
}

// Ensure GormAuditRecorder implements Recorder
var _ audit.Recorder = (*GormAuditRecorder)(nil)
