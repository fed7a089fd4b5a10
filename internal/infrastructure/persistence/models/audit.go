package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/audit"
)

// JSONMap stores arbitrary key-value metadata as a jsonb column.
type JSONMap map[string]any

// Value implements driver.Valuer for JSONMap
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return "{}", nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSONMap
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONMap", value)
	}
	return json.Unmarshal(data, j)
}

// AuditEventModel is the persistence model for audit events.
// Audit rows are append-only; they are never updated or deleted.
type AuditEventModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ActorID    *uuid.UUID `gorm:"type:uuid;index"`
	EventCode  string     `gorm:"type:varchar(50);not null;index"`
	EntityType string     `gorm:"type:varchar(50);not null;index"`
	EntityID   *uuid.UUID `gorm:"type:uuid;index"`
	Metadata   JSONMap    `gorm:"type:jsonb;default:'{}'"`
	OccurredAt time.Time  `gorm:"not null;index"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (AuditEventModel) TableName() string {
	return "audit_events"
}

// ToDomain converts the persistence model to a domain audit Event.
func (m *AuditEventModel) ToDomain() *audit.Event {
	return &audit.Event{
		ID:         m.ID,
		TenantID:   m.TenantID,
		ActorID:    m.ActorID,
		EventCode:  m.EventCode,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Metadata:   m.Metadata,
		OccurredAt: m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain audit Event.
func (m *AuditEventModel) FromDomain(e *audit.Event) {
	m.ID = e.ID
	m.TenantID = e.TenantID
	m.ActorID = e.ActorID
	m.EventCode = e.EventCode
	m.EntityType = e.EntityType
	m.EntityID = e.EntityID
	m.Metadata = e.Metadata
	m.OccurredAt = e.OccurredAt
}

// AuditEventModelFromDomain creates a new persistence model from a domain audit Event.
func AuditEventModelFromDomain(e *audit.Event) *AuditEventModel {
	m := &AuditEventModel{}
	m.FromDomain(e)
	return m
}
