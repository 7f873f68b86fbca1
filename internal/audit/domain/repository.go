package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ListFilter struct {
	Action     string
	TargetType string
	TargetID   string
	StartAt    *time.Time
	EndAt      *time.Time
	Limit      int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *AuditLog) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*AuditLog, error)
}

// Service records and reads audit entries. Callers ignore recording errors:
// an audit miss must not fail the underlying mutation.
type Service interface {
	AuditLog(ctx context.Context, actorID string, action string, targetType string, targetID *string, metadata map[string]any) error
	List(ctx context.Context, filter ListFilter) ([]*AuditLog, error)
}
