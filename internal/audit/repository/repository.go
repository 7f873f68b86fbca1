package repository

import (
	"context"

	auditdomain "github.com/wisphub/netdesk/internal/audit/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() auditdomain.Repository {
	return repo{}
}

func (repo) Insert(ctx context.Context, db *gorm.DB, entry *auditdomain.AuditLog) error {
	return db.WithContext(ctx).Create(entry).Error
}

func (repo) List(ctx context.Context, db *gorm.DB, filter auditdomain.ListFilter) ([]*auditdomain.AuditLog, error) {
	query := db.WithContext(ctx).Model(&auditdomain.AuditLog{})

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}
	if filter.TargetID != "" {
		query = query.Where("target_id = ?", filter.TargetID)
	}
	if filter.StartAt != nil {
		query = query.Where("created_at >= ?", *filter.StartAt)
	}
	if filter.EndAt != nil {
		query = query.Where("created_at < ?", *filter.EndAt)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var entries []*auditdomain.AuditLog
	if err := query.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
