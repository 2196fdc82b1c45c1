package repository

import (
	"context"

	"acservice/internal/model"

	"gorm.io/gorm"
)

// AuditRepository persists the change history of users and complaints
type AuditRepository interface {
	Log(ctx context.Context, entry *model.AuditLog) error
	// List returns newest first. An empty entityID lists every entry.
	List(ctx context.Context, entityID string, offset, limit int) ([]model.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Log(ctx context.Context, entry *model.AuditLog) error {
	return GetDB(ctx, r.db).Omit("User").Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, entityID string, offset, limit int) ([]model.AuditLog, int64, error) {
	q := GetDB(ctx, r.db).Model(&model.AuditLog{})
	if entityID != "" {
		q = q.Where("entity_id = ?", entityID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []model.AuditLog
	if err := q.Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
