package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-catalog/internal/models"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Record(ctx context.Context, ev Event) error {
	row := ev.ToLog()
	return s.db.WithContext(ctx).Create(&row).Error
}

func (s *GormStore) List(ctx context.Context, tenantID uint, q Query) ([]models.AuditLog, int64, error) {
	tx := s.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("tenant_id = ?", tenantID)

	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if q.From != nil {
		tx = tx.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("created_at < ?", *q.To)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := tx.
		Order("created_at DESC, id DESC").
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

var _ Store = (*GormStore)(nil)
