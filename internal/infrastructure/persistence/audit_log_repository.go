package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/audit"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// GormAuditLogRepository implements LogRepository using GORM.
// Logs are append-only.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Create appends an audit log record
func (r *GormAuditLogRepository) Create(ctx context.Context, log *audit.Log) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindByUser finds audit logs for a user, newest first
func (r *GormAuditLogRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]audit.Log, error) {
	var logs []audit.Log
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&audit.Log{}).
			Where("user_id = ?", userID),
		filter,
	)

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindByModule finds audit logs for a module
func (r *GormAuditLogRepository) FindByModule(ctx context.Context, module string, filter shared.Filter) ([]audit.Log, error) {
	var logs []audit.Log
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&audit.Log{}).
			Where("module = ?", module),
		filter,
	)

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindByDateRange finds audit logs within a time window
func (r *GormAuditLogRepository) FindByDateRange(ctx context.Context, start, end time.Time, filter shared.Filter) ([]audit.Log, error) {
	var logs []audit.Log
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&audit.Log{}).
			Where("created_at >= ? AND created_at <= ?", start, end),
		filter,
	)

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *GormAuditLogRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "action":
			query = query.Where("action = ?", value)
		case "module":
			query = query.Where("module = ?", value)
		case "record_id":
			query = query.Where("record_id = ?", value)
		}
	}

	query = paginate(query, filter)

	return query.Order("created_at DESC")
}

var _ audit.LogRepository = (*GormAuditLogRepository)(nil)
