package persistence

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	ledger "github.com/maumaun30/CM-Pharmacy-API/internal/application/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/audit"
)

// GormAuditSink persists audit records into the audit log table. Failures
// are logged and swallowed so auditing never breaks a committed operation.
type GormAuditSink struct {
	repo   audit.LogRepository
	logger *zap.Logger
}

// NewGormAuditSink creates a new GormAuditSink
func NewGormAuditSink(db *gorm.DB, logger *zap.Logger) *GormAuditSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormAuditSink{
		repo:   NewGormAuditLogRepository(db),
		logger: logger,
	}
}

// Record writes the audit record. Always returns nil.
func (s *GormAuditSink) Record(ctx context.Context, record ledger.AuditRecord) error {
	log, err := audit.NewLog(record.Action, record.Module)
	if err != nil {
		s.logger.Warn("discarding invalid audit record",
			zap.String("action", record.Action),
			zap.String("module", record.Module),
			zap.Error(err))
		return nil
	}

	log.WithUser(record.UserID).
		WithRecord(record.RecordID).
		WithDescription(record.Description)

	if err := s.repo.Create(ctx, log); err != nil {
		s.logger.Warn("failed to persist audit record",
			zap.String("action", record.Action),
			zap.String("module", record.Module),
			zap.String("record_id", record.RecordID.String()),
			zap.Error(err))
	}
	return nil
}

var _ ledger.AuditSink = (*GormAuditSink)(nil)
