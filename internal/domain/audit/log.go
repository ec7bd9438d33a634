package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// Log represents a single audit trail record. Logs are append-only and
// best-effort; failing to write one never fails the operation it describes.
type Log struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      *uuid.UUID `gorm:"type:uuid;index"`
	Action      string     `gorm:"type:varchar(50);not null;index"`
	Module      string     `gorm:"type:varchar(50);not null;index"`
	RecordID    *uuid.UUID `gorm:"type:uuid;index"`
	Description string     `gorm:"type:text"`
	Metadata    string     `gorm:"type:jsonb"`
	IPAddress   string     `gorm:"type:varchar(45)"`
	UserAgent   string     `gorm:"type:varchar(255)"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;not null;index"`
}

// TableName returns the table name for GORM
func (Log) TableName() string {
	return "logs"
}

// NewLog creates an audit log record
func NewLog(action, module string) (*Log, error) {
	if action == "" {
		return nil, shared.NewDomainError("INVALID_ACTION", "Action cannot be empty")
	}
	if module == "" {
		return nil, shared.NewDomainError("INVALID_MODULE", "Module cannot be empty")
	}

	return &Log{
		ID:        uuid.New(),
		Action:    action,
		Module:    module,
		CreatedAt: time.Now(),
	}, nil
}

// WithUser attaches the acting user
func (l *Log) WithUser(userID uuid.UUID) *Log {
	l.UserID = &userID
	return l
}

// WithRecord attaches the record the action applied to
func (l *Log) WithRecord(recordID uuid.UUID) *Log {
	l.RecordID = &recordID
	return l
}

// WithDescription attaches a human-readable description
func (l *Log) WithDescription(description string) *Log {
	l.Description = description
	return l
}

// WithMetadata attaches structured JSON metadata
func (l *Log) WithMetadata(metadata string) *Log {
	l.Metadata = metadata
	return l
}

// WithRequestInfo attaches client request details
func (l *Log) WithRequestInfo(ipAddress, userAgent string) *Log {
	l.IPAddress = ipAddress
	l.UserAgent = userAgent
	return l
}
