package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/audit"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// LogService provides read access to the audit trail
type LogService struct {
	repo audit.LogRepository
}

// NewLogService creates a new audit log service
func NewLogService(repo audit.LogRepository) *LogService {
	return &LogService{repo: repo}
}

// LogResponse is the API representation of an audit log record
type LogResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	Action      string     `json:"action"`
	Module      string     `json:"module"`
	RecordID    *uuid.UUID `json:"record_id,omitempty"`
	Description string     `json:"description,omitempty"`
	IPAddress   string     `json:"ip_address,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ListByUser returns the audit trail of a single user
func (s *LogService) ListByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]LogResponse, error) {
	logs, err := s.repo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return toLogResponses(logs), nil
}

// ListByModule returns the audit trail of a single module
func (s *LogService) ListByModule(ctx context.Context, module string, filter shared.Filter) ([]LogResponse, error) {
	logs, err := s.repo.FindByModule(ctx, module, filter)
	if err != nil {
		return nil, err
	}
	return toLogResponses(logs), nil
}

// ListByDateRange returns audit records created within [start, end]
func (s *LogService) ListByDateRange(ctx context.Context, start, end time.Time, filter shared.Filter) ([]LogResponse, error) {
	if end.Before(start) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "End date must not precede start date")
	}
	logs, err := s.repo.FindByDateRange(ctx, start, end, filter)
	if err != nil {
		return nil, err
	}
	return toLogResponses(logs), nil
}

func toLogResponses(logs []audit.Log) []LogResponse {
	responses := make([]LogResponse, len(logs))
	for i, l := range logs {
		responses[i] = LogResponse{
			ID:          l.ID,
			UserID:      l.UserID,
			Action:      l.Action,
			Module:      l.Module,
			RecordID:    l.RecordID,
			Description: l.Description,
			IPAddress:   l.IPAddress,
			CreatedAt:   l.CreatedAt,
		}
	}
	return responses
}
