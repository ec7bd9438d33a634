package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every persisted domain object.
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity carries the identity and timestamps shared by all entities.
// Embeds directly into aggregate structs; gorm maps the fields.
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null"`
}

// NewBaseEntity allocates an identity with both timestamps set to now.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (e *BaseEntity) GetID() uuid.UUID { return e.ID }

func (e *BaseEntity) GetCreatedAt() time.Time { return e.CreatedAt }

func (e *BaseEntity) GetUpdatedAt() time.Time { return e.UpdatedAt }
