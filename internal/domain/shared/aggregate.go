package shared

// AggregateRoot marks the consistency boundary of a bounded context.
// Aggregates record domain events while mutating; the application layer
// publishes and clears them after the transaction commits.
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot adds optimistic-lock versioning and event recording
// on top of BaseEntity. The events slice never persists.
type BaseAggregateRoot struct {
	BaseEntity
	Version      int           `gorm:"not null;default:1"`
	domainEvents []DomainEvent `gorm:"-"`
}

// NewBaseAggregateRoot starts a fresh aggregate at version 1.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}

func (a *BaseAggregateRoot) GetVersion() int { return a.Version }

// IncrementVersion bumps the optimistic-lock version; call on every state
// change that will be saved.
func (a *BaseAggregateRoot) IncrementVersion() { a.Version++ }

// AddDomainEvent records an event for publication after commit.
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent { return a.domainEvents }

func (a *BaseAggregateRoot) ClearDomainEvents() { a.domainEvents = nil }
