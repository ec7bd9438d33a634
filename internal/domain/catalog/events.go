package catalog

import (
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeProduct = "Product"
	AggregateTypeBranch  = "Branch"
)

// Event type constants
const (
	EventTypeProductCreated = "ProductCreated"
	EventTypeProductUpdated = "ProductUpdated"
)

// ProductCreatedEvent is raised when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		SKU:             product.SKU,
		Name:            product.Name,
	}
}

// EventType returns the event type name
func (e *ProductCreatedEvent) EventType() string {
	return EventTypeProductCreated
}

// ProductUpdatedEvent is raised when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		SKU:             product.SKU,
		Name:            product.Name,
	}
}

// EventType returns the event type name
func (e *ProductUpdatedEvent) EventType() string {
	return EventTypeProductUpdated
}
