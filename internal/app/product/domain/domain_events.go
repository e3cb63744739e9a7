package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// ProductCreatedEvent is emitted when a product is created.
type ProductCreatedEvent struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     Money     `json:"price"`
	Quantity  int64     `json:"qty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e *ProductCreatedEvent) EventType() string   { return "product.created" }
func (e *ProductCreatedEvent) AggregateID() string { return e.ProductID }

// ProductUpdatedEvent is emitted when a management update changed fields.
type ProductUpdatedEvent struct {
	ProductID string    `json:"productId"`
	Fields    []string  `json:"fields"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     Money     `json:"price"`
	Quantity  int64     `json:"qty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *ProductUpdatedEvent) EventType() string   { return "product.updated" }
func (e *ProductUpdatedEvent) AggregateID() string { return e.ProductID }

// ProductDeletedEvent is emitted when a product is removed.
type ProductDeletedEvent struct {
	ProductID string    `json:"productId"`
	DeletedAt time.Time `json:"deletedAt"`
}

func (e *ProductDeletedEvent) EventType() string   { return "product.deleted" }
func (e *ProductDeletedEvent) AggregateID() string { return e.ProductID }

// QuantityAdjustedEvent is emitted by the reconciliation path for every
// applied delta. DeliveryKey identifies the broker delivery that caused it,
// so a redelivered batch shows up as two events with the same key.
type QuantityAdjustedEvent struct {
	ProductID   string    `json:"productId"`
	Direction   string    `json:"direction"`
	Requested   int64     `json:"requested"`
	Previous    int64     `json:"previous"`
	Current     int64     `json:"current"`
	DeliveryKey string    `json:"deliveryKey,omitempty"`
	AdjustedAt  time.Time `json:"adjustedAt"`
}

func (e *QuantityAdjustedEvent) EventType() string   { return "product.quantity_adjusted" }
func (e *QuantityAdjustedEvent) AggregateID() string { return e.ProductID }
