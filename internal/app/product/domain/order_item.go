package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderItem is one order line received from the order service.
type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"qty"`
}

func (i OrderItem) String() string {
	return fmt.Sprintf("OrderItem{productId=%s, qty=%d}", i.ProductID, i.Quantity)
}

// ParseProductID validates the shape of a product reference. Product ids
// are UUIDs; anything else is a MalformedReference.
func ParseProductID(ref string) (string, error) {
	id, err := uuid.Parse(ref)
	if err != nil {
		return "", NewMalformedReference(ref, err)
	}
	return id.String(), nil
}

// Direction selects how a quantity delta is applied.
type Direction int

const (
	// Fetch removes stock for a placed order.
	Fetch Direction = iota
	// Restore returns stock for a cancelled or returned order.
	Restore
)

func (d Direction) String() string {
	switch d {
	case Fetch:
		return "fetch"
	case Restore:
		return "restore"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ApplyDelta computes the new stock level. The result is not clamped at
// zero: concurrent fetches may drive it negative and that is recorded as is.
func ApplyDelta(current, requested int64, dir Direction) int64 {
	if dir == Restore {
		return current + requested
	}
	return current - requested
}

// AdjustQuantity applies a delta to current stock and describes the result.
// Stores call it inside their read-modify-write transaction.
func AdjustQuantity(productID string, current, requested int64, dir Direction, deliveryKey string, now time.Time) *QuantityAdjustedEvent {
	return &QuantityAdjustedEvent{
		ProductID:   productID,
		Direction:   dir.String(),
		Requested:   requested,
		Previous:    current,
		Current:     ApplyDelta(current, requested, dir),
		DeliveryKey: deliveryKey,
		AdjustedAt:  now,
	}
}
