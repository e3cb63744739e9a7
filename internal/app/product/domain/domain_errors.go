package domain

import (
	"errors"
	"fmt"
)

// Domain errors as sentinel values. Typed errors below match them through
// errors.Is.
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrProductNameConflict  = errors.New("product name already exists")
	ErrMalformedReference   = errors.New("malformed product reference")
	ErrStoreUnavailable     = errors.New("product store unavailable")

	// Validation errors
	ErrEmptyName       = errors.New("product name cannot be blank")
	ErrInvalidPrice    = errors.New("product price cannot be negative")
	ErrInvalidQuantity = errors.New("product quantity cannot be negative")
	ErrInvalidCategory = errors.New("invalid product category")
	ErrPriceOverflow   = errors.New("product price exceeds storage precision")

	ErrAccessDenied = errors.New("access denied")

	// ErrConcurrentModification reports a lost optimistic-lock race.
	ErrConcurrentModification = errors.New("product was modified concurrently")
)

// ProductNotFoundError carries the id of a missing product.
type ProductNotFoundError struct {
	ProductID string
}

// NewProductNotFound builds the not-found signal for productID.
func NewProductNotFound(productID string) error {
	return &ProductNotFoundError{ProductID: productID}
}

func (e *ProductNotFoundError) Error() string {
	return "product not found with ID: " + e.ProductID
}

func (e *ProductNotFoundError) Is(target error) bool { return target == ErrProductNotFound }

// InsufficientQuantityError reports a request for more stock than exists.
type InsufficientQuantityError struct {
	ProductID string
	Available int64
	Requested int64
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("not enough quantity of product with ID %s: %d; expected: %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientQuantityError) Is(target error) bool { return target == ErrInsufficientQuantity }

// ProductNameConflictError reports a create or rename onto a name already in use.
type ProductNameConflictError struct {
	Name string
}

func (e *ProductNameConflictError) Error() string {
	return fmt.Sprintf("product with name %q already exists", e.Name)
}

func (e *ProductNameConflictError) Is(target error) bool { return target == ErrProductNameConflict }

// MalformedReferenceError reports a product reference that is not an id.
type MalformedReferenceError struct {
	Reference string
	Cause     error
}

// NewMalformedReference builds the error for an unparsable reference.
func NewMalformedReference(ref string, cause error) error {
	return &MalformedReferenceError{Reference: ref, Cause: cause}
}

func (e *MalformedReferenceError) Error() string {
	return fmt.Sprintf("malformed product reference %q", e.Reference)
}

func (e *MalformedReferenceError) Is(target error) bool { return target == ErrMalformedReference }

func (e *MalformedReferenceError) Unwrap() error { return e.Cause }

// StoreUnavailableError wraps a transport failure talking to the store.
type StoreUnavailableError struct {
	Op  string
	Err error
}

// NewStoreUnavailable wraps err as a store connectivity failure.
func NewStoreUnavailable(op string, err error) error {
	return &StoreUnavailableError{Op: op, Err: err}
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("product store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Is(target error) bool { return target == ErrStoreUnavailable }

func (e *StoreUnavailableError) Unwrap() error { return e.Err }
