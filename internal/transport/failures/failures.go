// Package failures translates domain errors into transport outcomes: HTTP
// status codes with a diagnostic body, and broker acknowledge or reject
// decisions.
package failures

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
)

// ErrInvalidRequest marks a request or message body that could not be
// decoded.
var ErrInvalidRequest = errors.New("invalid request")

// InvalidRequest wraps a decoding error so it maps to a client error.
func InvalidRequest(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
}

// HTTPStatus maps an error to the status code returned to HTTP callers.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientQuantity),
		errors.Is(err, domain.ErrProductNameConflict),
		errors.Is(err, domain.ErrMalformedReference),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrPriceOverflow),
		errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Body is the diagnostic payload of a failed HTTP request.
type Body struct {
	Error     string `json:"error"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewBody builds the payload for err answered with status. Server errors
// do not expose the internal error text.
func NewBody(err error, status int, now time.Time) Body {
	msg := http.StatusText(status)
	if status < http.StatusInternalServerError && err != nil {
		msg = err.Error()
	}
	return Body{
		Error:     msg,
		Status:    fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Timestamp: strconv.FormatInt(now.UnixMilli(), 10),
	}
}

// Delivery is what a consumer tells the broker about a message.
type Delivery int

const (
	// Ack consumes the message.
	Ack Delivery = iota
	// Reject drops the message without requeue.
	Reject
)

func (d Delivery) String() string {
	if d == Ack {
		return "ack"
	}
	return "reject"
}

// DeliveryFor decides how a consumer settles a message whose handler
// returned err. Missing products and insufficient stock are expected
// outcomes and acknowledged; anything else is a poison message.
func DeliveryFor(err error) Delivery {
	switch {
	case err == nil,
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrInsufficientQuantity):
		return Ack
	default:
		return Reject
	}
}
