package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/jackc/pgx/v5/pgconn"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
)

// unavailableCodes are the gRPC codes that mean the store could not be
// reached, as opposed to a rejected request.
var unavailableCodes = map[codes.Code]bool{
	codes.Unavailable:       true,
	codes.DeadlineExceeded:  true,
	codes.ResourceExhausted: true,
	codes.Unauthenticated:   true,
	codes.PermissionDenied:  true,
}

// classifySpanner wraps err so callers can match connectivity failures
// with domain.ErrStoreUnavailable.
func classifySpanner(op string, err error) error {
	if err == nil {
		return nil
	}
	if unavailableCodes[spanner.ErrCode(err)] || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewStoreUnavailable(op, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// classifyPostgres does the same for pgx errors. A server-side error
// carries a SQLSTATE; class 08 (connection exception) and 57P0x (operator
// intervention, e.g. shutdown) are connectivity failures. Errors that never
// reached the server are too.
func classifyPostgres(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if len(pgErr.Code) == 5 && (pgErr.Code[:2] == "08" || pgErr.Code[:4] == "57P0") {
			return domain.NewStoreUnavailable(op, err)
		}
		return fmt.Errorf("failed to %s: %w", op, err)
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to %s: %w", op, err)
	}

	return domain.NewStoreUnavailable(op, err)
}
