package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	appErrors "github.com/rguhub/catalog-api/pkg/errors"
)

// uniqueViolation is the Postgres error code for unique constraint breaches.
const uniqueViolation = pq.ErrorCode("23505")

// mapConstraintErr translates Postgres unique violations into the shared
// sentinel so services can retry or surface a conflict without importing pq.
func mapConstraintErr(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, appErrors.ErrUniqueViolation)
	}
	return fmt.Errorf("%s: %w", op, err)
}
