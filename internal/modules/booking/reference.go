package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	referencePrefix = "BK"

	// The suffix space is 4 digits per day. On a busy day collisions become
	// likely long before the space is exhausted, so the retry loop is bounded
	// and reports exhaustion instead of spinning.
	referenceAttempts = 10
)

// generateReference produces a human-readable reference of the form
// BK<yyyymmdd><4 random digits>, retrying with a fresh suffix while the
// candidate is already taken.
func (s *Service) generateReference(ctx context.Context) (string, error) {
	datePart := time.Now().UTC().Format("20060102")

	for i := 0; i < referenceAttempts; i++ {
		ref := fmt.Sprintf("%s%s%04d", referencePrefix, datePart, s.randInt(10000))

		exists, err := s.bookings.ReferenceExists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !exists {
			return ref, nil
		}
	}

	s.loggerf("level=error msg=booking reference space exhausted date=%s attempts=%d", datePart, referenceAttempts)
	return "", ErrReferenceExhausted
}

// isDuplicateReference detects the rare race where two requests pass the
// existence check with the same candidate; the unique index catches it.
func isDuplicateReference(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "booking_reference")
	}
	return false
}
