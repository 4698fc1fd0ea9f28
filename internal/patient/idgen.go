package patient

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Patient ids are P + four-digit year + a per-year counter of at least three
// digits: P2026001, P2026002, ... P20261000.
const maxCreateAttempts = 3

// PostgreSQL error codes that make id generation worth another attempt.
const (
	pqSerializationFailure = "40001"
	pqUniqueViolation      = "23505"
)

func idPrefix(year int) string {
	return fmt.Sprintf("P%d", year)
}

func formatPatientID(year, counter int) string {
	return fmt.Sprintf("P%d%03d", year, counter)
}

// retryable reports whether a failed create transaction lost a race for the
// next counter.
func retryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case pqSerializationFailure, pqUniqueViolation:
		return true
	}
	return false
}
