package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// gameweekLockKey serializes gameweek closes across processes sharing a
// database.
const gameweekLockKey int64 = 0x6673_6c5f_6777

const uniqueViolation = pq.ErrorCode("23505")

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
