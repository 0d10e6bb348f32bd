package datastore

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// Sentinel errors returned by the repositories. Callers match them with
// errors.Is and decide how to surface them.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrNoteNotFound   = errors.New("note not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// isUniqueViolation reports whether err was caused by a unique constraint.
// Postgres reports these with SQLSTATE 23505; the sqlite driver used in
// tests only reports them by message.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
