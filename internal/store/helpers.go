package store

import (
	"database/sql"
	"errors"
)

// isNoRows reports whether the error means the key was never written
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
