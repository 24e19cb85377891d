// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file centralizes the error sentinels shared by the
// repository functions.
//
// Error semantics:
//   - When a row is not found, functions return ErrNotFound
//     (an alias of gorm.ErrRecordNotFound).
//   - Conditional inserts that collide on a unique key return ErrDuplicate.
//   - On other DB errors (connectivity, constraint violations outside the
//     cases above), the raw gorm error is propagated.
package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates that a conditional insert collided with an
// existing row on a primary key or unique index.
var ErrDuplicate = errors.New("duplicate")

// isUniqueViolation detects unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey. glebarez/sqlite in particular
// surfaces them as plain-text errors.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}
