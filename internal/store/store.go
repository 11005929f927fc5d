package store

import (
	"errors"
	"strings"
	"time"

	"pigmento/internal/workbook"
)

var nowFunc = time.Now

// Repository mediates every read and write of the entity worksheets. Each
// mutation loads the full table, edits it in memory, and rewrites the whole
// sheet through the workbook store; the revision guard refuses the rewrite
// when the sheet moved underneath the edit.
type Repository struct {
	sheets workbook.Store
}

// New builds a repository over the given worksheet store.
func New(sheets workbook.Store) *Repository {
	return &Repository{sheets: sheets}
}

// ValidationError reports why a mutation was refused before any write was
// attempted. It is surfaced to the user as an inline warning, never as a
// server fault.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

func validationFailure(reasons ...string) error {
	return &ValidationError{Reasons: reasons}
}

// IsValidation reports whether the error is a validation refusal.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
