// Package library stores named formulas so they can be evaluated by name.
//
// A library holds formula source text only. Nothing is parsed on Save: a
// Converter compiles the source when the formula is first evaluated and
// caches the program like any other formula.
package library

import (
	"errors"
	"strings"
	"time"
)

// Store persists named formulas.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores the source of a formula under name.
	// Overwrites an existing formula and bumps its revision.
	Save(name, source string) error

	// Load retrieves the source of a formula.
	// Returns ErrNotFound if no formula has that name.
	Load(name string) (string, error)

	// List returns metadata for every stored formula, ordered by name.
	// Returns empty slice (not error) if the library is empty.
	List() ([]Info, error)

	// Delete removes a formula.
	// Returns nil if the formula doesn't exist.
	Delete(name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides metadata without loading the source.
type Info struct {
	Name string
	// Revision starts at 1 and increments on every Save of the same name.
	Revision int
	Updated  time.Time
	Size     int64
}

// Sentinel errors for library operations.
var (
	// ErrNotFound indicates a formula doesn't exist.
	ErrNotFound = errors.New("formula not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("formula library closed")

	// ErrInvalidName indicates an empty or blank formula name.
	ErrInvalidName = errors.New("formula name must not be blank")
)

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	return nil
}
