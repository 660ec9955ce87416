package store

import "fmt"

// NotFoundError reports that an id does not resolve to an existing record
// of the expected kind.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// DuplicateError reports a unique-constraint conflict, naming the
// conflicting value.
type DuplicateError struct {
	Entity string
	Field  string
	Value  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s %s already exists", e.Entity, e.Field, e.Value)
}

// Entity names used in store errors.
const (
	EntityCompany     = "Company"
	EntityInsider     = "Insider"
	EntityTransaction = "Transaction"
	EntityUser        = "User"
	EntityItem        = "Item"
)
