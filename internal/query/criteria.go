// Package query holds the filtered-pagination core shared by every list
// endpoint: a criteria builder that composes optional filter conditions
// into a conjunction, a pager that slices ordered result sets and computes
// page metadata, and predicate helpers for the in-memory stores.
package query

import (
	"strings"

	"gorm.io/gorm"
)

// Criteria accumulates filter conditions. All conditions combine with AND;
// an empty Criteria selects everything. Conditions are independent, so the
// order they are added in does not change the selected set.
type Criteria struct {
	conds []condition
}

type condition struct {
	expr string
	args []any
}

// Equal adds an exact-match condition.
func (c *Criteria) Equal(column string, value any) *Criteria {
	c.conds = append(c.conds, condition{column + " = ?", []any{value}})
	return c
}

// Contains adds a case-insensitive substring condition.
func (c *Criteria) Contains(column, substr string) *Criteria {
	c.conds = append(c.conds, condition{
		"LOWER(" + column + ") LIKE ?",
		[]any{"%" + strings.ToLower(substr) + "%"},
	})
	return c
}

// AtLeast adds an inclusive lower bound.
func (c *Criteria) AtLeast(column string, value any) *Criteria {
	c.conds = append(c.conds, condition{column + " >= ?", []any{value}})
	return c
}

// AtMost adds an inclusive upper bound.
func (c *Criteria) AtMost(column string, value any) *Criteria {
	c.conds = append(c.conds, condition{column + " <= ?", []any{value}})
	return c
}

// IsTrue restricts to records whose boolean flag column is true.
func (c *Criteria) IsTrue(column string) *Criteria {
	c.conds = append(c.conds, condition{column + " = ?", []any{true}})
	return c
}

// AnyContains adds a single condition matching records where any of the
// given columns contains substr (case-insensitive). This is the only place
// OR appears: free-text search within one filter dimension.
func (c *Criteria) AnyContains(substr string, columns ...string) *Criteria {
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	needle := "%" + strings.ToLower(substr) + "%"
	for i, col := range columns {
		parts[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = needle
	}
	c.conds = append(c.conds, condition{"(" + strings.Join(parts, " OR ") + ")", args})
	return c
}

// Apply chains every condition onto tx as a Where clause.
func (c *Criteria) Apply(tx *gorm.DB) *gorm.DB {
	for _, cond := range c.conds {
		tx = tx.Where(cond.expr, cond.args...)
	}
	return tx
}

// Empty reports whether no conditions have been added.
func (c *Criteria) Empty() bool {
	return len(c.conds) == 0
}
