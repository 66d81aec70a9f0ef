package query

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	// DefaultLimit is used when the caller does not ask for a page size
	DefaultLimit = 20
	// MaxLimit bounds the page size of every list endpoint
	MaxLimit = 100
)

// condition is a single parameter-bound predicate
type condition struct {
	expr string
	args []interface{}
}

// Builder accumulates filter, sort and pagination clauses for a list query.
// Filter values are always bound as parameters; column identifiers only ever
// come from the allow-lists passed by the calling repository.
type Builder struct {
	conditions []condition
	orderBy    string
	page       int
	limit      int
}

// NewBuilder creates an empty Builder with default pagination
func NewBuilder() *Builder {
	return &Builder{page: 1, limit: DefaultLimit}
}

// Equal adds a column = value predicate when value is non-empty
func (b *Builder) Equal(column string, value interface{}) *Builder {
	if s, ok := value.(string); ok && s == "" {
		return b
	}
	if value == nil {
		return b
	}
	b.conditions = append(b.conditions, condition{expr: column + " = ?", args: []interface{}{value}})
	return b
}

// NotEqual adds a column <> value predicate
func (b *Builder) NotEqual(column string, value interface{}) *Builder {
	b.conditions = append(b.conditions, condition{expr: column + " <> ?", args: []interface{}{value}})
	return b
}

// DateFrom adds a column >= value predicate when value is non-nil
func (b *Builder) DateFrom(column string, value interface{}) *Builder {
	if value == nil {
		return b
	}
	b.conditions = append(b.conditions, condition{expr: column + " >= ?", args: []interface{}{value}})
	return b
}

// DateTo adds a column <= value predicate when value is non-nil
func (b *Builder) DateTo(column string, value interface{}) *Builder {
	if value == nil {
		return b
	}
	b.conditions = append(b.conditions, condition{expr: column + " <= ?", args: []interface{}{value}})
	return b
}

// Search adds an OR'd LIKE predicate across the given text columns with
// wildcards on both ends of the term. Empty terms are ignored.
func (b *Builder) Search(columns []string, term string) *Builder {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return b
	}
	pattern := "%" + term + "%"
	parts := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		parts[i] = col + " LIKE ?"
		args[i] = pattern
	}
	b.conditions = append(b.conditions, condition{
		expr: "(" + strings.Join(parts, " OR ") + ")",
		args: args,
	})
	return b
}

// Sort sets the ORDER BY clause. Only columns present in allowed may be
// interpolated; anything else silently falls back to created_at desc.
func (b *Builder) Sort(allowed map[string]bool, sortBy, sortOrder string) *Builder {
	if !allowed[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	b.orderBy = sortBy + " " + sortOrder
	return b
}

// Paginate sets the page window. page < 1 is coerced to 1, limit < 1 to the
// default and limit > MaxLimit is clamped.
func (b *Builder) Paginate(page, limit int) *Builder {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	b.page = page
	b.limit = limit
	return b
}

// Page returns the normalized 1-based page
func (b *Builder) Page() int {
	return b.page
}

// Limit returns the normalized page size
func (b *Builder) Limit() int {
	return b.limit
}

// Offset returns the row offset derived from page and limit
func (b *Builder) Offset() int {
	return (b.page - 1) * b.limit
}

// Pages converts a total row count to a page count for the current limit
func (b *Builder) Pages(total int64) int {
	return int((total + int64(b.limit) - 1) / int64(b.limit))
}

// Scope applies only the filter predicates, for count and summary queries
// that must share the list predicate
func (b *Builder) Scope(db *gorm.DB) *gorm.DB {
	for _, c := range b.conditions {
		db = db.Where(c.expr, c.args...)
	}
	return db
}

// Apply applies filters, ordering and the page window to the query
func (b *Builder) Apply(db *gorm.DB) *gorm.DB {
	db = b.Scope(db)
	if b.orderBy != "" {
		db = db.Order(b.orderBy)
	} else {
		db = db.Order("created_at desc")
	}
	return db.Limit(b.limit).Offset(b.Offset())
}

// String renders the accumulated predicate for logging
func (b *Builder) String() string {
	parts := make([]string, len(b.conditions))
	for i, c := range b.conditions {
		parts[i] = c.expr
	}
	return fmt.Sprintf("where=[%s] order=%q page=%d limit=%d",
		strings.Join(parts, " AND "), b.orderBy, b.page, b.limit)
}
