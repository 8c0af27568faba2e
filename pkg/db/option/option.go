// Package option provides composable query options for the generic store.
package option

import "gorm.io/gorm"

type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type orderBy struct {
	expr string
}

func (o orderBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(o.expr)
}

// OrderBy sorts results by the given SQL expression, e.g. "created_at DESC".
func OrderBy(expr string) QueryOption {
	return orderBy{expr: expr}
}

type where struct {
	query string
	args  []any
}

func (w where) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(w.query, w.args...)
}

// Where adds an extra condition beyond the struct filter.
func Where(query string, args ...any) QueryOption {
	return where{query: query, args: args}
}
