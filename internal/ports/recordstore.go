package ports

import (
	"context"
	"errors"
)

// ErrNoRows is returned by Update when the filter matched nothing
var ErrNoRows = errors.New("no rows matched")

// Row is a single record keyed by column name
type Row map[string]any

// Op is a filter comparison
type Op int

const (
	OpEq Op = iota
	OpIn
	OpGte
	OpLte
)

// Cond restricts a column. OpIn expects Value to be a slice.
type Cond struct {
	Column string
	Op     Op
	Value  any
}

// Filter is a conjunction of conditions
type Filter []Cond

// Order sorts a selection by one column
type Order struct {
	Column string
	Desc   bool
}

func Eq(column string, value any) Cond {
	return Cond{Column: column, Op: OpEq, Value: value}
}

func In[T any](column string, values []T) Cond {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return Cond{Column: column, Op: OpIn, Value: vs}
}

func Gte(column string, value any) Cond {
	return Cond{Column: column, Op: OpGte, Value: value}
}

func Lte(column string, value any) Cond {
	return Cond{Column: column, Op: OpLte, Value: value}
}

func Asc(column string) Order {
	return Order{Column: column}
}

func Desc(column string) Order {
	return Order{Column: column, Desc: true}
}

// RecordStore is the authoritative relational store every cache reconciles against.
// Each method is one remote round trip.
type RecordStore interface {
	Select(ctx context.Context, table string, filter Filter, order ...Order) ([]Row, error)

	// Insert returns the stored row including server assigned columns
	Insert(ctx context.Context, table string, row Row) (Row, error)

	// Update applies patch to the single row matched by filter and returns it.
	// It returns ErrNoRows when nothing matched.
	Update(ctx context.Context, table string, filter Filter, patch Row) (Row, error)

	// Delete removes matching rows. Matching nothing is not an error.
	Delete(ctx context.Context, table string, filter Filter) error
}

// Cascade describes a parent row and the child rows that reference it
type Cascade struct {
	ParentTable  string
	ParentFilter Filter
	ChildTable   string
	ChildFilter  Filter
}

// CascadeDeleter is implemented by stores able to remove a parent and its
// children in a single transaction
type CascadeDeleter interface {
	DeleteCascade(ctx context.Context, c Cascade) error
}
