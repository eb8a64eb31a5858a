package relq

import (
	"github.com/kcmvp/relq/entity"
	"github.com/samber/mo"
)

// Direction is the sort direction of an order-by term.
type Direction int

const (
	DirNone Direction = iota
	DirAsc
	DirDesc
)

// OrderTerm is one `(direction, var, field)` element of an order-by body.
type OrderTerm struct {
	Direction Direction
	Var       string
	Field     string
}

// SelectKind tags the shape of a select body (spec §3.1).
type SelectKind int

const (
	SelectEntity SelectKind = iota
	SelectTuple
	SelectList
	SelectExpr
)

// clause is the common envelope every non-from clause carries: an
// ordered binding to zip against froms, and the source coordinates used
// to enrich validation errors (spec §3.2).
type clause struct {
	Binding []string
	File    string
	Line    int
}

// WhereClause is a single AND-combined boolean predicate.
type WhereClause struct {
	clause
	Expr Expr
}

// SelectClause is the optional projection. Body's shape is interpreted
// according to Kind: for SelectEntity, Body is a VarRef; for SelectTuple
// it is a TupleExpr; for SelectList a ListExpr; for SelectExpr any
// scalar Expr.
type SelectClause struct {
	clause
	Kind SelectKind
	Body Expr
}

// OrderByClause is one `order_by` invocation; Terms is its (direction,
// var, field) sequence.
type OrderByClause struct {
	clause
	Terms []OrderTerm
}

// ValueClause carries the expression for a limit or offset clause; spec
// §3.1 allows either a literal integer or an expression evaluating to one.
type ValueClause struct {
	clause
	Value Expr
}

// Query is the immutable query value (spec §3.1). Every builder method
// returns a new Query; nothing here is mutated in place.
type Query struct {
	Froms    []entity.Entity
	Wheres   []WhereClause
	Select   mo.Option[SelectClause]
	OrderBys []OrderByClause
	Limit    mo.Option[ValueClause]
	Offset   mo.Option[ValueClause]
}

// Queryable is anything convertible to a Query: a Query itself, or an
// entity reference treated as `from(entity)` (spec glossary).
type Queryable interface {
	ToQuery() Query
}

func (q Query) ToQuery() Query { return q }

// EntityRef adapts a bare entity.Entity into a Queryable, satisfying
// "Queryable: ... either a Query or an entity reference".
type EntityRef struct{ Entity entity.Entity }

func (r EntityRef) ToQuery() Query { return Query{Froms: []entity.Entity{r.Entity}} }

// NewSelectClause builds a SelectClause. It exists so the normalize
// package — which is not allowed to name the unexported `clause` type —
// can install the default select (spec §4.3) without the builder's
// duplicate-clause bookkeeping.
func NewSelectClause(kind SelectKind, body Expr, binding []string, file string, line int) SelectClause {
	return SelectClause{clause: clause{Binding: binding, File: file, Line: line}, Kind: kind, Body: body}
}
