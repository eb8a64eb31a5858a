// Package relq is a typed query intermediate representation, validator,
// normalizer, and SQL generator for a relational data-mapping library.
// Callers build a Query with the From/Where/WithSelect/OrderBy/SetLimit/
// SetOffset builder methods, hand it to the validate package, then lower it to SQL
// with the sqlgen package. Nothing in the package is stateful: every
// builder method returns a new, immutable Query value.
package relq

import (
	"errors"
	"fmt"
)

// Structural errors (spec §7 category 1).
var (
	ErrEmptyFroms              = errors.New("a query must have at least one from expression")
	ErrMultiFromRequiresSelect = errors.New("a query must have a select expression if querying from more than one entity")
	ErrDuplicateClause         = errors.New("only one expression of this kind is allowed")
	ErrBindingArity            = errors.New("cannot bind more variables than there are from expressions")
	ErrRestrictedShape         = errors.New("update and delete queries may only have from and where clauses")
)

// Binding errors (category 2).
var (
	ErrDuplicateBinding   = errors.New("duplicate binding name")
	ErrInvalidBindingName = errors.New("binding name must be a valid identifier or '_'")
	ErrUnboundVariable    = errors.New("reference to an unbound variable")
)

// Schema errors (category 3).
var ErrUnknownField = errors.New("unknown field on entity")

// Typing errors (category 4).
var (
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrAtomNotAllowed exists for parity with the source error taxonomy.
	// Expr is a sealed Go interface with no bare-atom variant, so this
	// case cannot actually be constructed and never fires.
	ErrAtomNotAllowed = errors.New("atoms are not allowed")
)

// Internal errors (category 5): should not occur after validation.
var ErrUnrecognizedNode = errors.New("unrecognized expression shape")

// InvalidQuery is the single error kind the core raises. It carries a
// human-readable reason, the kind of clause it was detected in (where,
// select, order_by, limit, offset, from, update, update_set, delete — empty when
// not yet wrapped), and the source file/line of the offending clause.
type InvalidQuery struct {
	Reason string
	Clause string
	File   string
	Line   int
	err    error
}

func (e *InvalidQuery) Error() string {
	msg := e.Reason
	if e.Clause != "" {
		msg = fmt.Sprintf("%s: %s", e.Clause, msg)
	}
	if e.File != "" {
		msg = fmt.Sprintf("%s (%s:%d)", msg, e.File, e.Line)
	}
	return msg
}

func (e *InvalidQuery) Unwrap() error { return e.err }

// NewInvalidQuery wraps err as an InvalidQuery located at file:line. err is
// normally one of the sentinel errors declared above, optionally already
// wrapped with fmt.Errorf("%w: detail", sentinel).
func NewInvalidQuery(err error, file string, line int) *InvalidQuery {
	return &InvalidQuery{Reason: err.Error(), File: file, Line: line, err: err}
}

// WithClause returns a copy of e annotated with the enclosing clause kind,
// the wrap-on-error step C7 applies at each validator entry point.
func (e *InvalidQuery) WithClause(clause string) *InvalidQuery {
	cp := *e
	cp.Clause = clause
	return &cp
}
