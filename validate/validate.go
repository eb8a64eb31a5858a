// Package validate implements the validator entry points (spec §4.4, C7):
// it orchestrates the environment builder and type checker against a
// built Query, and is the only place clause-scoped errors get their clause
// kind attached. It does not normalize; normalize.Normalize is a separate
// step the caller runs before SQL generation.
package validate

import (
	"fmt"

	"github.com/kcmvp/relq"
	"github.com/kcmvp/relq/internal/env"
	"github.com/kcmvp/relq/internal/typecheck"
)

// SetPair is one `(field, expr)` element of an update's SET list.
type SetPair struct {
	Field string
	Value relq.Expr
}

// Options tunes Validate's checks. SkipSelect is set by ValidateUpdate and
// ValidateDelete, which enforce select absence themselves as part of the
// restricted-shape check.
type Options struct {
	SkipSelect bool
}

// Validate runs the structural invariants of §3.1 plus where- and
// (optionally) select-type checks.
func Validate(q relq.Query, opts Options) error {
	if len(q.Froms) == 0 {
		return relq.NewInvalidQuery(wrapf(relq.ErrEmptyFroms, ""), "", 0).WithClause("from")
	}
	if !opts.SkipSelect && len(q.Froms) > 1 && !q.Select.IsPresent() {
		return relq.NewInvalidQuery(wrapf(relq.ErrMultiFromRequiresSelect, ""), "", 0).WithClause("select")
	}

	for _, w := range q.Wheres {
		e := env.Resolve(q.Froms, w.Binding)
		typ, err := typecheck.Infer(w.Expr, e)
		if err != nil {
			iq := asInvalidQuery(err).WithClause("where")
			iq.File, iq.Line = w.File, w.Line
			return iq
		}
		if typ != typecheck.Boolean {
			return relq.NewInvalidQuery(wrapf(relq.ErrTypeMismatch, "where clause must be boolean"), w.File, w.Line).WithClause("where")
		}
	}

	if !opts.SkipSelect && q.Select.IsPresent() {
		sel := q.Select.MustGet()
		e := env.Resolve(q.Froms, sel.Binding)
		if err := checkSelectBody(sel.Body, e); err != nil {
			iq := asInvalidQuery(err).WithClause("select")
			iq.File, iq.Line = sel.File, sel.Line
			return iq
		}
	}

	return nil
}

// checkSelectBody type-checks every subexpression of a select body.
// Tuples and lists are checked element-wise; Infer already recurses into
// their children, so a single call suffices, but this keeps the select
// path explicit per spec §4.2 ("every subexpression must type
// successfully; top-level type is not constrained").
func checkSelectBody(body relq.Expr, e env.Env) error {
	_, err := typecheck.Infer(body, e)
	return err
}

// restrictedShape enforces the §4.2 update/delete shape: only from and
// where clauses are permitted.
func restrictedShape(q relq.Query) error {
	if q.Select.IsPresent() || len(q.OrderBys) > 0 || q.Limit.IsPresent() || q.Offset.IsPresent() {
		return relq.NewInvalidQuery(wrapf(relq.ErrRestrictedShape, ""), "", 0)
	}
	return nil
}

// ValidateUpdate requires the restricted shape, merges binding against the
// single-from entity, checks each (field, expr) pair as in §4.2, then
// validates the rest of the query with select checks skipped.
func ValidateUpdate(q relq.Query, binding []string, sets []SetPair) error {
	if err := restrictedShape(q); err != nil {
		return err.(*relq.InvalidQuery).WithClause("update")
	}
	if len(q.Froms) != 1 {
		return relq.NewInvalidQuery(wrapf(relq.ErrRestrictedShape, "update_all requires exactly one from"), "", 0).WithClause("update")
	}
	e := env.Resolve(q.Froms, binding)
	ent := q.Froms[0]
	for _, set := range sets {
		if !contains(ent.FieldNames(), set.Field) {
			return relq.NewInvalidQuery(fmt.Errorf("%w: %s", relq.ErrUnknownField, set.Field), "", 0).WithClause("update_set")
		}
		exprType, err := typecheck.Infer(set.Value, e)
		if err != nil {
			return asInvalidQuery(err).WithClause("update_set")
		}
		declType, ok := typecheck.FieldKindToType(ent.FieldType(set.Field))
		if !ok {
			return relq.NewInvalidQuery(fmt.Errorf("%w: %s (undeclared kind)", relq.ErrUnknownField, set.Field), "", 0).WithClause("update_set")
		}
		if exprType != declType {
			return relq.NewInvalidQuery(fmt.Errorf("%w: field %s declared %s, got %s", relq.ErrTypeMismatch, set.Field, declType, exprType), "", 0).WithClause("update_set")
		}
	}
	return Validate(q, Options{SkipSelect: true})
}

// ValidateDelete requires the restricted shape and validates the rest of
// the query with select checks skipped.
func ValidateDelete(q relq.Query) error {
	if err := restrictedShape(q); err != nil {
		return err.(*relq.InvalidQuery).WithClause("delete")
	}
	return Validate(q, Options{SkipSelect: true})
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func wrapf(sentinel error, detail string) error {
	if detail == "" {
		return fmt.Errorf("%w", sentinel)
	}
	return fmt.Errorf("%w: %s", sentinel, detail)
}

// asInvalidQuery recovers the *relq.InvalidQuery the type checker already
// built, falling back to a fresh wrap if err came from somewhere else.
func asInvalidQuery(err error) *relq.InvalidQuery {
	if iq, ok := err.(*relq.InvalidQuery); ok {
		return iq
	}
	return relq.NewInvalidQuery(err, "", 0)
}
