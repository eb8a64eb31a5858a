package relq

import (
	"fmt"

	"github.com/kcmvp/relq/entity"
	"github.com/samber/mo"
)

// From appends an entity reference to froms. From never fails: arity and
// duplicate-clause checks only apply to the other clause kinds (spec
// §4.1 — "from appends").
func (q Query) From(e entity.Entity) Query {
	cp := q
	cp.Froms = append(append([]entity.Entity{}, q.Froms...), e)
	return cp
}

func isIdentByte(r byte, first bool) bool {
	switch {
	case r == '_':
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return !first
	default:
		return false
	}
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i], i == 0) {
			return false
		}
	}
	return true
}

// validateBinding enforces the "binding escape" contract of spec §4.1:
// every name must be a symbol (a valid identifier) or the wildcard "_",
// and no non-wildcard name may repeat.
func validateBinding(binding []string) error {
	seen := make(map[string]bool, len(binding))
	for _, name := range binding {
		if name == "_" {
			continue
		}
		if !isIdent(name) {
			return fmt.Errorf("%w: %q", ErrInvalidBindingName, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: %q", ErrDuplicateBinding, name)
		}
		seen[name] = true
	}
	return nil
}

// checkClause runs the two merge-time contracts common to every
// non-from clause: binding arity against the current froms, and binding
// well-formedness.
func (q Query) checkClause(kind string, binding []string, file string, line int) error {
	if err := validateBinding(binding); err != nil {
		return NewInvalidQuery(err, file, line).WithClause(kind)
	}
	if len(binding) > len(q.Froms) {
		return NewInvalidQuery(fmt.Errorf("%w", ErrBindingArity), file, line).WithClause(kind)
	}
	return nil
}

// Where appends a boolean predicate clause.
func (q Query) Where(binding []string, expr Expr, file string, line int) (Query, error) {
	if err := q.checkClause("where", binding, file, line); err != nil {
		return q, err
	}
	cp := q
	cp.Wheres = append(append([]WhereClause{}, q.Wheres...), WhereClause{
		clause: clause{Binding: binding, File: file, Line: line},
		Expr:   expr,
	})
	return cp, nil
}

// WithSelect assigns the (at most one) projection clause. Named apart
// from the Select field it populates — Go does not allow a type to carry
// both a field and a method of the same name.
func (q Query) WithSelect(binding []string, kind SelectKind, body Expr, file string, line int) (Query, error) {
	if q.Select.IsPresent() {
		return q, NewInvalidQuery(fmt.Errorf("%w", ErrDuplicateClause), file, line).WithClause("select")
	}
	if err := q.checkClause("select", binding, file, line); err != nil {
		return q, err
	}
	cp := q
	cp.Select = mo.Some(SelectClause{
		clause: clause{Binding: binding, File: file, Line: line},
		Kind:   kind,
		Body:   body,
	})
	return cp, nil
}

// OrderBy appends an order-by clause.
func (q Query) OrderBy(binding []string, terms []OrderTerm, file string, line int) (Query, error) {
	if err := q.checkClause("order_by", binding, file, line); err != nil {
		return q, err
	}
	cp := q
	cp.OrderBys = append(append([]OrderByClause{}, q.OrderBys...), OrderByClause{
		clause: clause{Binding: binding, File: file, Line: line},
		Terms:  terms,
	})
	return cp, nil
}

// SetLimit assigns the (at most one) limit clause.
func (q Query) SetLimit(binding []string, value Expr, file string, line int) (Query, error) {
	if q.Limit.IsPresent() {
		return q, NewInvalidQuery(fmt.Errorf("%w", ErrDuplicateClause), file, line).WithClause("limit")
	}
	if err := q.checkClause("limit", binding, file, line); err != nil {
		return q, err
	}
	cp := q
	cp.Limit = mo.Some(ValueClause{clause: clause{Binding: binding, File: file, Line: line}, Value: value})
	return cp, nil
}

// SetOffset assigns the (at most one) offset clause.
func (q Query) SetOffset(binding []string, value Expr, file string, line int) (Query, error) {
	if q.Offset.IsPresent() {
		return q, NewInvalidQuery(fmt.Errorf("%w", ErrDuplicateClause), file, line).WithClause("offset")
	}
	if err := q.checkClause("offset", binding, file, line); err != nil {
		return q, err
	}
	cp := q
	cp.Offset = mo.Some(ValueClause{clause: clause{Binding: binding, File: file, Line: line}, Value: value})
	return cp, nil
}
