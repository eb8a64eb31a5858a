package sqlgen

import (
	"fmt"
	"strings"

	"github.com/kcmvp/relq"
	"github.com/kcmvp/relq/entity"
)

// Generate lowers a validated, normalized query to a SQL string (spec
// §4.5). Callers are expected to have already run validate.Validate and
// then normalize.Normalize on q; Generate does not re-check the
// structural invariants, only the AST shapes it encounters while
// lowering.
func Generate(q relq.Query) (string, error) {
	if len(q.Froms) == 0 {
		return "", fmt.Errorf("%w: query has no from expressions", relq.ErrUnrecognizedNode)
	}
	aliases := assignAliases(q.Froms)

	var b strings.Builder

	selectSQL, err := lowerSelect(q, aliases)
	if err != nil {
		return "", err
	}
	b.WriteString("SELECT ")
	b.WriteString(selectSQL)
	b.WriteString("\nFROM ")
	b.WriteString(lowerFrom(q.Froms, aliases))

	if len(q.Wheres) > 0 {
		whereSQL, err := lowerWhere(q, aliases)
		if err != nil {
			return "", err
		}
		b.WriteString("\nWHERE ")
		b.WriteString(whereSQL)
	}

	if len(q.OrderBys) > 0 {
		orderSQL, err := lowerOrderBy(q, aliases)
		if err != nil {
			return "", err
		}
		b.WriteString("\nORDER BY ")
		b.WriteString(orderSQL)
	}

	if q.Limit.IsPresent() {
		lim := q.Limit.MustGet()
		env := newAliasEnv(q.Froms, lim.Binding, aliases)
		l, err := lower(lim.Value, env)
		if err != nil {
			return "", err
		}
		b.WriteString("\nLIMIT ")
		b.WriteString(l)
	}

	if q.Offset.IsPresent() {
		off := q.Offset.MustGet()
		env := newAliasEnv(q.Froms, off.Binding, aliases)
		o, err := lower(off.Value, env)
		if err != nil {
			return "", err
		}
		b.WriteString("\nOFFSET ")
		b.WriteString(o)
	}

	return b.String(), nil
}

func lowerSelect(q relq.Query, aliases []string) (string, error) {
	if !q.Select.IsPresent() {
		return "", fmt.Errorf("%w: query has no select clause (normalize it first)", relq.ErrUnrecognizedNode)
	}
	sel := q.Select.MustGet()
	env := newAliasEnv(q.Froms, sel.Binding, aliases)

	switch body := sel.Body.(type) {
	case relq.TupleExpr:
		return lowerProjectionList(body.Elems, env)
	case relq.ListExpr:
		return lowerProjectionList(body.Elems, env)
	case relq.VarRef:
		return lowerVarRef(body, env)
	default:
		return lower(sel.Body, env)
	}
}

// lowerProjectionList lowers each select-body element and comma-joins
// them, per spec §4.5's tuple/list select-lowering rule.
func lowerProjectionList(elems []relq.Expr, env aliasEnv) (string, error) {
	parts := make([]string, len(elems))
	for i, el := range elems {
		l, err := lower(el, env)
		if err != nil {
			return "", err
		}
		parts[i] = l
	}
	return strings.Join(parts, ", "), nil
}

func lowerFrom(froms []entity.Entity, aliases []string) string {
	parts := make([]string, len(froms))
	for i, e := range froms {
		parts[i] = fmt.Sprintf("%s AS %s", e.Dataset(), aliases[i])
	}
	return strings.Join(parts, ", ")
}

func lowerWhere(q relq.Query, aliases []string) (string, error) {
	parts := make([]string, len(q.Wheres))
	for i, w := range q.Wheres {
		env := newAliasEnv(q.Froms, w.Binding, aliases)
		l, err := lower(w.Expr, env)
		if err != nil {
			return "", err
		}
		parts[i] = fmt.Sprintf("(%s)", l)
	}
	return strings.Join(parts, " AND "), nil
}

func lowerOrderBy(q relq.Query, aliases []string) (string, error) {
	var parts []string
	for _, ob := range q.OrderBys {
		env := newAliasEnv(q.Froms, ob.Binding, aliases)
		for _, term := range ob.Terms {
			b, ok := env.lookup(term.Var)
			if !ok {
				return "", fmt.Errorf("%w: unbound alias for %q", relq.ErrUnrecognizedNode, term.Var)
			}
			frag := fmt.Sprintf("%s.%s", b.alias, term.Field)
			switch term.Direction {
			case relq.DirAsc:
				frag += " ASC"
			case relq.DirDesc:
				frag += " DESC"
			}
			parts = append(parts, frag)
		}
	}
	return strings.Join(parts, ", "), nil
}

