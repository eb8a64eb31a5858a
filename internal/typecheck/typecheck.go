// Package typecheck implements the core type checker (spec §4.2): it
// infers and validates the type of an expression against a variable
// environment, raising relq.InvalidQuery located at the offending node
// and without clause context — the caller in the validate package adds
// the clause kind and relocates it to the clause's file/line, per spec
// §4.4 — on any rule violation.
package typecheck

import (
	"fmt"

	"github.com/kcmvp/relq"
	"github.com/kcmvp/relq/entity"
	"github.com/kcmvp/relq/internal/env"
)

// Type is the inferred type domain (spec §4.2). Integer and Float both
// collapse to Number once looked up through an entity's declared field
// kind, so cross-numeric comparisons and arithmetic are uniform.
type Type int

const (
	Number Type = iota
	Boolean
	String
	Nil
	List
	Tuple
	EntityType
	// UnknownEntity exists for parity with the source's type domain. A
	// VarRef always resolves to EntityType once its variable is bound —
	// reaching this branch would require a bound variable with no
	// concrete entity behind it, which the merger/env package do not
	// allow to occur.
	UnknownEntity
)

func (t Type) String() string {
	switch t {
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	case Nil:
		return "nil"
	case List:
		return "list"
	case Tuple:
		return "tuple"
	case EntityType:
		return "entity"
	default:
		return "unknown-entity"
	}
}

// FieldKindToType collapses a declared entity field kind to the checker's
// type domain; Integer and Float both become Number.
func FieldKindToType(k entity.FieldKind) (Type, bool) {
	switch k {
	case entity.Integer, entity.Float:
		return Number, true
	case entity.String:
		return String, true
	case entity.Boolean:
		return Boolean, true
	default:
		return 0, false
	}
}

// Infer walks expr and returns its type, or the first typing violation
// found (spec §4.2's rule table). e is the variable environment built by
// env.Resolve for the enclosing clause.
func Infer(expr relq.Expr, e env.Env) (Type, error) {
	switch n := expr.(type) {
	case relq.FieldAccess:
		ent, ok := e.Lookup(n.Var)
		if !ok {
			return 0, wrap(relq.ErrUnboundVariable, n.Var, expr)
		}
		if !contains(ent.FieldNames(), n.Field) {
			return 0, wrap(relq.ErrUnknownField, n.Field, expr)
		}
		t, ok := FieldKindToType(ent.FieldType(n.Field))
		if !ok {
			return 0, wrap(relq.ErrUnknownField, fmt.Sprintf("%s (undeclared kind)", n.Field), expr)
		}
		return t, nil

	case relq.VarRef:
		if _, ok := e.Lookup(n.Var); !ok {
			return 0, wrap(relq.ErrUnboundVariable, n.Var, expr)
		}
		return EntityType, nil

	case relq.UnaryOp:
		argT, err := Infer(n.Arg, e)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case relq.OpNot:
			if argT != Boolean {
				return 0, wrap(relq.ErrTypeMismatch, "not requires boolean", expr)
			}
			return Boolean, nil
		case relq.OpPlus, relq.OpMinus:
			if argT != Number {
				return 0, wrap(relq.ErrTypeMismatch, "unary +/- requires number", expr)
			}
			return Number, nil
		}
		return 0, wrap(relq.ErrUnrecognizedNode, "unary operator", expr)

	case relq.BinaryOp:
		return inferBinary(n, e)

	case relq.RangeExpr:
		firstT, err := Infer(n.First, e)
		if err != nil {
			return 0, err
		}
		lastT, err := Infer(n.Last, e)
		if err != nil {
			return 0, err
		}
		if firstT != Number || lastT != Number {
			return 0, wrap(relq.ErrTypeMismatch, "range bounds must be numbers", expr)
		}
		return List, nil

	case relq.ListExpr:
		for _, el := range n.Elems {
			if _, err := Infer(el, e); err != nil {
				return 0, err
			}
		}
		return List, nil

	case relq.TupleExpr:
		for _, el := range n.Elems {
			if _, err := Infer(el, e); err != nil {
				return 0, err
			}
		}
		return Tuple, nil

	case relq.Literal:
		switch n.Kind {
		case relq.LitNil:
			return Nil, nil
		case relq.LitBool:
			return Boolean, nil
		case relq.LitNumber:
			return Number, nil
		case relq.LitString:
			return String, nil
		}
		return 0, wrap(relq.ErrUnrecognizedNode, "literal", expr)

	default:
		return 0, wrap(relq.ErrUnrecognizedNode, fmt.Sprintf("%T", expr), expr)
	}
}

func inferBinary(n relq.BinaryOp, e env.Env) (Type, error) {
	lhsT, err := Infer(n.Lhs, e)
	if err != nil {
		return 0, err
	}
	rhsT, err := Infer(n.Rhs, e)
	if err != nil {
		return 0, err
	}
	switch n.Op {
	case relq.OpEq, relq.OpNe:
		if lhsT == Nil || rhsT == Nil {
			return Boolean, nil
		}
		if lhsT == rhsT && isComparable(lhsT) {
			return Boolean, nil
		}
		return 0, wrap(relq.ErrTypeMismatch, "== / != require equal comparable types or nil", n)
	case relq.OpAnd, relq.OpOr:
		if lhsT == Boolean && rhsT == Boolean {
			return Boolean, nil
		}
		return 0, wrap(relq.ErrTypeMismatch, "and/or require boolean operands", n)
	case relq.OpLt, relq.OpLe, relq.OpGt, relq.OpGe:
		if lhsT == Number && rhsT == Number {
			return Boolean, nil
		}
		return 0, wrap(relq.ErrTypeMismatch, "comparison requires numbers", n)
	case relq.OpAdd, relq.OpSub, relq.OpMul, relq.OpDiv:
		if lhsT == Number && rhsT == Number {
			return Number, nil
		}
		return 0, wrap(relq.ErrTypeMismatch, "arithmetic requires numbers", n)
	case relq.OpIn:
		if rhsT != List {
			return 0, wrap(relq.ErrTypeMismatch, "in requires a list right-hand side", n)
		}
		return Boolean, nil
	}
	return 0, wrap(relq.ErrUnrecognizedNode, "binary operator", n)
}

// isComparable reports whether t is a scalar the generator can lower
// into a plain `= ` / `!= ` comparison. Entities, lists, and tuples have
// no such lowering (VarRef expands to a whole column list, List/Tuple to
// ARRAY[...]/comma-joins), so == / != never admits them.
func isComparable(t Type) bool {
	switch t {
	case Number, Boolean, String:
		return true
	default:
		return false
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func wrap(sentinel error, detail string, expr relq.Expr) *relq.InvalidQuery {
	file, line := expr.Pos()
	return relq.NewInvalidQuery(fmt.Errorf("%w: %s", sentinel, detail), file, line)
}
