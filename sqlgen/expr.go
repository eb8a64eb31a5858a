package sqlgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kcmvp/relq"
)

// lower renders expr as a bare SQL fragment (spec §4.5's "L(e)").
func lower(expr relq.Expr, env aliasEnv) (string, error) {
	switch n := expr.(type) {
	case relq.FieldAccess:
		b, ok := env.lookup(n.Var)
		if !ok {
			return "", fmt.Errorf("%w: unbound alias for %q", relq.ErrUnrecognizedNode, n.Var)
		}
		return fmt.Sprintf("%s.%s", b.alias, n.Field), nil

	case relq.VarRef:
		return lowerVarRef(n, env)

	case relq.UnaryOp:
		return lowerUnary(n, env)

	case relq.BinaryOp:
		return lowerBinary(n, env)

	case relq.RangeExpr:
		return lowerRangeAsValue(n, env)

	case relq.ListExpr:
		return lowerList(n.Elems, env)

	case relq.TupleExpr:
		return lowerList(n.Elems, env)

	case relq.Literal:
		return lowerLiteral(n)

	default:
		return "", fmt.Errorf("%w: %T", relq.ErrUnrecognizedNode, expr)
	}
}

// lowerVarRef expands a bare VarRef into all of its entity's fields,
// comma-joined as alias.field (spec §4.5's select-lowering rule for a
// bare VarRef body). It is also used directly when a VarRef shows up in
// a non-select expression position (e.g. nested inside a tuple), where
// it lowers the same way: there is no other legal use of a whole-entity
// reference outside select.
func lowerVarRef(n relq.VarRef, env aliasEnv) (string, error) {
	b, ok := env.lookup(n.Var)
	if !ok {
		return "", fmt.Errorf("%w: unbound alias for %q", relq.ErrUnrecognizedNode, n.Var)
	}
	fields := b.ent.FieldNames()
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: no fields resolved for %q", relq.ErrUnrecognizedNode, n.Var)
	}
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = fmt.Sprintf("%s.%s", b.alias, f)
	}
	return strings.Join(cols, ", "), nil
}

func lowerUnary(n relq.UnaryOp, env aliasEnv) (string, error) {
	arg, err := lop(n.Arg, env)
	if err != nil {
		return "", err
	}
	switch n.Op {
	case relq.OpNot:
		return fmt.Sprintf("NOT (%s)", arg), nil
	case relq.OpPlus:
		return "+" + arg, nil
	case relq.OpMinus:
		return "-" + arg, nil
	default:
		return "", fmt.Errorf("%w: unary operator", relq.ErrUnrecognizedNode)
	}
}

var binarySymbols = map[relq.BinaryOperator]string{
	relq.OpEq:  "=",
	relq.OpNe:  "!=",
	relq.OpLt:  "<",
	relq.OpLe:  "<=",
	relq.OpGt:  ">",
	relq.OpGe:  ">=",
	relq.OpAnd: "AND",
	relq.OpOr:  "OR",
	relq.OpAdd: "+",
	relq.OpSub: "-",
	relq.OpMul: "*",
	relq.OpDiv: "/",
}

func lowerBinary(n relq.BinaryOp, env aliasEnv) (string, error) {
	if isNilCompare(n) {
		return lowerNilCompare(n, env)
	}
	if n.Op == relq.OpIn {
		return lowerIn(n, env)
	}
	sym, ok := binarySymbols[n.Op]
	if !ok {
		return "", fmt.Errorf("%w: binary operator", relq.ErrUnrecognizedNode)
	}
	lhs, err := lop(n.Lhs, env)
	if err != nil {
		return "", err
	}
	rhs, err := lop(n.Rhs, env)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", lhs, sym, rhs), nil
}

func isNilCompare(n relq.BinaryOp) bool {
	if n.Op != relq.OpEq && n.Op != relq.OpNe {
		return false
	}
	return isNilLiteral(n.Lhs) || isNilLiteral(n.Rhs)
}

func isNilLiteral(e relq.Expr) bool {
	lit, ok := e.(relq.Literal)
	return ok && lit.Kind == relq.LitNil
}

func lowerNilCompare(n relq.BinaryOp, env aliasEnv) (string, error) {
	other := n.Lhs
	if isNilLiteral(other) {
		other = n.Rhs
	}
	l, err := lower(other, env)
	if err != nil {
		return "", err
	}
	if n.Op == relq.OpEq {
		return fmt.Sprintf("%s IS NULL", l), nil
	}
	return fmt.Sprintf("%s IS NOT NULL", l), nil
}

func lowerIn(n relq.BinaryOp, env aliasEnv) (string, error) {
	lhs, err := lower(n.Lhs, env)
	if err != nil {
		return "", err
	}
	if rng, ok := n.Rhs.(relq.RangeExpr); ok {
		first, err := lower(rng.First, env)
		if err != nil {
			return "", err
		}
		last, err := lower(rng.Last, env)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s BETWEEN %s AND %s", lhs, first, last), nil
	}
	rhs, err := lower(n.Rhs, env)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s = ANY (%s)", lhs, rhs), nil
}

// lop renders expr wrapped in parentheses when it is itself a binary
// operation, and bare otherwise (spec §4.5's "Lop").
func lop(expr relq.Expr, env aliasEnv) (string, error) {
	l, err := lower(expr, env)
	if err != nil {
		return "", err
	}
	if _, ok := expr.(relq.BinaryOp); ok {
		return "(" + l + ")", nil
	}
	return l, nil
}

func lowerList(elems []relq.Expr, env aliasEnv) (string, error) {
	parts := make([]string, len(elems))
	for i, el := range elems {
		l, err := lower(el, env)
		if err != nil {
			return "", err
		}
		parts[i] = l
	}
	return fmt.Sprintf("ARRAY[%s]", strings.Join(parts, ", ")), nil
}

// lowerRangeAsValue expands a Range literal used outside `in(...)` into
// its enumerated list, per spec §4.5's "Range literal in a value
// position" boundary behavior.
func lowerRangeAsValue(n relq.RangeExpr, env aliasEnv) (string, error) {
	first, ok1 := n.First.(relq.Literal)
	last, ok2 := n.Last.(relq.Literal)
	if !ok1 || !ok2 || first.Kind != relq.LitNumber || last.Kind != relq.LitNumber {
		return "", fmt.Errorf("%w: range value position requires numeric literal bounds", relq.ErrUnrecognizedNode)
	}
	lo, hi := int(first.Number), int(last.Number)
	parts := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		parts = append(parts, strconv.Itoa(i))
	}
	return fmt.Sprintf("ARRAY[%s]", strings.Join(parts, ", ")), nil
}

func lowerLiteral(n relq.Literal) (string, error) {
	switch n.Kind {
	case relq.LitNil:
		return "NULL", nil
	case relq.LitBool:
		if n.Bool {
			return "TRUE", nil
		}
		return "FALSE", nil
	case relq.LitNumber:
		if n.Text != "" {
			return n.Text, nil
		}
		return strconv.FormatFloat(n.Number, 'g', -1, 64), nil
	case relq.LitString:
		return quoteLiteral(n.Str), nil
	default:
		return "", fmt.Errorf("%w: literal", relq.ErrUnrecognizedNode)
	}
}

// quoteLiteral renders s as a single-quoted SQL string literal: every
// backslash doubled, every single quote doubled, per spec §4.5/§6.
func quoteLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`''`)
		default:
			b.WriteByte(s[i])
		}
	}
	b.WriteByte('\'')
	return b.String()
}
