package typecheck

import (
	"errors"
	"testing"

	"github.com/kcmvp/relq"
	"github.com/kcmvp/relq/entity"
	"github.com/kcmvp/relq/internal/env"
	"github.com/samber/mo"
	"github.com/stretchr/testify/require"
)

type stubEntity struct {
	table  string
	fields map[string]entity.FieldKind
}

func (e stubEntity) Dataset() string { return e.table }
func (e stubEntity) FieldNames() []string {
	names := make([]string, 0, len(e.fields))
	for n := range e.fields {
		names = append(names, n)
	}
	return names
}
func (e stubEntity) FieldType(name string) entity.FieldKind { return e.fields[name] }
func (e stubEntity) PrimaryKey() mo.Option[string]          { return mo.None[string]() }

func post() stubEntity {
	return stubEntity{table: "post_entity", fields: map[string]entity.FieldKind{
		"id": entity.Integer, "title": entity.String, "score": entity.Float,
	}}
}

func TestInfer_FieldAccess(t *testing.T) {
	e := env.Resolve([]entity.Entity{post()}, []string{"p"})
	typ, err := Infer(relq.FieldAccess{Var: "p", Field: "title"}, e)
	require.NoError(t, err)
	require.Equal(t, String, typ)

	typ, err = Infer(relq.FieldAccess{Var: "p", Field: "score"}, e)
	require.NoError(t, err)
	require.Equal(t, Number, typ, "float collapses to number")
}

func TestInfer_UnboundVariable(t *testing.T) {
	e := env.Resolve([]entity.Entity{post()}, []string{"p"})
	_, err := Infer(relq.FieldAccess{Var: "x", Field: "title"}, e)
	require.Error(t, err)
	require.True(t, errors.Is(err, relq.ErrUnboundVariable))
}

func TestInfer_UnknownField(t *testing.T) {
	e := env.Resolve([]entity.Entity{post()}, []string{"p"})
	_, err := Infer(relq.FieldAccess{Var: "p", Field: "nope"}, e)
	require.Error(t, err)
	require.True(t, errors.Is(err, relq.ErrUnknownField))
}

func TestInfer_VarRef(t *testing.T) {
	e := env.Resolve([]entity.Entity{post()}, []string{"p"})
	typ, err := Infer(relq.VarRef{Var: "p"}, e)
	require.NoError(t, err)
	require.Equal(t, EntityType, typ)
}

func TestInfer_ComparisonAndEquality(t *testing.T) {
	e := env.Resolve([]entity.Entity{post()}, []string{"p"})
	eq := relq.BinaryOp{Op: relq.OpEq, Lhs: relq.FieldAccess{Var: "p", Field: "title"}, Rhs: relq.StringLiteral("x", "f", 1)}
	typ, err := Infer(eq, e)
	require.NoError(t, err)
	require.Equal(t, Boolean, typ)

	eqNil := relq.BinaryOp{Op: relq.OpEq, Lhs: relq.FieldAccess{Var: "p", Field: "title"}, Rhs: relq.NilLiteral("f", 1)}
	typ, err = Infer(eqNil, e)
	require.NoError(t, err)
	require.Equal(t, Boolean, typ)

	mismatched := relq.BinaryOp{Op: relq.OpEq, Lhs: relq.FieldAccess{Var: "p", Field: "title"}, Rhs: relq.NumberLiteral(1, "f", 1)}
	_, err = Infer(mismatched, e)
	require.Error(t, err)
	require.True(t, errors.Is(err, relq.ErrTypeMismatch))
}

func TestInfer_EqualityRejectsEntities(t *testing.T) {
	e := env.Resolve([]entity.Entity{post(), post()}, []string{"p", "q"})
	bad := relq.BinaryOp{Op: relq.OpEq, Lhs: relq.VarRef{Var: "p"}, Rhs: relq.VarRef{Var: "q"}}
	_, err := Infer(bad, e)
	require.Error(t, err)
	require.True(t, errors.Is(err, relq.ErrTypeMismatch))
}

func TestInfer_AndOrRequireBoolean(t *testing.T) {
	e := env.Resolve([]entity.Entity{post()}, []string{"p"})
	bad := relq.BinaryOp{Op: relq.OpAnd, Lhs: relq.NumberLiteral(1, "f", 1), Rhs: relq.BoolLiteral(true, "f", 1)}
	_, err := Infer(bad, e)
	require.Error(t, err)
	require.True(t, errors.Is(err, relq.ErrTypeMismatch))
}

func TestInfer_RangeIsList(t *testing.T) {
	e := env.Resolve(nil, nil)
	typ, err := Infer(relq.RangeExpr{First: relq.NumberLiteral(1, "f", 1), Last: relq.NumberLiteral(3, "f", 1)}, e)
	require.NoError(t, err)
	require.Equal(t, List, typ)
}

func TestInfer_InRequiresListRHS(t *testing.T) {
	e := env.Resolve([]entity.Entity{post()}, []string{"p"})
	in := relq.BinaryOp{Op: relq.OpIn, Lhs: relq.FieldAccess{Var: "p", Field: "id"}, Rhs: relq.RangeExpr{First: relq.NumberLiteral(1, "f", 1), Last: relq.NumberLiteral(3, "f", 1)}}
	typ, err := Infer(in, e)
	require.NoError(t, err)
	require.Equal(t, Boolean, typ)

	bad := relq.BinaryOp{Op: relq.OpIn, Lhs: relq.FieldAccess{Var: "p", Field: "id"}, Rhs: relq.NumberLiteral(1, "f", 1)}
	_, err = Infer(bad, e)
	require.Error(t, err)
	require.True(t, errors.Is(err, relq.ErrTypeMismatch))
}

func TestInfer_ListAndTupleRecurseChildren(t *testing.T) {
	e := env.Resolve(nil, nil)
	list := relq.ListExpr{Elems: []relq.Expr{relq.NumberLiteral(1, "f", 1), relq.NumberLiteral(2, "f", 1)}}
	typ, err := Infer(list, e)
	require.NoError(t, err)
	require.Equal(t, List, typ)

	badList := relq.ListExpr{Elems: []relq.Expr{relq.FieldAccess{Var: "missing", Field: "x"}}}
	_, err = Infer(badList, e)
	require.Error(t, err)
	require.True(t, errors.Is(err, relq.ErrUnboundVariable))

	tuple := relq.TupleExpr{Elems: []relq.Expr{relq.StringLiteral("a", "f", 1), relq.BoolLiteral(true, "f", 1)}}
	typ, err = Infer(tuple, e)
	require.NoError(t, err)
	require.Equal(t, Tuple, typ)
}
