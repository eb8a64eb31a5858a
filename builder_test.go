package relq

import (
	"errors"
	"testing"

	"github.com/kcmvp/relq/entity"
	"github.com/samber/mo"
	"github.com/stretchr/testify/require"
)

type stubEntity struct {
	table string
}

func (e stubEntity) Dataset() string               { return e.table }
func (e stubEntity) FieldNames() []string           { return []string{"id", "title"} }
func (e stubEntity) FieldType(string) entity.FieldKind { return entity.String }
func (e stubEntity) PrimaryKey() mo.Option[string]  { return mo.Some("id") }

func TestQuery_FromAppends(t *testing.T) {
	var q Query
	q = q.From(stubEntity{table: "posts"})
	q = q.From(stubEntity{table: "comments"})
	require.Len(t, q.Froms, 2)
}

func TestQuery_SelectOnlyOnce(t *testing.T) {
	q := Query{}.From(stubEntity{table: "posts"})
	q, err := q.WithSelect([]string{"p"}, SelectEntity, VarRef{Var: "p"}, "f", 1)
	require.NoError(t, err)
	_, err = q.WithSelect([]string{"p"}, SelectEntity, VarRef{Var: "p"}, "f", 2)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDuplicateClause))
}

func TestQuery_LimitOffsetOnlyOnce(t *testing.T) {
	q := Query{}.From(stubEntity{table: "posts"})
	q, err := q.SetLimit(nil, NumberLiteral(10, "f", 1), "f", 1)
	require.NoError(t, err)
	_, err = q.SetLimit(nil, NumberLiteral(20, "f", 2), "f", 2)
	require.Error(t, err)

	q, err = q.SetOffset(nil, NumberLiteral(0, "f", 1), "f", 1)
	require.NoError(t, err)
	_, err = q.SetOffset(nil, NumberLiteral(1, "f", 2), "f", 2)
	require.Error(t, err)
}

func TestQuery_BindingArityRejected(t *testing.T) {
	q := Query{}.From(stubEntity{table: "posts"})
	_, err := q.Where([]string{"p", "c"}, BoolLiteral(true, "f", 1), "f", 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrBindingArity))
}

func TestQuery_DuplicateBindingRejected(t *testing.T) {
	q := Query{}.From(stubEntity{table: "posts"}).From(stubEntity{table: "comments"})
	_, err := q.Where([]string{"p", "p"}, BoolLiteral(true, "f", 1), "f", 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDuplicateBinding))
}

func TestQuery_WildcardBindingMayRepeat(t *testing.T) {
	q := Query{}.From(stubEntity{table: "posts"}).From(stubEntity{table: "comments"})
	_, err := q.Where([]string{"_", "_"}, BoolLiteral(true, "f", 1), "f", 1)
	require.NoError(t, err)
}

func TestQuery_InvalidBindingNameRejected(t *testing.T) {
	q := Query{}.From(stubEntity{table: "posts"})
	_, err := q.Where([]string{"1bad"}, BoolLiteral(true, "f", 1), "f", 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidBindingName))
}

func TestQuery_WhereAppends(t *testing.T) {
	q := Query{}.From(stubEntity{table: "posts"})
	q, err := q.Where([]string{"p"}, BoolLiteral(true, "f", 1), "f", 1)
	require.NoError(t, err)
	q, err = q.Where([]string{"p"}, BoolLiteral(false, "f", 2), "f", 2)
	require.NoError(t, err)
	require.Len(t, q.Wheres, 2)
}
