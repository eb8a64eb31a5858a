package entity

import (
	"testing"

	"github.com/kcmvp/relq"
	"github.com/kcmvp/relq/entity"
	"github.com/kcmvp/relq/internal/normalize"
	"github.com/kcmvp/relq/internal/value"
	"github.com/kcmvp/relq/sqlgen"
	"github.com/kcmvp/relq/validate"
	"github.com/stretchr/testify/require"
)

func TestPostEntity_DefaultSelectEndToEnd(t *testing.T) {
	q := relq.Query{}.From(NewPostEntity())
	require.NoError(t, validate.Validate(q, validate.Options{}))
	q = normalize.Normalize(q)
	sql, err := sqlgen.Generate(q)
	require.NoError(t, err)
	require.Equal(t, "SELECT p0.id, p0.title\nFROM post_entity AS p0", sql)
}

func TestPostEntity_WhereTitleEqualsEndToEnd(t *testing.T) {
	q := relq.Query{}.From(NewPostEntity())
	q, err := q.Where([]string{"p"}, relq.BinaryOp{
		Op: relq.OpEq, Lhs: relq.FieldAccess{Var: "p", Field: "title"}, Rhs: relq.StringLiteral("x", "f", 1),
	}, "f", 1)
	require.NoError(t, err)
	q, err = q.WithSelect([]string{"p"}, relq.SelectExpr, relq.FieldAccess{Var: "p", Field: "title"}, "f", 1)
	require.NoError(t, err)
	require.NoError(t, validate.Validate(q, validate.Options{}))
	sql, err := sqlgen.Generate(q)
	require.NoError(t, err)
	require.Equal(t, "SELECT p0.title\nFROM post_entity AS p0\nWHERE (p0.title = 'x')", sql)
}

func TestMultiFromWithoutSelectRejected(t *testing.T) {
	q := relq.Query{}.From(NewPostEntity()).From(NewCommentEntity())
	err := validate.Validate(q, validate.Options{})
	require.Error(t, err)
}

func TestUpdateAllEndToEnd(t *testing.T) {
	q := relq.Query{}.From(NewPostEntity())
	sets := []validate.SetPair{{Field: "title", Value: relq.StringLiteral("y", "f", 1)}}
	require.NoError(t, validate.ValidateUpdate(q, []string{"p"}, sets))
	sql, err := sqlgen.UpdateAll(q, []string{"p"}, []sqlgen.SetPair{{Field: "title", Value: relq.StringLiteral("y", "f", 1)}})
	require.NoError(t, err)
	require.Equal(t, "UPDATE post_entity AS p0\nSET title = 'y'", sql)
}

func TestInsertEndToEnd(t *testing.T) {
	v := value.Data{"id": nil, "title": "hi"}
	sql, err := sqlgen.Insert(NewPostEntity(), v)
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO post_entity (title)\nVALUES ('hi')\nRETURNING id", sql)
}

func TestAccountFieldConstraintValidated(t *testing.T) {
	acc := NewAccount()
	field, ok := acc.Field("email")
	require.True(t, ok)
	require.NoError(t, field.Validate("user@example.com"))
}

func TestProductSKUConstraint(t *testing.T) {
	p := NewProduct(entity.MinLength(3))
	field, ok := p.Field("sku")
	require.True(t, ok)
	require.Error(t, field.Validate("ab"))
	require.NoError(t, field.Validate("abcd"))
}
