package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewField_PanicsOnEmptyName(t *testing.T) {
	require.Panics(t, func() { _ = NewField[string]("", String) })
}

func TestNewField_PanicsOnDotInName(t *testing.T) {
	require.Panics(t, func() { _ = NewField[string]("a.b", String) })
}

func TestDescriptor_ValidateRunsConstraints(t *testing.T) {
	f := NewField[string]("title", String, MinLength(3))
	require.NoError(t, f.Validate("hello"))
	require.Error(t, f.Validate("hi"))
}

func TestDescriptor_ValidateTypeMismatch(t *testing.T) {
	f := NewField[string]("title", String, MinLength(3))
	require.Error(t, f.Validate(42))
}

func TestSchema_FieldNamesPrimaryKeyFirst(t *testing.T) {
	id := NewField[int64]("id", Integer)
	title := NewField[string]("title", String)
	s := NewSchema("id", id, title)
	require.Equal(t, []string{"id", "title"}, s.FieldNames())
	require.True(t, s.PrimaryKey().IsPresent())
	require.Equal(t, "id", s.PrimaryKey().MustGet())
	require.Equal(t, Integer, s.FieldType("id"))
	require.Equal(t, String, s.FieldType("title"))
	require.Equal(t, UnknownKind, s.FieldType("nope"))
}

func TestSchema_NoPrimaryKey(t *testing.T) {
	s := NewSchema("", NewField[string]("name", String))
	require.False(t, s.PrimaryKey().IsPresent())
	require.Equal(t, []string{"name"}, s.FieldNames())
}
