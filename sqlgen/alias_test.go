package sqlgen

import (
	"testing"

	"github.com/kcmvp/relq/entity"
	"github.com/samber/mo"
	"github.com/stretchr/testify/require"
)

type stubEntity struct {
	table  string
	fields map[string]entity.FieldKind
	order  []string
	pk     string
}

func (e stubEntity) Dataset() string { return e.table }
func (e stubEntity) FieldNames() []string {
	if e.order != nil {
		return e.order
	}
	names := make([]string, 0, len(e.fields))
	for n := range e.fields {
		names = append(names, n)
	}
	return names
}
func (e stubEntity) FieldType(name string) entity.FieldKind { return e.fields[name] }
func (e stubEntity) PrimaryKey() mo.Option[string] {
	if e.pk == "" {
		return mo.None[string]()
	}
	return mo.Some(e.pk)
}

func postEntity() stubEntity {
	return stubEntity{
		table: "post_entity", pk: "id", order: []string{"id", "title"},
		fields: map[string]entity.FieldKind{"id": entity.Integer, "title": entity.String},
	}
}

func commentEntity() stubEntity {
	return stubEntity{
		table: "comment_entity", pk: "id", order: []string{"id", "text"},
		fields: map[string]entity.FieldKind{"id": entity.Integer, "text": entity.String},
	}
}

// accountEntity has a declared field order that is not alphabetical, so
// tests exercising it catch column ordering that accidentally falls back
// to sorted map keys instead of FieldNames().
func accountEntity() stubEntity {
	return stubEntity{
		table: "accounts", pk: "id",
		order: []string{"id", "email", "nickname", "category", "balance"},
		fields: map[string]entity.FieldKind{
			"id": entity.Integer, "email": entity.String, "nickname": entity.String,
			"category": entity.Integer, "balance": entity.Float,
		},
	}
}

func TestAssignAliases_Uniqueness(t *testing.T) {
	froms := []entity.Entity{postEntity(), commentEntity(), postEntity()}
	aliases := assignAliases(froms)
	require.Equal(t, []string{"p0", "c0", "p1"}, aliases)
}

func TestAssignAliases_PairwiseDistinct(t *testing.T) {
	froms := []entity.Entity{postEntity(), postEntity(), postEntity()}
	aliases := assignAliases(froms)
	seen := map[string]bool{}
	for _, a := range aliases {
		require.False(t, seen[a], "duplicate alias %q", a)
		seen[a] = true
	}
}
