// Package sqlgen lowers a validated, normalized Query to a PostgreSQL SQL
// string (spec §4.5, C6). The generator is pure: it never touches a
// database, and assumes its input already passed the validate package's
// checks — any AST shape it does not recognize is a programmer error.
package sqlgen

import (
	"fmt"
	"strconv"

	"github.com/kcmvp/relq/entity"
)

// assignAliases gives each from entity a unique alias: the first byte of
// its table name followed by the smallest non-negative integer that has
// not yet been used with that letter. Order of froms determines the
// result deterministically — [posts, comments, posts] -> [p0, c0, p1].
func assignAliases(froms []entity.Entity) []string {
	next := map[byte]int{}
	aliases := make([]string, len(froms))
	for i, e := range froms {
		table := e.Dataset()
		letter := table[0]
		n := next[letter]
		next[letter] = n + 1
		aliases[i] = fmt.Sprintf("%c%s", letter, strconv.Itoa(n))
	}
	return aliases
}

// aliasBinding is what a bound variable name resolves to during
// lowering: its generated table alias and the entity it was bound from,
// the latter needed only to expand a bare VarRef into its field list.
type aliasBinding struct {
	alias string
	ent   entity.Entity
}

// aliasEnv maps a from's binding name to its generated alias and source
// entity, so expression lowering can turn `var.field` into `alias.field`
// and a bare `var` into its comma-joined field list.
type aliasEnv map[string]aliasBinding

func newAliasEnv(froms []entity.Entity, binding []string, aliases []string) aliasEnv {
	env := make(aliasEnv, len(binding))
	for i, name := range binding {
		if name == "" || name == "_" || i >= len(aliases) || i >= len(froms) {
			continue
		}
		env[name] = aliasBinding{alias: aliases[i], ent: froms[i]}
	}
	return env
}

func (env aliasEnv) lookup(name string) (aliasBinding, bool) {
	b, ok := env[name]
	return b, ok
}
