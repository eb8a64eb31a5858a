// Package normalize fills in defaults a validated query is missing
// before it reaches the SQL generator (spec §4.4, C5).
package normalize

import (
	"github.com/kcmvp/relq"
	"github.com/samber/mo"
)

// Normalize installs a default `select *` when q has no select and
// exactly one from. It is idempotent: calling it again on its own output
// is a no-op, since the only thing it ever does is install a select
// clause that, once present, it never touches again.
func Normalize(q relq.Query) relq.Query {
	if q.Select.IsPresent() || len(q.Froms) != 1 {
		return q
	}
	cp := q
	cp.Select = mo.Some(relq.NewSelectClause(
		relq.SelectEntity,
		relq.VarRef{Var: "entity"},
		[]string{"entity"},
		"", 0,
	))
	return cp
}
