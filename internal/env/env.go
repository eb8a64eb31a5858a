// Package env builds the small, per-clause variable environment the
// type checker reasons against. Resolution is a positional zip of a
// clause's binding against the query's froms — done once per clause, as
// DESIGN NOTE 9 in SPEC_FULL.md describes, rather than re-derived ad hoc
// at every FieldAccess/VarRef the checker visits.
package env

import "github.com/kcmvp/relq/entity"

// Env maps a bound variable name to the entity it refers to.
type Env map[string]entity.Entity

// Resolve zips binding positionally against froms. Wildcard names ("_")
// are skipped. A binding shorter than froms simply leaves the trailing
// froms unbound in this clause's scope (spec §4.2: "missing suffix
// positions are simply absent"). Bindings longer than froms have already
// been rejected by the merger (spec §4.1) by the time Resolve runs.
func Resolve(froms []entity.Entity, binding []string) Env {
	e := make(Env, len(binding))
	for i, name := range binding {
		if name == "_" || name == "" {
			continue
		}
		if i < len(froms) {
			e[name] = froms[i]
		}
	}
	return e
}

// Lookup returns the entity bound to name, and whether it was found.
func (e Env) Lookup(name string) (entity.Entity, bool) {
	ent, ok := e[name]
	return ent, ok
}
