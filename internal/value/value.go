// Package value is the internal, shared implementation backing the
// EntityValue bag that the SQL generator's row-level forms (insert,
// update, delete) accept as the concrete set of field→value pairs to
// write. It is adapted from the teacher's internal.ValueObject/Data:
// a small map with typed, Option-returning accessors and a
// deterministic, sorted Fields() listing. Row-level column ordering does
// not use Fields(); it follows the entity's FieldNames().
package value

import (
	"sort"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Data is a name→value bag. Keys are bare field names (no table or view
// qualification — that belongs to the entity capability, not the value).
type Data map[string]any

// Get returns the value stored at name, if any.
func (d Data) Get(name string) mo.Option[any] {
	if v, ok := d[name]; ok {
		return mo.Some(v)
	}
	return mo.None[any]()
}

// Fields returns the bag's keys in sorted order, giving callers (and
// tests) a deterministic iteration order.
func (d Data) Fields() []string {
	ks := make([]string, 0, len(d))
	for k := range d {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// Add sets name to value. It panics if name is already present — bags
// are built once, not mutated incrementally by callers outside this
// package.
func (d Data) Add(name string, v any) {
	_, exists := d[name]
	lo.Assertf(!exists, "value: field %q already set", name)
	d[name] = v
}
