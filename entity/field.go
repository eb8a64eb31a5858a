package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// sealer is a private token type used to seal implementations of FieldSpec.
// Requiring this unexported type in the unexported seal method prevents
// other packages from implementing FieldSpec directly.
type sealer struct{}

// Number is a type constraint for numeric native Go types.
type Number interface {
	uint | uint8 | uint16 | uint32 | uint64 |
		int | int8 | int16 | int32 | int64 |
		float32 | float64
}

// FieldType is a constraint for the concrete Go types a descriptor may
// carry as a type hint for constraint validators.
type FieldType interface {
	Number | string | time.Time | bool
}

// FieldSpec is the non-generic, read-only view of a single field
// descriptor. Schemas hold a slice of FieldSpec so fields of different
// underlying Go types can sit in one ordered collection.
type FieldSpec interface {
	// Name returns the column name.
	Name() string
	// Kind returns the field's declared kind.
	Kind() FieldKind
	// Validate runs the field's declared constraints against v. When any
	// constraint is declared, v must be assignable to the descriptor's
	// underlying Go type or Validate reports a type-mismatch error.
	Validate(v any) error
	seal(sealer)
}

// Descriptor is the generic, concrete implementation of FieldSpec.
// Instances are produced with NewField.
type Descriptor[T FieldType] struct {
	name string
	kind FieldKind
	vfs  []ValidateFunc[T]
}

func (d *Descriptor[T]) Name() string   { return d.name }
func (d *Descriptor[T]) Kind() FieldKind { return d.kind }
func (d *Descriptor[T]) seal(sealer)     {}

// Validate type-asserts v to T and runs every declared constraint,
// returning the first failure. A nil descriptor, or one with no
// constraints declared, accepts any value (nil included); otherwise a nil
// value fails the type assertion.
func (d *Descriptor[T]) Validate(v any) error {
	if d == nil || len(d.vfs) == 0 {
		return nil
	}
	tv, ok := v.(T)
	if !ok {
		return fmt.Errorf("field %q: expected %T, got %T", d.name, *new(T), v)
	}
	for _, vf := range d.vfs {
		name, validator := vf()
		if err := validator(tv); err != nil {
			return fmt.Errorf("field %q: %s: %w", d.name, name, err)
		}
	}
	return nil
}

var _ FieldSpec = (*Descriptor[string])(nil)

// NewField creates a field descriptor for the given column name, kind,
// and optional constraint factories.
func NewField[T FieldType](name string, kind FieldKind, vfs ...ValidateFunc[T]) *Descriptor[T] {
	lo.Assert(strings.TrimSpace(name) != "", "field name must not be empty")
	lo.Assert(!strings.Contains(name, "."), "field name %q must not contain '.'", name)
	return &Descriptor[T]{name: name, kind: kind, vfs: vfs}
}

// Schema is a small, ready-to-embed implementation of the field-metadata
// half of the Entity capability set (FieldNames, FieldType, PrimaryKey).
// A generated entity struct embeds Schema and supplies Dataset() itself,
// exactly matching DESIGN NOTE 9: the capability is satisfied by a
// generated schema type, not by dynamic field lookup.
type Schema struct {
	fields []FieldSpec
	pk     string
}

// NewSchema builds a Schema. pk may be "" when the entity has no primary
// key. Fields are stored in the order given; FieldNames() reorders so the
// primary key (if any) comes first, per the capability contract.
func NewSchema(pk string, fields ...FieldSpec) Schema {
	return Schema{fields: fields, pk: pk}
}

func (s Schema) FieldNames() []string {
	names := make([]string, 0, len(s.fields))
	if s.pk != "" {
		names = append(names, s.pk)
	}
	for _, f := range s.fields {
		if f.Name() == s.pk {
			continue
		}
		names = append(names, f.Name())
	}
	return names
}

func (s Schema) FieldType(name string) FieldKind {
	for _, f := range s.fields {
		if f.Name() == name {
			return f.Kind()
		}
	}
	return UnknownKind
}

func (s Schema) PrimaryKey() mo.Option[string] {
	if s.pk == "" {
		return mo.None[string]()
	}
	return mo.Some(s.pk)
}

// Field returns the descriptor for name, if declared.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}
