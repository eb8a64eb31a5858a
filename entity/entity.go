// Package entity declares the capability contract that a schema-bound
// record type must satisfy to be usable as a query source, and the small
// generic descriptor factory generated schemas use to implement it.
//
// Layering mirrors the teacher package this module is grounded on: the
// capability interface is consulted by the type checker and SQL generator
// through method calls only, never through reflection or dynamic dispatch
// over a concrete struct.
package entity

import "github.com/samber/mo"

// FieldKind is the declared type of an entity field, collapsed to the
// domain the type checker reasons about. FieldType reports Integer and
// Float as declared; the type checker collapses both to "number". They
// are kept distinct here only so schema authors can be explicit about
// column storage.
type FieldKind int

const (
	UnknownKind FieldKind = iota
	Integer
	Float
	String
	Boolean
)

func (k FieldKind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Entity is the capability set a schema-bound record type exposes to the
// query core. Nothing in the core holds a reference to a concrete entity
// struct beyond this interface.
type Entity interface {
	// Dataset is the name of the backing table.
	Dataset() string
	// FieldNames returns the ordered field names, primary key first when
	// one is declared.
	FieldNames() []string
	// FieldType returns the declared kind of a field, or UnknownKind if
	// the entity has no field by that name.
	FieldType(name string) FieldKind
	// PrimaryKey returns the primary key field name, if any.
	PrimaryKey() mo.Option[string]
}
