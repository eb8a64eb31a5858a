package sqlgen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kcmvp/relq"
	"github.com/kcmvp/relq/entity"
	"github.com/kcmvp/relq/internal/value"
)

// SetPair is one `(field, expr)` element of an update_all SET list. It mirrors validate.SetPair deliberately rather than importing
// it: the generator assumes its input already passed validation and has
// no business depending on the validator package.
type SetPair struct {
	Field string
	Value relq.Expr
}

// fieldValidator is the optional capability an entity.Entity may supply
// (entity.Schema does, via promoted embedding) for looking up a field's
// declared constraints. Insert/Update use it when present to reject a
// malformed value before it is lowered into SQL text; entities that
// don't expose it (any bare entity.Entity implementation) just skip the
// check, same as the teacher's constraint toolkit being opt-in per field.
type fieldValidator interface {
	Field(name string) (entity.FieldSpec, bool)
}

func checkFieldConstraints(e entity.Entity, name string, v any) error {
	fv, ok := e.(fieldValidator)
	if !ok {
		return nil
	}
	spec, ok := fv.Field(name)
	if !ok {
		return nil
	}
	return spec.Validate(v)
}

// Insert lowers a single-row INSERT (spec §4.5's row-level forms). The
// primary key column is omitted from both the column and value lists
// when the entity declares one, and RETURNING pk is appended in that
// case. Declared field constraints (entity.FieldSpec.Validate) are
// checked before a value is rendered.
func Insert(e entity.Entity, values value.Data) (string, error) {
	pk, hasPK := e.PrimaryKey().Get()
	var cols, vals []string
	for _, name := range e.FieldNames() {
		if hasPK && name == pk {
			continue
		}
		v, ok := values.Get(name).Get()
		if !ok {
			continue
		}
		if err := checkFieldConstraints(e, name, v); err != nil {
			return "", err
		}
		rendered, err := renderValue(v)
		if err != nil {
			return "", err
		}
		cols = append(cols, name)
		vals = append(vals, rendered)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s)\nVALUES (%s)", e.Dataset(), strings.Join(cols, ", "), strings.Join(vals, ", "))
	if hasPK {
		fmt.Fprintf(&b, "\nRETURNING %s", pk)
	}
	return b.String(), nil
}

// Update lowers a single-row UPDATE keyed by the entity's primary key,
// excluding pk from the SET list (spec §4.5). The primary key's value
// must be present in values.
func Update(e entity.Entity, values value.Data) (string, error) {
	pk, hasPK := e.PrimaryKey().Get()
	if !hasPK {
		return "", fmt.Errorf("%w: update(entity_value) requires a declared primary key", relq.ErrUnrecognizedNode)
	}
	pkv, ok := values.Get(pk).Get()
	if !ok {
		return "", fmt.Errorf("%w: missing primary key value for %q", relq.ErrUnrecognizedNode, pk)
	}
	var sets []string
	for _, name := range e.FieldNames() {
		if name == pk {
			continue
		}
		v, ok := values.Get(name).Get()
		if !ok {
			continue
		}
		if err := checkFieldConstraints(e, name, v); err != nil {
			return "", err
		}
		rendered, err := renderValue(v)
		if err != nil {
			return "", err
		}
		sets = append(sets, fmt.Sprintf("%s = %s", name, rendered))
	}
	pkRendered, err := renderValue(pkv)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s", e.Dataset(), strings.Join(sets, ", "), pk, pkRendered), nil
}

// Delete lowers a single-row DELETE keyed by the entity's primary key.
func Delete(e entity.Entity, values value.Data) (string, error) {
	pk, hasPK := e.PrimaryKey().Get()
	if !hasPK {
		return "", fmt.Errorf("%w: delete(entity_value) requires a declared primary key", relq.ErrUnrecognizedNode)
	}
	pkv, ok := values.Get(pk).Get()
	if !ok {
		return "", fmt.Errorf("%w: missing primary key value for %q", relq.ErrUnrecognizedNode, pk)
	}
	rendered, err := renderValue(pkv)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("DELETE FROM %s WHERE %s = %s", e.Dataset(), pk, rendered), nil
}

// UpdateAll lowers `update_all(query, binding, values)`: a set-list
// applied to every row matched by q's from/where (spec §4.5).
func UpdateAll(q relq.Query, binding []string, sets []SetPair) (string, error) {
	if len(q.Froms) != 1 {
		return "", fmt.Errorf("%w: update_all requires exactly one from", relq.ErrUnrecognizedNode)
	}
	aliases := assignAliases(q.Froms)
	env := newAliasEnv(q.Froms, binding, aliases)

	setParts := make([]string, len(sets))
	for i, s := range sets {
		l, err := lower(s.Value, env)
		if err != nil {
			return "", err
		}
		setParts[i] = fmt.Sprintf("%s = %s", s.Field, l)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "UPDATE %s AS %s\nSET %s", q.Froms[0].Dataset(), aliases[0], strings.Join(setParts, ", "))
	if len(q.Wheres) > 0 {
		whereSQL, err := lowerWhere(q, aliases)
		if err != nil {
			return "", err
		}
		b.WriteString("\nWHERE ")
		b.WriteString(whereSQL)
	}
	return b.String(), nil
}

// DeleteAll lowers `delete_all(query)`: every row matched by q's
// from/where is removed (spec §4.5).
func DeleteAll(q relq.Query) (string, error) {
	if len(q.Froms) != 1 {
		return "", fmt.Errorf("%w: delete_all requires exactly one from", relq.ErrUnrecognizedNode)
	}
	aliases := assignAliases(q.Froms)
	var b strings.Builder
	fmt.Fprintf(&b, "DELETE FROM %s AS %s", q.Froms[0].Dataset(), aliases[0])
	if len(q.Wheres) > 0 {
		whereSQL, err := lowerWhere(q, aliases)
		if err != nil {
			return "", err
		}
		b.WriteString("\nWHERE ")
		b.WriteString(whereSQL)
	}
	return b.String(), nil
}

// renderValue lowers a raw Go value from an EntityValue bag to its SQL
// literal text, matching the same nil/bool/number/string rules Literal
// lowering uses (spec §4.5/§6).
func renderValue(v any) (string, error) {
	switch tv := v.(type) {
	case nil:
		return "NULL", nil
	case bool:
		if tv {
			return "TRUE", nil
		}
		return "FALSE", nil
	case string:
		return quoteLiteral(tv), nil
	case time.Time:
		return quoteLiteral(tv.Format("2006-01-02 15:04:05.999999-07")), nil
	case int:
		return strconv.Itoa(tv), nil
	case int8:
		return strconv.FormatInt(int64(tv), 10), nil
	case int16:
		return strconv.FormatInt(int64(tv), 10), nil
	case int32:
		return strconv.FormatInt(int64(tv), 10), nil
	case int64:
		return strconv.FormatInt(tv, 10), nil
	case uint:
		return strconv.FormatUint(uint64(tv), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(tv), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(tv), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(tv), 10), nil
	case uint64:
		return strconv.FormatUint(tv, 10), nil
	case float32:
		return strconv.FormatFloat(float64(tv), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(tv, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: unsupported value type %T", relq.ErrUnrecognizedNode, v)
	}
}
