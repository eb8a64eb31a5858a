package entity

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/samber/mo"
	"github.com/tidwall/match"

	"github.com/samber/lo"
)

type charSet int

// Validator checks a single concrete field value and reports a violation.
type Validator[T FieldType] func(v T) error

// ValidateFunc produces a named Validator. The name is used to prefix the
// error returned from Descriptor.Validate.
type ValidateFunc[T FieldType] func() (string, Validator[T])

const (
	LowerCaseChar charSet = iota
	UpperCaseChar
	NumberChar
	SpecialChar
)

var (
	LowerCaseCharSet = string(lo.LowerCaseLettersCharset)
	UpperCaseCharSet = string(lo.UpperCaseLettersCharset)
	NumberCharSet    = string(lo.NumbersCharset)
	SpecialCharSet   = string(lo.SpecialCharset)
)

var (
	ErrLengthMin     = errors.New("length must be at least")
	ErrLengthMax     = errors.New("length must be at most")
	ErrLengthBetween = errors.New("length must be between")

	ErrCharSetOnly   = errors.New("can only contain characters from")
	ErrNotMatch      = errors.New("not match pattern")
	ErrNotValidEmail = errors.New("not valid email address")
	ErrNotValidURL   = errors.New("not valid url")
	ErrNotOneOf      = errors.New("value must be one of")
	ErrMustGt        = errors.New("must be greater than")
	ErrMustGte       = errors.New("must be greater than or equal to")
	ErrMustLt        = errors.New("must be less than")
	ErrMustLte       = errors.New("must be less than or equal to")
	ErrMustBetween   = errors.New("must be between")
)

// value returns the character set and its descriptive name.
func (set charSet) value() (chars string, name string) {
	switch set {
	case LowerCaseChar:
		return LowerCaseCharSet, "lower case characters"
	case UpperCaseChar:
		return UpperCaseCharSet, "upper case characters"
	case NumberChar:
		return NumberCharSet, "numbers"
	case SpecialChar:
		return SpecialCharSet, "special characters"
	default:
		panic("unhandled default case in charSet.value()")
	}
}

// MinLength validates that a string's length is at least min.
func MinLength(min int) ValidateFunc[string] {
	return func() (string, Validator[string]) {
		return "min_length", func(str string) error {
			return lo.Ternary(len(str) < min, fmt.Errorf("%w %d", ErrLengthMin, min), nil)
		}
	}
}

// MaxLength validates that a string's length is at most max.
func MaxLength(max int) ValidateFunc[string] {
	return func() (string, Validator[string]) {
		return "max_length", func(str string) error {
			return lo.Ternary(len(str) > max, fmt.Errorf("%w %d", ErrLengthMax, max), nil)
		}
	}
}

// LengthBetween validates that a string's length is within [min, max].
func LengthBetween(min, max int) ValidateFunc[string] {
	return func() (string, Validator[string]) {
		return "length_between", func(str string) error {
			length := len(str)
			return lo.Ternary(length < min || length > max, fmt.Errorf("%w %d and %d characters", ErrLengthBetween, min, max), nil)
		}
	}
}

// CharSetOnly validates that a string only contains characters from the
// given character sets.
func CharSetOnly(charSets ...charSet) ValidateFunc[string] {
	return func() (string, Validator[string]) {
		return "only_contains", func(str string) error {
			var allChars strings.Builder
			var names []string
			for _, set := range charSets {
				chars, name := set.value()
				allChars.WriteString(chars)
				names = append(names, name)
			}
			for _, r := range str {
				if !strings.ContainsRune(allChars.String(), r) {
					return fmt.Errorf("%w: %s", ErrCharSetOnly, strings.Join(names, ", "))
				}
			}
			return nil
		}
	}
}

// Match validates that a string matches a glob pattern ('*' any run, '?'
// any single rune).
func Match(pattern string) ValidateFunc[string] {
	lo.Assertf(match.IsPattern(pattern), "invalid pattern `%s`", pattern)
	return func() (string, Validator[string]) {
		return "match", func(str string) error {
			return lo.Ternary(!match.Match(str, pattern), fmt.Errorf("%w %s", ErrNotMatch, pattern), nil)
		}
	}
}

// Email validates that a string is a syntactically valid email address.
func Email() ValidateFunc[string] {
	return func() (string, Validator[string]) {
		return "email", func(str string) error {
			return lo.Ternary(mo.TupleToResult[*mail.Address](mail.ParseAddress(str)).IsError(), fmt.Errorf("%w: %s", ErrNotValidEmail, str), nil)
		}
	}
}

// URL validates that a string is a valid absolute URL.
func URL() ValidateFunc[string] {
	return func() (string, Validator[string]) {
		return "url", func(str string) error {
			rs := mo.TupleToResult[*url.URL](url.Parse(str))
			errRs := rs.IsError() || rs.MustGet().Scheme == "" || rs.MustGet().Host == ""
			return lo.Ternary(errRs, fmt.Errorf("%w: %s", ErrNotValidURL, str), nil)
		}
	}
}

// OneOf validates that a value is one of the allowed values.
func OneOf[T FieldType](allowed ...T) ValidateFunc[T] {
	return func() (string, Validator[T]) {
		return "one_of", func(val T) error {
			return lo.Ternary(!lo.Contains(allowed, val), fmt.Errorf("%w: %v", ErrNotOneOf, allowed), nil)
		}
	}
}

// Gt validates that a value is greater than min.
func Gt[T Number | time.Time](min T) ValidateFunc[T] {
	return func() (string, Validator[T]) {
		return "gt", func(val T) error {
			return lo.Ternary(!isGreaterThan(val, min), fmt.Errorf("%w %v", ErrMustGt, min), nil)
		}
	}
}

// Gte validates that a value is greater than or equal to min.
func Gte[T Number | time.Time](min T) ValidateFunc[T] {
	return func() (string, Validator[T]) {
		return "gte", func(val T) error {
			return lo.Ternary(isLessThan(val, min), fmt.Errorf("%w %v", ErrMustGte, min), nil)
		}
	}
}

// Lt validates that a value is less than max.
func Lt[T Number | time.Time](max T) ValidateFunc[T] {
	return func() (string, Validator[T]) {
		return "lt", func(val T) error {
			return lo.Ternary(!isLessThan(val, max), fmt.Errorf("%w %v", ErrMustLt, max), nil)
		}
	}
}

// Lte validates that a value is less than or equal to max.
func Lte[T Number | time.Time](max T) ValidateFunc[T] {
	return func() (string, Validator[T]) {
		return "lte", func(val T) error {
			return lo.Ternary(isGreaterThan(val, max), fmt.Errorf("%w %v", ErrMustLte, max), nil)
		}
	}
}

// Between validates that a value lies within [min, max].
func Between[T Number | time.Time](min, max T) ValidateFunc[T] {
	return func() (string, Validator[T]) {
		return "between", func(val T) error {
			return lo.Ternary(isLessThan(val, min) || isGreaterThan(val, max), fmt.Errorf("%w %v and %v", ErrMustBetween, min, max), nil)
		}
	}
}

func isGreaterThan[T Number | time.Time](a, b T) bool {
	switch v := any(a).(type) {
	case time.Time:
		return v.After(any(b).(time.Time))
	case int:
		return v > any(b).(int)
	case int8:
		return v > any(b).(int8)
	case int16:
		return v > any(b).(int16)
	case int32:
		return v > any(b).(int32)
	case int64:
		return v > any(b).(int64)
	case uint:
		return v > any(b).(uint)
	case uint8:
		return v > any(b).(uint8)
	case uint16:
		return v > any(b).(uint16)
	case uint32:
		return v > any(b).(uint32)
	case uint64:
		return v > any(b).(uint64)
	case float32:
		return v > any(b).(float32)
	case float64:
		return v > any(b).(float64)
	}
	return false
}

func isLessThan[T Number | time.Time](a, b T) bool {
	switch v := any(a).(type) {
	case time.Time:
		return v.Before(any(b).(time.Time))
	case int:
		return v < any(b).(int)
	case int8:
		return v < any(b).(int8)
	case int16:
		return v < any(b).(int16)
	case int32:
		return v < any(b).(int32)
	case int64:
		return v < any(b).(int64)
	case uint:
		return v < any(b).(uint)
	case uint8:
		return v < any(b).(uint8)
	case uint16:
		return v < any(b).(uint16)
	case uint32:
		return v < any(b).(uint32)
	case uint64:
		return v < any(b).(uint64)
	case float32:
		return v < any(b).(float32)
	case float64:
		return v < any(b).(float64)
	}
	return false
}
