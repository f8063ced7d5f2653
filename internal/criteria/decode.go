package criteria

import (
	"cmp"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// UnknownFieldError reports a query parameter referencing a field outside the
// entity's filterable field set. It is always surfaced to the caller, never
// silently dropped.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown filter field %q", e.Field)
}

// UnknownOperatorError reports an operator a field's type does not support.
type UnknownOperatorError struct {
	Field    string
	Operator string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("field %q does not support filter operator %q", e.Field, e.Operator)
}

// Operator names accepted in query parameters, e.g. name.contains=foo.
const (
	OpEquals         = "equals"
	OpNotEquals      = "notEquals"
	OpIn             = "in"
	OpNotIn          = "notIn"
	OpSpecified      = "specified"
	OpGreaterThan    = "greaterThan"
	OpGreaterOrEqual = "greaterOrEqual"
	OpLessThan       = "lessThan"
	OpLessOrEqual    = "lessOrEqual"
	OpContains       = "contains"
	OpDoesNotContain = "doesNotContain"
)

type binding interface {
	apply(field, op, raw string) error
}

// Decoder maps query parameters of the form <field>.<operator>=<value> onto
// statically registered typed filters. The filterable field set is declared
// once per entity; anything outside it is rejected at decode time.
type Decoder struct {
	fields   map[string]binding
	reserved map[string]bool
}

// NewDecoder returns a decoder with no fields registered.
func NewDecoder() *Decoder {
	return &Decoder{
		fields:   make(map[string]binding),
		reserved: make(map[string]bool),
	}
}

// Reserve marks parameter names the decoder should skip, such as pagination
// controls handled elsewhere.
func (d *Decoder) Reserve(names ...string) *Decoder {
	for _, name := range names {
		d.reserved[name] = true
	}
	return d
}

// Int64 registers an identifier/numeric field.
func (d *Decoder) Int64(name string, dst *RangeFilter[int64]) *Decoder {
	d.fields[name] = rangeBinding[int64]{dst: dst, parse: parseInt64}
	return d
}

// Float64 registers a decimal field.
func (d *Decoder) Float64(name string, dst *RangeFilter[float64]) *Decoder {
	d.fields[name] = rangeBinding[float64]{dst: dst, parse: parseFloat64}
	return d
}

// String registers a text field.
func (d *Decoder) String(name string, dst *StringFilter) *Decoder {
	d.fields[name] = stringBinding{dst: dst}
	return d
}

// Bool registers a boolean field.
func (d *Decoder) Bool(name string, dst *Filter[bool]) *Decoder {
	d.fields[name] = equalityBinding[bool]{dst: dst, parse: strconv.ParseBool}
	return d
}

// Time registers a date/instant field.
func (d *Decoder) Time(name string, dst *TimeFilter) *Decoder {
	d.fields[name] = timeBinding{dst: dst}
	return d
}

// Decode applies every filter parameter in values to its registered field.
// Parameters are processed in a stable order so repeated decodes of the same
// query behave identically; the resulting filters compose conjunctively, so
// ordering is not observable in query results either way.
func (d *Decoder) Decode(values url.Values) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if d.reserved[key] {
			continue
		}
		field, op, ok := strings.Cut(key, ".")
		if !ok {
			return &UnknownFieldError{Field: key}
		}
		b, registered := d.fields[field]
		if !registered {
			return &UnknownFieldError{Field: field}
		}
		for _, raw := range values[key] {
			if err := b.apply(field, op, raw); err != nil {
				return err
			}
		}
	}
	return nil
}

type equalityBinding[T comparable] struct {
	dst   *Filter[T]
	parse func(string) (T, error)
}

func (b equalityBinding[T]) apply(field, op, raw string) error {
	handled, err := applyEquality(b.dst, field, op, raw, b.parse)
	if err != nil {
		return err
	}
	if !handled {
		return &UnknownOperatorError{Field: field, Operator: op}
	}
	return nil
}

type rangeBinding[T cmp.Ordered] struct {
	dst   *RangeFilter[T]
	parse func(string) (T, error)
}

func (b rangeBinding[T]) apply(field, op, raw string) error {
	handled, err := applyEquality(&b.dst.Filter, field, op, raw, b.parse)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}

	var target **T
	switch op {
	case OpGreaterThan:
		target = &b.dst.GreaterThan
	case OpGreaterOrEqual:
		target = &b.dst.GreaterOrEqual
	case OpLessThan:
		target = &b.dst.LessThan
	case OpLessOrEqual:
		target = &b.dst.LessOrEqual
	default:
		return &UnknownOperatorError{Field: field, Operator: op}
	}
	value, err := parseValue(field, op, raw, b.parse)
	if err != nil {
		return err
	}
	*target = &value
	return nil
}

type stringBinding struct {
	dst *StringFilter
}

func (b stringBinding) apply(field, op, raw string) error {
	handled, err := applyEquality(&b.dst.Filter, field, op, raw, parseString)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}

	switch op {
	case OpContains:
		b.dst.Contains = &raw
	case OpDoesNotContain:
		b.dst.DoesNotContain = &raw
	default:
		return &UnknownOperatorError{Field: field, Operator: op}
	}
	return nil
}

type timeBinding struct {
	dst *TimeFilter
}

func (b timeBinding) apply(field, op, raw string) error {
	if op == OpSpecified {
		specified, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid value for %s.%s: %w", field, op, err)
		}
		b.dst.Specified = &specified
		return nil
	}
	if op == OpIn || op == OpNotIn {
		values, err := parseList(field, op, raw, parseTime)
		if err != nil {
			return err
		}
		if op == OpIn {
			b.dst.In = append(b.dst.In, values...)
		} else {
			b.dst.NotIn = append(b.dst.NotIn, values...)
		}
		return nil
	}

	var target **time.Time
	switch op {
	case OpEquals:
		target = &b.dst.Equals
	case OpNotEquals:
		target = &b.dst.NotEquals
	case OpGreaterThan:
		target = &b.dst.GreaterThan
	case OpGreaterOrEqual:
		target = &b.dst.GreaterOrEqual
	case OpLessThan:
		target = &b.dst.LessThan
	case OpLessOrEqual:
		target = &b.dst.LessOrEqual
	default:
		return &UnknownOperatorError{Field: field, Operator: op}
	}
	value, err := parseValue(field, op, raw, parseTime)
	if err != nil {
		return err
	}
	*target = &value
	return nil
}

// applyEquality handles the operators shared by every filter type. It reports
// whether the operator was one of them.
func applyEquality[T comparable](f *Filter[T], field, op, raw string, parse func(string) (T, error)) (bool, error) {
	switch op {
	case OpEquals:
		value, err := parseValue(field, op, raw, parse)
		if err != nil {
			return true, err
		}
		f.Equals = &value
	case OpNotEquals:
		value, err := parseValue(field, op, raw, parse)
		if err != nil {
			return true, err
		}
		f.NotEquals = &value
	case OpIn:
		values, err := parseList(field, op, raw, parse)
		if err != nil {
			return true, err
		}
		f.In = append(f.In, values...)
	case OpNotIn:
		values, err := parseList(field, op, raw, parse)
		if err != nil {
			return true, err
		}
		f.NotIn = append(f.NotIn, values...)
	case OpSpecified:
		specified, err := strconv.ParseBool(raw)
		if err != nil {
			return true, fmt.Errorf("invalid value for %s.%s: %w", field, op, err)
		}
		f.Specified = &specified
	default:
		return false, nil
	}
	return true, nil
}

func parseValue[T any](field, op, raw string, parse func(string) (T, error)) (T, error) {
	value, err := parse(raw)
	if err != nil {
		return value, fmt.Errorf("invalid value for %s.%s: %w", field, op, err)
	}
	return value, nil
}

// parseList parses a comma-separated value list. An empty parameter yields an
// empty list, which downstream translation treats as "no constraint".
func parseList[T any](field, op, raw string, parse func(string) (T, error)) ([]T, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	values := make([]T, 0, len(parts))
	for _, part := range parts {
		value, err := parse(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s.%s: %w", field, op, err)
		}
		values = append(values, value)
	}
	return values, nil
}

func parseInt64(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func parseFloat64(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}

func parseString(raw string) (string, error) {
	return raw, nil
}

var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time value %q", raw)
}
