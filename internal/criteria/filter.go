package criteria

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Filter describes the optional predicates a caller may place on a single
// field. Sub-fields are independent and all set sub-fields must hold at once;
// the zero value places no constraint on the field.
//
// An empty In or NotIn slice is treated as "no constraint", never as
// "matches nothing".
type Filter[T comparable] struct {
	Equals    *T
	NotEquals *T
	In        []T
	NotIn     []T
	Specified *bool
}

// IsZero reports whether no sub-field is set.
func (f Filter[T]) IsZero() bool {
	return f.Equals == nil && f.NotEquals == nil && len(f.In) == 0 && len(f.NotIn) == 0 && f.Specified == nil
}

// Matches reports whether a field value satisfies the filter. present is
// false when the underlying column holds no value; in that case only
// Specified=false can match, mirroring SQL three-valued comparison semantics.
func (f Filter[T]) Matches(value T, present bool) bool {
	if f.Specified != nil && *f.Specified != present {
		return false
	}
	if !present {
		return f.Equals == nil && f.NotEquals == nil && len(f.In) == 0 && len(f.NotIn) == 0
	}
	if f.Equals != nil && value != *f.Equals {
		return false
	}
	if f.NotEquals != nil && value == *f.NotEquals {
		return false
	}
	if len(f.In) > 0 && !slices.Contains(f.In, value) {
		return false
	}
	if len(f.NotIn) > 0 && slices.Contains(f.NotIn, value) {
		return false
	}
	return true
}

// RangeFilter extends Filter with ordering bounds for numeric and identifier
// fields.
type RangeFilter[T cmp.Ordered] struct {
	Filter[T]

	GreaterThan    *T
	GreaterOrEqual *T
	LessThan       *T
	LessOrEqual    *T
}

// IsZero reports whether no sub-field is set.
func (f RangeFilter[T]) IsZero() bool {
	return f.Filter.IsZero() &&
		f.GreaterThan == nil && f.GreaterOrEqual == nil &&
		f.LessThan == nil && f.LessOrEqual == nil
}

// Matches reports whether a field value satisfies the filter.
func (f RangeFilter[T]) Matches(value T, present bool) bool {
	if !f.Filter.Matches(value, present) {
		return false
	}
	if !present {
		return f.GreaterThan == nil && f.GreaterOrEqual == nil && f.LessThan == nil && f.LessOrEqual == nil
	}
	if f.GreaterThan != nil && value <= *f.GreaterThan {
		return false
	}
	if f.GreaterOrEqual != nil && value < *f.GreaterOrEqual {
		return false
	}
	if f.LessThan != nil && value >= *f.LessThan {
		return false
	}
	if f.LessOrEqual != nil && value > *f.LessOrEqual {
		return false
	}
	return true
}

// StringFilter extends Filter with substring matching for text fields.
// Substring matching is case-insensitive unless MatchCase is set; equality
// sub-fields stay exact either way.
type StringFilter struct {
	Filter[string]

	Contains       *string
	DoesNotContain *string
	MatchCase      bool
}

// IsZero reports whether no sub-field is set.
func (f StringFilter) IsZero() bool {
	return f.Filter.IsZero() && f.Contains == nil && f.DoesNotContain == nil
}

// Matches reports whether a field value satisfies the filter.
func (f StringFilter) Matches(value string, present bool) bool {
	if !f.Filter.Matches(value, present) {
		return false
	}
	if !present {
		return f.Contains == nil && f.DoesNotContain == nil
	}
	if f.Contains != nil && !f.contains(value, *f.Contains) {
		return false
	}
	if f.DoesNotContain != nil && f.contains(value, *f.DoesNotContain) {
		return false
	}
	return true
}

func (f StringFilter) contains(value, substring string) bool {
	if f.MatchCase {
		return strings.Contains(value, substring)
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(substring))
}

// TimeFilter is the date/instant counterpart of RangeFilter. time.Time does
// not satisfy cmp.Ordered, so it carries its own comparisons; equality uses
// time.Time.Equal.
type TimeFilter struct {
	Equals    *time.Time
	NotEquals *time.Time
	In        []time.Time
	NotIn     []time.Time
	Specified *bool

	GreaterThan    *time.Time
	GreaterOrEqual *time.Time
	LessThan       *time.Time
	LessOrEqual    *time.Time
}

// IsZero reports whether no sub-field is set.
func (f TimeFilter) IsZero() bool {
	return f.Equals == nil && f.NotEquals == nil && len(f.In) == 0 && len(f.NotIn) == 0 &&
		f.Specified == nil &&
		f.GreaterThan == nil && f.GreaterOrEqual == nil &&
		f.LessThan == nil && f.LessOrEqual == nil
}

// Matches reports whether a field value satisfies the filter.
func (f TimeFilter) Matches(value time.Time, present bool) bool {
	if f.Specified != nil && *f.Specified != present {
		return false
	}
	if !present {
		rest := f
		rest.Specified = nil
		return rest.IsZero()
	}
	if f.Equals != nil && !value.Equal(*f.Equals) {
		return false
	}
	if f.NotEquals != nil && value.Equal(*f.NotEquals) {
		return false
	}
	if len(f.In) > 0 && !containsTime(f.In, value) {
		return false
	}
	if len(f.NotIn) > 0 && containsTime(f.NotIn, value) {
		return false
	}
	if f.GreaterThan != nil && !value.After(*f.GreaterThan) {
		return false
	}
	if f.GreaterOrEqual != nil && value.Before(*f.GreaterOrEqual) {
		return false
	}
	if f.LessThan != nil && !value.Before(*f.LessThan) {
		return false
	}
	if f.LessOrEqual != nil && value.After(*f.LessOrEqual) {
		return false
	}
	return true
}

func containsTime(values []time.Time, value time.Time) bool {
	for _, v := range values {
		if v.Equal(value) {
			return true
		}
	}
	return false
}
