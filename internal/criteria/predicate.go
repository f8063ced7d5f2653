package criteria

import (
	"cmp"
	"strconv"
	"strings"
)

// Condition is a single SQL boolean expression with its bind arguments.
// Expressions use ? placeholders; Predicate renumbers them to $n when
// rendering, so conditions compose regardless of position.
type Condition struct {
	Expr string
	Args []any
}

// Predicate is a conjunction of conditions over one entity. The zero value
// is the identity predicate and renders to no SQL at all, matching every row.
//
// There is deliberately no OR combinator: callers wanting disjunctive
// semantics encode them in a single field's In filter.
type Predicate struct {
	conds []Condition
}

// And appends conditions to the conjunction.
func (p *Predicate) And(conds ...Condition) {
	p.conds = append(p.conds, conds...)
}

// Len returns the number of conditions in the conjunction.
func (p Predicate) Len() int {
	return len(p.conds)
}

// SQL renders the conjunction with numbered placeholders starting at start,
// returning the rendered expression and the bind arguments in placeholder
// order. An empty predicate renders to ("", nil).
func (p Predicate) SQL(start int) (string, []any) {
	if len(p.conds) == 0 {
		return "", nil
	}

	var sb strings.Builder
	var args []any
	n := start
	for i, cond := range p.conds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		for _, r := range cond.Expr {
			if r == '?' {
				sb.WriteString("$" + strconv.Itoa(n))
				n++
				continue
			}
			sb.WriteRune(r)
		}
		args = append(args, cond.Args...)
	}
	return sb.String(), args
}

// EqualityConditions translates a Filter into SQL conditions against column.
// Empty In/NotIn slices contribute nothing.
func EqualityConditions[T comparable](column string, f Filter[T]) []Condition {
	var conds []Condition
	if f.Equals != nil {
		conds = append(conds, Condition{column + " = ?", []any{*f.Equals}})
	}
	if f.NotEquals != nil {
		conds = append(conds, Condition{column + " <> ?", []any{*f.NotEquals}})
	}
	if len(f.In) > 0 {
		conds = append(conds, Condition{column + " = ANY(?)", []any{f.In}})
	}
	if len(f.NotIn) > 0 {
		conds = append(conds, Condition{"NOT (" + column + " = ANY(?))", []any{f.NotIn}})
	}
	if f.Specified != nil {
		conds = append(conds, specifiedCondition(column, *f.Specified))
	}
	return conds
}

// RangeConditions translates a RangeFilter into SQL conditions against column.
func RangeConditions[T cmp.Ordered](column string, f RangeFilter[T]) []Condition {
	conds := EqualityConditions(column, f.Filter)
	if f.GreaterThan != nil {
		conds = append(conds, Condition{column + " > ?", []any{*f.GreaterThan}})
	}
	if f.GreaterOrEqual != nil {
		conds = append(conds, Condition{column + " >= ?", []any{*f.GreaterOrEqual}})
	}
	if f.LessThan != nil {
		conds = append(conds, Condition{column + " < ?", []any{*f.LessThan}})
	}
	if f.LessOrEqual != nil {
		conds = append(conds, Condition{column + " <= ?", []any{*f.LessOrEqual}})
	}
	return conds
}

// StringConditions translates a StringFilter into SQL conditions against
// column. Substring matching renders to ILIKE unless MatchCase is set.
func StringConditions(column string, f StringFilter) []Condition {
	conds := EqualityConditions(column, f.Filter)
	like := "ILIKE"
	if f.MatchCase {
		like = "LIKE"
	}
	if f.Contains != nil {
		conds = append(conds, Condition{column + " " + like + " ?", []any{"%" + escapeLike(*f.Contains) + "%"}})
	}
	if f.DoesNotContain != nil {
		conds = append(conds, Condition{column + " NOT " + like + " ?", []any{"%" + escapeLike(*f.DoesNotContain) + "%"}})
	}
	return conds
}

// TimeConditions translates a TimeFilter into SQL conditions against column.
func TimeConditions(column string, f TimeFilter) []Condition {
	var conds []Condition
	if f.Equals != nil {
		conds = append(conds, Condition{column + " = ?", []any{*f.Equals}})
	}
	if f.NotEquals != nil {
		conds = append(conds, Condition{column + " <> ?", []any{*f.NotEquals}})
	}
	if len(f.In) > 0 {
		conds = append(conds, Condition{column + " = ANY(?)", []any{f.In}})
	}
	if len(f.NotIn) > 0 {
		conds = append(conds, Condition{"NOT (" + column + " = ANY(?))", []any{f.NotIn}})
	}
	if f.Specified != nil {
		conds = append(conds, specifiedCondition(column, *f.Specified))
	}
	if f.GreaterThan != nil {
		conds = append(conds, Condition{column + " > ?", []any{*f.GreaterThan}})
	}
	if f.GreaterOrEqual != nil {
		conds = append(conds, Condition{column + " >= ?", []any{*f.GreaterOrEqual}})
	}
	if f.LessThan != nil {
		conds = append(conds, Condition{column + " < ?", []any{*f.LessThan}})
	}
	if f.LessOrEqual != nil {
		conds = append(conds, Condition{column + " <= ?", []any{*f.LessOrEqual}})
	}
	return conds
}

func specifiedCondition(column string, specified bool) Condition {
	if specified {
		return Condition{column + " IS NOT NULL", nil}
	}
	return Condition{column + " IS NULL", nil}
}

// escapeLike escapes LIKE pattern metacharacters in a literal substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
