package criteria

import (
	"testing"
	"time"
)

func ptr[T any](v T) *T {
	return &v
}

func TestFilterZeroValueMatchesEverything(t *testing.T) {
	var f Filter[int64]

	if !f.IsZero() {
		t.Fatalf("expected zero filter to report IsZero")
	}
	if !f.Matches(42, true) {
		t.Fatalf("zero filter should match a present value")
	}
	if !f.Matches(0, false) {
		t.Fatalf("zero filter should match an absent value")
	}
}

func TestFilterEquality(t *testing.T) {
	f := Filter[int64]{Equals: ptr(int64(7))}

	if !f.Matches(7, true) {
		t.Fatalf("expected 7 to match equals=7")
	}
	if f.Matches(8, true) {
		t.Fatalf("expected 8 not to match equals=7")
	}

	f = Filter[int64]{NotEquals: ptr(int64(7))}
	if f.Matches(7, true) {
		t.Fatalf("expected 7 not to match notEquals=7")
	}
	if !f.Matches(8, true) {
		t.Fatalf("expected 8 to match notEquals=7")
	}
}

func TestFilterInSet(t *testing.T) {
	f := Filter[string]{In: []string{"a", "b"}}

	if !f.Matches("a", true) {
		t.Fatalf("expected member to match in set")
	}
	if f.Matches("c", true) {
		t.Fatalf("expected non-member not to match in set")
	}
}

func TestFilterEmptyInIsNoConstraint(t *testing.T) {
	f := Filter[string]{In: []string{}}

	if !f.IsZero() {
		t.Fatalf("empty in set should leave the filter zero")
	}
	if !f.Matches("anything", true) {
		t.Fatalf("empty in set must not exclude any value")
	}

	f = Filter[string]{NotIn: []string{}}
	if !f.Matches("anything", true) {
		t.Fatalf("empty notIn set must not exclude any value")
	}
}

func TestFilterConjunctionOfSubFields(t *testing.T) {
	f := Filter[int64]{
		NotEquals: ptr(int64(5)),
		In:        []int64{4, 5, 6},
	}

	if !f.Matches(4, true) {
		t.Fatalf("4 satisfies both sub-fields and should match")
	}
	if f.Matches(5, true) {
		t.Fatalf("5 fails notEquals and should not match")
	}
	if f.Matches(7, true) {
		t.Fatalf("7 fails in and should not match")
	}
}

func TestFilterNullSemantics(t *testing.T) {
	// With no value present, only specified=false can assert a match.
	equals := Filter[int64]{Equals: ptr(int64(1))}
	if equals.Matches(0, false) {
		t.Fatalf("equals must not match an absent value")
	}

	notEquals := Filter[int64]{NotEquals: ptr(int64(1))}
	if notEquals.Matches(0, false) {
		t.Fatalf("notEquals must not match an absent value")
	}

	specifiedFalse := Filter[int64]{Specified: ptr(false)}
	if !specifiedFalse.Matches(0, false) {
		t.Fatalf("specified=false should match an absent value")
	}
	if specifiedFalse.Matches(1, true) {
		t.Fatalf("specified=false should not match a present value")
	}

	specifiedTrue := Filter[int64]{Specified: ptr(true)}
	if specifiedTrue.Matches(0, false) {
		t.Fatalf("specified=true should not match an absent value")
	}
	if !specifiedTrue.Matches(1, true) {
		t.Fatalf("specified=true should match a present value")
	}
}

func TestRangeFilterBounds(t *testing.T) {
	f := RangeFilter[int64]{
		GreaterThan: ptr(int64(10)),
		LessOrEqual: ptr(int64(20)),
	}

	if f.Matches(10, true) {
		t.Fatalf("greaterThan bound is exclusive")
	}
	if !f.Matches(11, true) {
		t.Fatalf("11 lies inside the range")
	}
	if !f.Matches(20, true) {
		t.Fatalf("lessOrEqual bound is inclusive")
	}
	if f.Matches(21, true) {
		t.Fatalf("21 lies outside the range")
	}
	if f.Matches(0, false) {
		t.Fatalf("bounds must not match an absent value")
	}
}

func TestRangeFilterCombinesWithEquality(t *testing.T) {
	f := RangeFilter[int64]{
		Filter:      Filter[int64]{NotEquals: ptr(int64(15))},
		GreaterThan: ptr(int64(10)),
	}

	if !f.Matches(12, true) {
		t.Fatalf("12 satisfies both sub-fields")
	}
	if f.Matches(15, true) {
		t.Fatalf("15 fails notEquals")
	}
	if f.Matches(9, true) {
		t.Fatalf("9 fails greaterThan")
	}
}

func TestStringFilterContains(t *testing.T) {
	f := StringFilter{Contains: ptr("oad")}

	if !f.Matches("Broadway", true) {
		t.Fatalf("expected substring to match")
	}
	if !f.Matches("BROADWAY", true) {
		t.Fatalf("contains is case-insensitive by default")
	}
	if f.Matches("Main Street", true) {
		t.Fatalf("expected non-matching value to be excluded")
	}
}

func TestStringFilterMatchCase(t *testing.T) {
	f := StringFilter{Contains: ptr("oad"), MatchCase: true}

	if !f.Matches("Broadway", true) {
		t.Fatalf("expected exact-case substring to match")
	}
	if f.Matches("BROADWAY", true) {
		t.Fatalf("matchCase must respect letter case")
	}
}

func TestStringFilterDoesNotContain(t *testing.T) {
	f := StringFilter{DoesNotContain: ptr("lot")}

	if f.Matches("Lot 42", true) {
		t.Fatalf("expected matching substring to exclude the value")
	}
	if !f.Matches("Garage 3", true) {
		t.Fatalf("expected value without substring to match")
	}
}

func TestTimeFilterEqualityIgnoresLocation(t *testing.T) {
	utc := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	shifted := utc.In(time.FixedZone("CEST", 2*3600))

	f := TimeFilter{Equals: &utc}
	if !f.Matches(shifted, true) {
		t.Fatalf("equal instants in different zones must match")
	}
}

func TestTimeFilterBounds(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	f := TimeFilter{GreaterOrEqual: &from, LessThan: &to}

	if !f.Matches(from, true) {
		t.Fatalf("greaterOrEqual bound is inclusive")
	}
	if f.Matches(to, true) {
		t.Fatalf("lessThan bound is exclusive")
	}
	if f.Matches(from.Add(-time.Second), true) {
		t.Fatalf("instant before range must not match")
	}
	if f.Matches(time.Time{}, false) {
		t.Fatalf("bounds must not match an absent value")
	}
}

func TestTimeFilterSpecified(t *testing.T) {
	f := TimeFilter{Specified: ptr(false)}

	if !f.Matches(time.Time{}, false) {
		t.Fatalf("specified=false should match an absent value")
	}
	if f.Matches(time.Now(), true) {
		t.Fatalf("specified=false should not match a present value")
	}
}
