package repository

import (
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
)

func spotCriteria(t *testing.T, query string) domain.ParkingSpotCriteria {
	t.Helper()
	values, err := url.ParseQuery(query)
	if err != nil {
		t.Fatalf("failed to parse query: %v", err)
	}
	c, err := domain.ParkingSpotCriteriaFromQuery(values)
	if err != nil {
		t.Fatalf("failed to decode criteria: %v", err)
	}
	return c
}

func TestSpotPredicateRendersConjunction(t *testing.T) {
	c := spotCriteria(t, "isFree.equals=true&name.contains=garage&id.greaterThan=5")

	sql, args := spotPredicate(c).SQL(1)
	want := "ps.id > $1 AND ps.name ILIKE $2 AND ps.is_free = $3"
	if sql != want {
		t.Fatalf("expected %q, got %q", want, sql)
	}
	if !reflect.DeepEqual(args, []any{int64(5), "%garage%", true}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSpotPredicateEmptyCriteriaRendersNothing(t *testing.T) {
	sql, args := spotPredicate(domain.ParkingSpotCriteria{}).SQL(1)

	if sql != "" || args != nil {
		t.Fatalf("zero criteria must render no predicate, got %q %v", sql, args)
	}
}

func TestSpotPredicateEmptyInRendersNothing(t *testing.T) {
	c := spotCriteria(t, "id.in=")

	sql, _ := spotPredicate(c).SQL(1)
	if sql != "" {
		t.Fatalf("an empty in list must not constrain the query, got %q", sql)
	}
}

func TestSpotOrderByWhitelist(t *testing.T) {
	orderBy, err := spotOrderBy([]domain.SortOrder{
		{Field: "name", Direction: domain.SortDirectionDesc},
		{Field: "id", Direction: domain.SortDirectionAsc},
	})
	if err != nil {
		t.Fatalf("failed to build order by: %v", err)
	}
	if orderBy != "ps.name DESC, ps.id" {
		t.Fatalf("unexpected order by %q", orderBy)
	}
}

func TestSpotOrderByDefaultsToID(t *testing.T) {
	orderBy, err := spotOrderBy(nil)
	if err != nil {
		t.Fatalf("failed to build order by: %v", err)
	}
	if orderBy != "ps.id" {
		t.Fatalf("unexpected order by %q", orderBy)
	}
}

func TestSpotOrderByRejectsUnknownColumn(t *testing.T) {
	_, err := spotOrderBy([]domain.SortOrder{{Field: "password_hash"}})

	var validation domain.ValidationError
	if !errors.As(err, &validation) || validation.Field != "sort" {
		t.Fatalf("expected sort validation error, got %v", err)
	}
}
