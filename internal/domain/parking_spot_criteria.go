package domain

import (
	"net/url"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/criteria"
)

// ParkingSpotCriteria holds every filtering option a caller may supply when
// listing, counting or exporting parking spots. All entries are optional and
// combine conjunctively; the zero value matches every spot.
//
// The query-string encoding is <field>.<operator>=<value>, for example
// /api/parking-spots?isFree.equals=true&name.contains=garage.
type ParkingSpotCriteria struct {
	ID             criteria.RangeFilter[int64]
	Name           criteria.StringFilter
	IsFree         criteria.Filter[bool]
	OwnedAccountID criteria.RangeFilter[int64]
	CreatedAt      criteria.TimeFilter
}

// ParkingSpotCriteriaFromQuery decodes criteria from request query
// parameters. Fields outside the declared set are rejected with
// criteria.UnknownFieldError; page, size and sort are pagination parameters
// and pass through untouched.
func ParkingSpotCriteriaFromQuery(values url.Values) (ParkingSpotCriteria, error) {
	var c ParkingSpotCriteria
	d := criteria.NewDecoder().
		Reserve("page", "size", "sort").
		Int64("id", &c.ID).
		String("name", &c.Name).
		Bool("isFree", &c.IsFree).
		Int64("ownedAccountId", &c.OwnedAccountID).
		Time("createdAt", &c.CreatedAt)
	if err := d.Decode(values); err != nil {
		return ParkingSpotCriteria{}, err
	}
	return c, nil
}

// IsZero reports whether no filter is set at all.
func (c ParkingSpotCriteria) IsZero() bool {
	return c.ID.IsZero() && c.Name.IsZero() && c.IsFree.IsZero() &&
		c.OwnedAccountID.IsZero() && c.CreatedAt.IsZero()
}

// Matches evaluates the criteria against a spot in memory. The SQL
// translation in the repository must select exactly the spots this accepts.
func (c ParkingSpotCriteria) Matches(spot ParkingSpot) bool {
	return c.ID.Matches(spot.ID, true) &&
		c.Name.Matches(spot.Name, true) &&
		c.IsFree.Matches(spot.IsFree, true) &&
		c.OwnedAccountID.Matches(spot.OwnedAccountID, true) &&
		c.CreatedAt.Matches(spot.Audit.CreatedAt, !spot.Audit.CreatedAt.IsZero())
}
