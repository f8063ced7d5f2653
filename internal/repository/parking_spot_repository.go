package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/auth"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/criteria"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
)

const uniqueViolation = "23505"

const spotColumns = `ps.id, ps.name, ps.is_free, ps.owned_account_id, a.login, ps.version,
       ps.created_by, ps.created_at, ps.modified_by, ps.modified_at`

const spotFrom = `
FROM parking_spot ps
JOIN account a ON a.id = ps.owned_account_id`

const selectSpot = "SELECT " + spotColumns + spotFrom

const selectSpotPaged = "SELECT " + spotColumns + ", COUNT(*) OVER() AS total_count" + spotFrom

// spotSortColumns whitelists the fields a page request may order by.
var spotSortColumns = map[string]string{
	"id":             "ps.id",
	"name":           "ps.name",
	"isFree":         "ps.is_free",
	"ownedAccountId": "ps.owned_account_id",
	"createdAt":      "ps.created_at",
	"modifiedAt":     "ps.modified_at",
}

// parkingSpotRepository implements ParkingSpotRepository against Postgres.
// Audit columns are stamped here from the ambient principal; business code
// never supplies them.
type parkingSpotRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewParkingSpotRepository creates a new parking spot repository.
func NewParkingSpotRepository(pool *pgxpool.Pool) ParkingSpotRepository {
	return &parkingSpotRepository{pool: pool, now: time.Now}
}

// spotPredicate binds the criteria's filters to their columns. Every filter
// contributes zero or more conditions; the result is their conjunction.
func spotPredicate(c domain.ParkingSpotCriteria) criteria.Predicate {
	var p criteria.Predicate
	p.And(criteria.RangeConditions("ps.id", c.ID)...)
	p.And(criteria.StringConditions("ps.name", c.Name)...)
	p.And(criteria.EqualityConditions("ps.is_free", c.IsFree)...)
	p.And(criteria.RangeConditions("ps.owned_account_id", c.OwnedAccountID)...)
	p.And(criteria.TimeConditions("ps.created_at", c.CreatedAt)...)
	return p
}

func (r *parkingSpotRepository) Create(ctx context.Context, spot domain.ParkingSpot) (domain.ParkingSpot, error) {
	by, at := auth.Auditor(ctx), r.now()

	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO parking_spot (name, is_free, owned_account_id, version, created_by, created_at, modified_by, modified_at)
		 VALUES ($1, $2, $3, 0, $4, $5, $4, $5)
		 RETURNING id`,
		spot.Name, spot.IsFree, spot.OwnedAccountID, by, at,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ParkingSpot{}, fmt.Errorf("account %d already owns a spot: %w", spot.OwnedAccountID, domain.ErrConflict)
		}
		return domain.ParkingSpot{}, fmt.Errorf("failed to create parking spot: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *parkingSpotRepository) Update(ctx context.Context, spot domain.ParkingSpot) (domain.ParkingSpot, error) {
	by, at := auth.Auditor(ctx), r.now()

	tag, err := r.pool.Exec(ctx,
		`UPDATE parking_spot
		 SET name = $1, is_free = $2, owned_account_id = $3, version = version + 1, modified_by = $4, modified_at = $5
		 WHERE id = $6 AND version = $7`,
		spot.Name, spot.IsFree, spot.OwnedAccountID, by, at, spot.ID, spot.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ParkingSpot{}, fmt.Errorf("account %d already owns a spot: %w", spot.OwnedAccountID, domain.ErrConflict)
		}
		return domain.ParkingSpot{}, fmt.Errorf("failed to update parking spot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a vanished row from a concurrent write.
		if _, err := r.GetByID(ctx, spot.ID); err != nil {
			return domain.ParkingSpot{}, err
		}
		return domain.ParkingSpot{}, fmt.Errorf("parking spot %d was modified concurrently: %w", spot.ID, domain.ErrConflict)
	}

	return r.GetByID(ctx, spot.ID)
}

func (r *parkingSpotRepository) GetByID(ctx context.Context, id int64) (domain.ParkingSpot, error) {
	row := r.pool.QueryRow(ctx, selectSpot+" WHERE ps.id = $1", id)
	return scanSpot(row)
}

func (r *parkingSpotRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM parking_spot WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete parking spot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *parkingSpotRepository) FindByCriteria(ctx context.Context, c domain.ParkingSpotCriteria) ([]domain.ParkingSpot, error) {
	query := selectSpot
	where, args := spotPredicate(c).SQL(1)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY ps.id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find parking spots: %w", err)
	}
	defer rows.Close()

	return collectSpots(rows)
}

func (r *parkingSpotRepository) FindPage(ctx context.Context, c domain.ParkingSpotCriteria, page domain.PageRequest) (domain.Page[domain.ParkingSpot], error) {
	orderBy, err := spotOrderBy(page.Sort)
	if err != nil {
		return domain.Page[domain.ParkingSpot]{}, err
	}

	query := selectSpotPaged
	where, args := spotPredicate(c).SQL(1)
	if where != "" {
		query += " WHERE " + where
	}
	limit, offset := page.Limit(), page.Offset()
	query += " ORDER BY " + orderBy
	query += " LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return domain.Page[domain.ParkingSpot]{}, fmt.Errorf("failed to find parking spot page: %w", err)
	}
	defer rows.Close()

	var spots []domain.ParkingSpot
	var total int64
	for rows.Next() {
		var spot domain.ParkingSpot
		if err := rows.Scan(
			&spot.ID, &spot.Name, &spot.IsFree, &spot.OwnedAccountID, &spot.OwnedAccountLogin, &spot.Version,
			&spot.Audit.CreatedBy, &spot.Audit.CreatedAt, &spot.Audit.ModifiedBy, &spot.Audit.ModifiedAt,
			&total,
		); err != nil {
			return domain.Page[domain.ParkingSpot]{}, fmt.Errorf("failed to scan parking spot: %w", err)
		}
		spots = append(spots, spot)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.ParkingSpot]{}, fmt.Errorf("failed to read parking spot page: %w", err)
	}

	// The window was empty; the count still has to reflect the predicate.
	if len(spots) == 0 {
		total, err = r.CountByCriteria(ctx, c)
		if err != nil {
			return domain.Page[domain.ParkingSpot]{}, err
		}
	}

	return domain.Page[domain.ParkingSpot]{
		Content:    spots,
		TotalCount: total,
		Number:     page.Page,
		Size:       limit,
	}, nil
}

func (r *parkingSpotRepository) CountByCriteria(ctx context.Context, c domain.ParkingSpotCriteria) (int64, error) {
	query := "SELECT COUNT(*) FROM parking_spot ps JOIN account a ON a.id = ps.owned_account_id"
	where, args := spotPredicate(c).SQL(1)
	if where != "" {
		query += " WHERE " + where
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count parking spots: %w", err)
	}
	return count, nil
}

func (r *parkingSpotRepository) FindByOwnerLogin(ctx context.Context, login string) (domain.ParkingSpot, error) {
	row := r.pool.QueryRow(ctx, selectSpot+" WHERE a.login = $1", login)
	return scanSpot(row)
}

func spotOrderBy(sort []domain.SortOrder) (string, error) {
	if len(sort) == 0 {
		return "ps.id", nil
	}
	clauses := make([]string, 0, len(sort))
	for _, order := range sort {
		column, ok := spotSortColumns[order.Field]
		if !ok {
			return "", domain.ValidationError{Field: "sort", Message: fmt.Sprintf("cannot sort by %q", order.Field)}
		}
		if order.Direction == domain.SortDirectionDesc {
			column += " DESC"
		}
		clauses = append(clauses, column)
	}
	return strings.Join(clauses, ", "), nil
}

func scanSpot(row pgx.Row) (domain.ParkingSpot, error) {
	var spot domain.ParkingSpot
	err := row.Scan(
		&spot.ID, &spot.Name, &spot.IsFree, &spot.OwnedAccountID, &spot.OwnedAccountLogin, &spot.Version,
		&spot.Audit.CreatedBy, &spot.Audit.CreatedAt, &spot.Audit.ModifiedBy, &spot.Audit.ModifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ParkingSpot{}, domain.ErrNotFound
		}
		return domain.ParkingSpot{}, fmt.Errorf("failed to scan parking spot: %w", err)
	}
	return spot, nil
}

func collectSpots(rows pgx.Rows) ([]domain.ParkingSpot, error) {
	var spots []domain.ParkingSpot
	for rows.Next() {
		var spot domain.ParkingSpot
		if err := rows.Scan(
			&spot.ID, &spot.Name, &spot.IsFree, &spot.OwnedAccountID, &spot.OwnedAccountLogin, &spot.Version,
			&spot.Audit.CreatedBy, &spot.Audit.CreatedAt, &spot.Audit.ModifiedBy, &spot.Audit.ModifiedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan parking spot: %w", err)
		}
		spots = append(spots, spot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read parking spots: %w", err)
	}
	return spots, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
