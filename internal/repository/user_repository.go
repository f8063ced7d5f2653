package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/auth"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
)

const selectUser = `SELECT a.id, a.login, a.password_hash, a.first_name, a.last_name, a.email,
       a.activated, a.lang_key, a.image_url, a.activation_key, a.reset_key, a.reset_date,
       COALESCE(array_agg(aa.authority_name) FILTER (WHERE aa.authority_name IS NOT NULL), '{}'),
       a.created_by, a.created_at, a.modified_by, a.modified_at
FROM account a
LEFT JOIN account_authority aa ON aa.account_id = a.id`

const groupUser = " GROUP BY a.id"

// userRepository implements UserRepository against Postgres.
type userRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewUserRepository creates a new user repository.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool, now: time.Now}
}

func (r *userRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	by, at := auth.Auditor(ctx), r.now()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO account (login, password_hash, first_name, last_name, email, activated,
		                      lang_key, image_url, activation_key, reset_key, reset_date,
		                      created_by, created_at, modified_by, modified_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $12, $13)
		 RETURNING id`,
		user.Login, user.PasswordHash, nullable(user.FirstName), nullable(user.LastName),
		nullable(user.Email), user.Activated, nullable(user.LangKey), nullable(user.ImageURL),
		nullable(user.ActivationKey), nullable(user.ResetKey), user.ResetDate, by, at,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("login or email already in use: %w", domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("failed to create account: %w", err)
	}

	if err := replaceAuthorities(ctx, tx, id, user.Authorities); err != nil {
		return domain.User{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.User{}, fmt.Errorf("failed to commit account creation: %w", err)
	}

	return r.getBy(ctx, "a.id = $1", id)
}

func (r *userRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	by, at := auth.Auditor(ctx), r.now()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE account
		 SET login = $1, password_hash = $2, first_name = $3, last_name = $4, email = $5,
		     activated = $6, lang_key = $7, image_url = $8, activation_key = $9,
		     reset_key = $10, reset_date = $11, modified_by = $12, modified_at = $13
		 WHERE id = $14`,
		user.Login, user.PasswordHash, nullable(user.FirstName), nullable(user.LastName),
		nullable(user.Email), user.Activated, nullable(user.LangKey), nullable(user.ImageURL),
		nullable(user.ActivationKey), nullable(user.ResetKey), user.ResetDate, by, at, user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("login or email already in use: %w", domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.User{}, domain.ErrNotFound
	}

	if err := replaceAuthorities(ctx, tx, user.ID, user.Authorities); err != nil {
		return domain.User{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.User{}, fmt.Errorf("failed to commit account update: %w", err)
	}

	return r.getBy(ctx, "a.id = $1", user.ID)
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	return r.getBy(ctx, "a.login = $1", login)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getBy(ctx, "a.email = $1", email)
}

func (r *userRepository) GetByActivationKey(ctx context.Context, key string) (domain.User, error) {
	return r.getBy(ctx, "a.activation_key = $1", key)
}

func (r *userRepository) GetByResetKey(ctx context.Context, key string) (domain.User, error) {
	return r.getBy(ctx, "a.reset_key = $1", key)
}

func (r *userRepository) getBy(ctx context.Context, where string, arg any) (domain.User, error) {
	row := r.pool.QueryRow(ctx, selectUser+" WHERE "+where+groupUser, arg)

	var user domain.User
	var firstName, lastName, email, langKey, imageURL, activationKey, resetKey *string
	err := row.Scan(
		&user.ID, &user.Login, &user.PasswordHash, &firstName, &lastName, &email,
		&user.Activated, &langKey, &imageURL, &activationKey, &resetKey, &user.ResetDate,
		&user.Authorities,
		&user.Audit.CreatedBy, &user.Audit.CreatedAt, &user.Audit.ModifiedBy, &user.Audit.ModifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("failed to scan account: %w", err)
	}
	user.FirstName = deref(firstName)
	user.LastName = deref(lastName)
	user.Email = deref(email)
	user.LangKey = deref(langKey)
	user.ImageURL = deref(imageURL)
	user.ActivationKey = deref(activationKey)
	user.ResetKey = deref(resetKey)
	return user, nil
}

func replaceAuthorities(ctx context.Context, tx pgx.Tx, accountID int64, authorities []string) error {
	if _, err := tx.Exec(ctx, "DELETE FROM account_authority WHERE account_id = $1", accountID); err != nil {
		return fmt.Errorf("failed to clear authorities: %w", err)
	}
	for _, authority := range authorities {
		if _, err := tx.Exec(ctx,
			"INSERT INTO account_authority (account_id, authority_name) VALUES ($1, $2)",
			accountID, authority,
		); err != nil {
			return fmt.Errorf("failed to grant authority %s: %w", authority, err)
		}
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
