package repository

import (
	"context"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
)

// ParkingSpotRepository defines the store operations for parking spots.
// Lookups return domain.ErrNotFound for absent rows; writes surface
// domain.ErrConflict on unique or version violations.
type ParkingSpotRepository interface {
	Create(ctx context.Context, spot domain.ParkingSpot) (domain.ParkingSpot, error)
	Update(ctx context.Context, spot domain.ParkingSpot) (domain.ParkingSpot, error)
	GetByID(ctx context.Context, id int64) (domain.ParkingSpot, error)
	Delete(ctx context.Context, id int64) error

	FindByCriteria(ctx context.Context, c domain.ParkingSpotCriteria) ([]domain.ParkingSpot, error)
	FindPage(ctx context.Context, c domain.ParkingSpotCriteria, page domain.PageRequest) (domain.Page[domain.ParkingSpot], error)
	CountByCriteria(ctx context.Context, c domain.ParkingSpotCriteria) (int64, error)

	// FindByOwnerLogin resolves the unique spot owned by an account, the
	// lookup behind the ownership-scoped state toggles.
	FindByOwnerLogin(ctx context.Context, login string) (domain.ParkingSpot, error)
}

// UserRepository defines the store operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	GetByLogin(ctx context.Context, login string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByActivationKey(ctx context.Context, key string) (domain.User, error)
	GetByResetKey(ctx context.Context, key string) (domain.User, error)
}
