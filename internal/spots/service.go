// Package spots implements the parking spot feature: CRUD management,
// criteria queries and the ownership-scoped free/hold state toggle.
package spots

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/auth"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/repository"
)

// Service implements the write-side operations on parking spots.
type Service struct {
	spots repository.ParkingSpotRepository
}

// NewService creates the parking spot application service.
func NewService(spots repository.ParkingSpotRepository) *Service {
	return &Service{spots: spots}
}

// Create validates and persists a new spot. The store assigns the id; a
// caller-supplied one is rejected rather than coerced into an update.
func (s *Service) Create(ctx context.Context, dto DTO) (DTO, error) {
	if dto.ID != 0 {
		return DTO{}, fmt.Errorf("a new parking spot cannot already have an id: %w", domain.ErrConflict)
	}
	spot := domain.ParkingSpot{
		Name:           dto.Name,
		IsFree:         dto.IsFree,
		OwnedAccountID: dto.OwnedAccountID,
	}
	if err := spot.Validate(); err != nil {
		return DTO{}, err
	}
	created, err := s.spots.Create(ctx, spot)
	if err != nil {
		return DTO{}, err
	}
	return toDTO(created), nil
}

// Update replaces a spot's attributes. The current stored version backs the
// optimistic write; a concurrent modification surfaces as a conflict.
func (s *Service) Update(ctx context.Context, dto DTO) (DTO, error) {
	if dto.ID == 0 {
		return DTO{}, domain.ValidationError{Field: "id", Message: "is required"}
	}
	current, err := s.spots.GetByID(ctx, dto.ID)
	if err != nil {
		return DTO{}, err
	}
	current.Name = dto.Name
	current.IsFree = dto.IsFree
	current.OwnedAccountID = dto.OwnedAccountID
	if err := current.Validate(); err != nil {
		return DTO{}, err
	}
	updated, err := s.spots.Update(ctx, current)
	if err != nil {
		return DTO{}, err
	}
	return toDTO(updated), nil
}

// FindOne returns the spot with the given id.
func (s *Service) FindOne(ctx context.Context, id int64) (DTO, error) {
	spot, err := s.spots.GetByID(ctx, id)
	if err != nil {
		return DTO{}, err
	}
	return toDTO(spot), nil
}

// Delete removes the spot with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.spots.Delete(ctx, id)
}

// FreeUpOwnSpot moves the acting principal's spot to the free state. The
// spot is resolved through the ownership relation, never a caller-supplied
// id; an anonymous caller or a principal owning no spot is a silent no-op.
func (s *Service) FreeUpOwnSpot(ctx context.Context) error {
	return s.toggleOwnSpot(ctx, domain.ParkingSpot.FreeUp)
}

// HoldOwnSpot moves the acting principal's spot to the held state. Same
// scoping and no-op rules as FreeUpOwnSpot.
func (s *Service) HoldOwnSpot(ctx context.Context) error {
	return s.toggleOwnSpot(ctx, domain.ParkingSpot.Hold)
}

func (s *Service) toggleOwnSpot(ctx context.Context, transition func(domain.ParkingSpot) domain.ParkingSpot) error {
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return nil
	}
	spot, err := s.spots.FindByOwnerLogin(ctx, principal.Login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Owning no spot means there is nothing to do, not a failure.
			log.Printf("[SPOTS] %s owns no parking spot, nothing to toggle", principal.Login)
			return nil
		}
		return err
	}
	if _, err := s.spots.Update(ctx, transition(spot)); err != nil {
		return err
	}
	return nil
}
