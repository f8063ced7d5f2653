package spots

import (
	"context"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/repository"
)

// QueryService executes criteria queries for parking spots. The criteria's
// filters all apply at once; the repository translates them into a single
// conjunctive predicate evaluated by the store.
type QueryService struct {
	spots repository.ParkingSpotRepository
}

// NewQueryService creates the parking spot query service.
func NewQueryService(spots repository.ParkingSpotRepository) *QueryService {
	return &QueryService{spots: spots}
}

// FindByCriteria returns every spot matching the criteria.
func (s *QueryService) FindByCriteria(ctx context.Context, c domain.ParkingSpotCriteria) ([]DTO, error) {
	spots, err := s.spots.FindByCriteria(ctx, c)
	if err != nil {
		return nil, err
	}
	return toDTOs(spots), nil
}

// FindPageByCriteria returns one window of the matching spots together with
// the total count the same predicate produced in the same statement.
func (s *QueryService) FindPageByCriteria(ctx context.Context, c domain.ParkingSpotCriteria, page domain.PageRequest) (domain.Page[DTO], error) {
	result, err := s.spots.FindPage(ctx, c, page)
	if err != nil {
		return domain.Page[DTO]{}, err
	}
	return domain.Page[DTO]{
		Content:    toDTOs(result.Content),
		TotalCount: result.TotalCount,
		Number:     result.Number,
		Size:       result.Size,
	}, nil
}

// CountByCriteria returns how many spots match the criteria.
func (s *QueryService) CountByCriteria(ctx context.Context, c domain.ParkingSpotCriteria) (int64, error) {
	return s.spots.CountByCriteria(ctx, c)
}
