package spots

import "github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"

// DTO is the wire representation of a parking spot. Audit metadata stays
// internal; ownership is exposed as the owning account's id and login.
type DTO struct {
	ID                int64  `json:"id,omitempty"`
	Name              string `json:"name"`
	IsFree            bool   `json:"isFree"`
	OwnedAccountID    int64  `json:"ownedAccountId"`
	OwnedAccountLogin string `json:"ownedAccountLogin,omitempty"`
}

func toDTO(spot domain.ParkingSpot) DTO {
	return DTO{
		ID:                spot.ID,
		Name:              spot.Name,
		IsFree:            spot.IsFree,
		OwnedAccountID:    spot.OwnedAccountID,
		OwnedAccountLogin: spot.OwnedAccountLogin,
	}
}

func toDTOs(spots []domain.ParkingSpot) []DTO {
	dtos := make([]DTO, len(spots))
	for i, spot := range spots {
		dtos[i] = toDTO(spot)
	}
	return dtos
}
