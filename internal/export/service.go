// Package export renders criteria-filtered parking spots into an XLSX
// workbook for download.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/repository"
)

const sheetName = "Parking Spots"

var headerRow = []any{
	"ID", "Name", "Free", "Owner Account ID", "Owner Login",
	"Created By", "Created Date", "Last Modified By", "Last Modified Date",
}

// Service produces spot export workbooks.
type Service struct {
	spots repository.ParkingSpotRepository
}

// NewService creates the export service.
func NewService(spots repository.ParkingSpotRepository) *Service {
	return &Service{spots: spots}
}

// WriteWorkbook streams an XLSX workbook with every spot matching the
// criteria, one row per spot, ordered by id.
func (s *Service) WriteWorkbook(ctx context.Context, c domain.ParkingSpotCriteria, w io.Writer) error {
	matched, err := s.spots.FindByCriteria(ctx, c)
	if err != nil {
		return fmt.Errorf("list spots for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("name export sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	for i, spot := range matched {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("resolve row cell: %w", err)
		}
		row := []any{
			spot.ID,
			spot.Name,
			spot.IsFree,
			spot.OwnedAccountID,
			spot.OwnedAccountLogin,
			spot.Audit.CreatedBy,
			formatTime(spot.Audit.CreatedAt),
			spot.Audit.ModifiedBy,
			formatTime(spot.Audit.ModifiedAt),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write spot row %d: %w", spot.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
