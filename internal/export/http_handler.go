package export

import (
	"fmt"
	"net/http"
	"time"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/middleware"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/rest"
)

const xlsxMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler exposes the spot export endpoint.
type Handler struct {
	service *Service
	now     func() time.Time
}

// NewHTTPHandler creates the export HTTP handler.
func NewHTTPHandler(service *Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

// Register attaches the export route to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	user := middleware.RequireAuthority(domain.RoleUser)
	mux.Handle("GET /api/parking-spots/export", user(http.HandlerFunc(h.export)))
}

// export accepts the same criteria parameters as the spot list endpoint and
// answers with a workbook attachment.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	c, err := domain.ParkingSpotCriteriaFromQuery(r.URL.Query())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	filename := fmt.Sprintf("parking-spots-%s.xlsx", h.now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", xlsxMimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := h.service.WriteWorkbook(r.Context(), c, w); err != nil {
		// Headers are already out; all that is left is to log and abort.
		rest.LogError(r, err)
	}
}
