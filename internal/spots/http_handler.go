package spots

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/middleware"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/rest"
)

// Handler exposes the parking spot feature over REST.
type Handler struct {
	service *Service
	query   *QueryService
}

// NewHTTPHandler wraps the services with the REST endpoints.
func NewHTTPHandler(service *Service, query *QueryService) *Handler {
	return &Handler{service: service, query: query}
}

// Register attaches every parking spot route to the mux. Role membership is
// checked here at the boundary; the services below only enforce ownership.
func (h *Handler) Register(mux *http.ServeMux) {
	user := middleware.RequireAuthority(domain.RoleUser)
	mux.Handle("POST /api/parking-spots", user(http.HandlerFunc(h.create)))
	mux.Handle("PUT /api/parking-spots", user(http.HandlerFunc(h.update)))
	mux.Handle("GET /api/parking-spots", user(http.HandlerFunc(h.list)))
	mux.Handle("GET /api/parking-spots/{id}", user(http.HandlerFunc(h.get)))
	mux.Handle("DELETE /api/parking-spots/{id}", user(http.HandlerFunc(h.delete)))

	counter := middleware.RequireAuthority(domain.RoleUser, domain.RoleGate)
	mux.Handle("GET /api/parking-spots/count", counter(http.HandlerFunc(h.count)))

	owner := middleware.RequireAuthority(domain.RoleParkingSpot)
	mux.Handle("POST /api/parking-spots/free-up", owner(http.HandlerFunc(h.freeUp)))
	mux.Handle("POST /api/parking-spots/hold", owner(http.HandlerFunc(h.hold)))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var dto DTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, domain.ValidationError{Field: "body", Message: "invalid JSON payload"})
		return
	}
	created, err := h.service.Create(r.Context(), dto)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/parking-spots/%d", created.ID))
	rest.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var dto DTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, domain.ValidationError{Field: "body", Message: "invalid JSON payload"})
		return
	}
	updated, err := h.service.Update(r.Context(), dto)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	c, err := domain.ParkingSpotCriteriaFromQuery(r.URL.Query())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	page, err := h.query.FindPageByCriteria(r.Context(), c, rest.ParsePageRequest(r.URL.Query()))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WritePaginationHeaders(w, r, page)
	rest.WriteJSON(w, http.StatusOK, page.Content)
}

func (h *Handler) count(w http.ResponseWriter, r *http.Request) {
	c, err := domain.ParkingSpotCriteriaFromQuery(r.URL.Query())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	count, err := h.query.CountByCriteria(r.Context(), c)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, count)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := spotID(w, r)
	if !ok {
		return
	}
	dto, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := spotID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) freeUp(w http.ResponseWriter, r *http.Request) {
	if err := h.service.FreeUpOwnSpot(r.Context()); err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) hold(w http.ResponseWriter, r *http.Request) {
	if err := h.service.HoldOwnSpot(r.Context()); err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func spotID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		rest.WriteError(w, domain.ValidationError{Field: "id", Message: "must be a number"})
		return 0, false
	}
	return id, true
}
