package spots

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/auth"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
)

func testMux(repo *fakeSpotRepository) *http.ServeMux {
	mux := http.NewServeMux()
	NewHTTPHandler(NewService(repo), NewQueryService(repo)).Register(mux)
	return mux
}

func doAs(mux *http.ServeMux, login string, authorities []string, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if login != "" {
		r = r.WithContext(auth.ContextWithPrincipal(r.Context(), auth.Principal{Login: login, Authorities: authorities}))
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func TestCreateEndpoint(t *testing.T) {
	mux := testMux(newFakeSpotRepository())

	w := doAs(mux, "alice", []string{domain.RoleUser}, "POST", "/api/parking-spots",
		`{"name":"A-1","ownedAccountId":1}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/api/parking-spots/1" {
		t.Fatalf("unexpected location %q", loc)
	}

	var dto DTO
	if err := json.Unmarshal(w.Body.Bytes(), &dto); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if dto.ID != 1 || dto.Name != "A-1" {
		t.Fatalf("unexpected response: %+v", dto)
	}
}

func TestCreateEndpointRejectsProvidedID(t *testing.T) {
	mux := testMux(newFakeSpotRepository())

	w := doAs(mux, "alice", []string{domain.RoleUser}, "POST", "/api/parking-spots",
		`{"id":9,"name":"A-1","ownedAccountId":1}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestCreateEndpointValidationFailure(t *testing.T) {
	mux := testMux(newFakeSpotRepository())

	w := doAs(mux, "alice", []string{domain.RoleUser}, "POST", "/api/parking-spots", `{"name":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "fieldErrors") {
		t.Fatalf("expected field errors in body, got %s", w.Body.String())
	}
}

func TestListEndpointFiltersAndPaginates(t *testing.T) {
	repo := newFakeSpotRepository()
	seedPool(t, repo)
	mux := testMux(repo)

	w := doAs(mux, "alice", []string{domain.RoleUser}, "GET", "/api/parking-spots?isFree.equals=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("X-Total-Count"); got != "2" {
		t.Fatalf("expected total count 2, got %q", got)
	}

	var dtos []DTO
	if err := json.Unmarshal(w.Body.Bytes(), &dtos); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("expected 2 spots, got %d", len(dtos))
	}
}

func TestListEndpointRejectsUnknownFilterField(t *testing.T) {
	repo := newFakeSpotRepository()
	seedPool(t, repo)
	mux := testMux(repo)

	w := doAs(mux, "alice", []string{domain.RoleUser}, "GET", "/api/parking-spots?colour.equals=red", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "colour") {
		t.Fatalf("the offending field must be named, got %s", w.Body.String())
	}
}

func TestCountEndpoint(t *testing.T) {
	repo := newFakeSpotRepository()
	seedPool(t, repo)
	mux := testMux(repo)

	w := doAs(mux, "gate-1", []string{domain.RoleGate}, "GET", "/api/parking-spots/count?isFree.equals=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "2" {
		t.Fatalf("expected count 2, got %q", got)
	}
}

func TestGetEndpointUnknownSpot(t *testing.T) {
	mux := testMux(newFakeSpotRepository())

	w := doAs(mux, "alice", []string{domain.RoleUser}, "GET", "/api/parking-spots/42", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetEndpointRejectsNonNumericID(t *testing.T) {
	mux := testMux(newFakeSpotRepository())

	w := doAs(mux, "alice", []string{domain.RoleUser}, "GET", "/api/parking-spots/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestEndpointsRequireAuthentication(t *testing.T) {
	repo := newFakeSpotRepository()
	seedPool(t, repo)
	mux := testMux(repo)

	w := doAs(mux, "", nil, "GET", "/api/parking-spots", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an anonymous list, got %d", w.Code)
	}
}

func TestFreeUpEndpointRequiresSpotRole(t *testing.T) {
	repo := newFakeSpotRepository()
	seedSpot(t, repo, domain.ParkingSpot{Name: "A-1", OwnedAccountID: 1, OwnedAccountLogin: "alice"})
	mux := testMux(repo)

	w := doAs(mux, "alice", []string{domain.RoleUser}, "POST", "/api/parking-spots/free-up", "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without the spot role, got %d", w.Code)
	}
}

func TestFreeUpAndHoldEndpoints(t *testing.T) {
	repo := newFakeSpotRepository()
	seeded := seedSpot(t, repo, domain.ParkingSpot{Name: "A-1", OwnedAccountID: 1, OwnedAccountLogin: "alice"})
	mux := testMux(repo)

	w := doAs(mux, "alice", []string{domain.RoleParkingSpot}, "POST", "/api/parking-spots/free-up", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !repo.spots[seeded.ID].IsFree {
		t.Fatalf("expected the spot to be free")
	}

	w = doAs(mux, "alice", []string{domain.RoleParkingSpot}, "POST", "/api/parking-spots/hold", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if repo.spots[seeded.ID].IsFree {
		t.Fatalf("expected the spot to be held")
	}
}

func TestDeleteEndpoint(t *testing.T) {
	repo := newFakeSpotRepository()
	seeded := seedSpot(t, repo, domain.ParkingSpot{Name: "A-1", OwnedAccountID: 1, OwnedAccountLogin: "alice"})
	mux := testMux(repo)

	w := doAs(mux, "alice", []string{domain.RoleUser}, "DELETE", "/api/parking-spots/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if _, ok := repo.spots[seeded.ID]; ok {
		t.Fatalf("expected the spot to be gone")
	}

	w = doAs(mux, "alice", []string{domain.RoleUser}, "DELETE", "/api/parking-spots/1", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("deleting an absent spot reports 404, got %d", w.Code)
	}
}
