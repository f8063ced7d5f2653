package rest

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
)

func TestParsePageRequest(t *testing.T) {
	values, _ := url.ParseQuery("page=2&size=50&sort=name,desc&sort=id")

	page := ParsePageRequest(values)
	if page.Page != 2 || page.Size != 50 {
		t.Fatalf("unexpected window: %+v", page)
	}
	if len(page.Sort) != 2 {
		t.Fatalf("expected 2 sort orders, got %v", page.Sort)
	}
	if page.Sort[0] != (domain.SortOrder{Field: "name", Direction: domain.SortDirectionDesc}) {
		t.Fatalf("unexpected first sort order: %+v", page.Sort[0])
	}
	if page.Sort[1] != (domain.SortOrder{Field: "id", Direction: domain.SortDirectionAsc}) {
		t.Fatalf("unexpected second sort order: %+v", page.Sort[1])
	}
}

func TestParsePageRequestIgnoresGarbage(t *testing.T) {
	values, _ := url.ParseQuery("page=x&size=-5")

	page := ParsePageRequest(values)
	if page.Page != 0 || page.Size != 0 {
		t.Fatalf("invalid parameters must fall back to defaults, got %+v", page)
	}
}

func TestWritePaginationHeaders(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/parking-spots?isFree.equals=true&page=1&size=2", nil)
	w := httptest.NewRecorder()

	WritePaginationHeaders(w, r, domain.Page[int]{
		Content:    []int{1, 2},
		TotalCount: 7,
		Number:     1,
		Size:       2,
	})

	if got := w.Header().Get("X-Total-Count"); got != "7" {
		t.Fatalf("expected total count 7, got %q", got)
	}
	link := w.Header().Get("Link")
	for _, rel := range []string{`rel="next"`, `rel="prev"`, `rel="last"`, `rel="first"`} {
		if !strings.Contains(link, rel) {
			t.Fatalf("expected %s in link header %q", rel, link)
		}
	}
	if !strings.Contains(link, "isFree.equals=true") {
		t.Fatalf("filter parameters must survive in link targets, got %q", link)
	}
}

func TestWritePaginationHeadersFirstPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/parking-spots?page=0&size=20", nil)
	w := httptest.NewRecorder()

	WritePaginationHeaders(w, r, domain.Page[int]{TotalCount: 5, Number: 0, Size: 20})

	link := w.Header().Get("Link")
	if strings.Contains(link, `rel="next"`) || strings.Contains(link, `rel="prev"`) {
		t.Fatalf("a single window has no neighbours, got %q", link)
	}
	if !strings.Contains(link, `rel="first"`) || !strings.Contains(link, `rel="last"`) {
		t.Fatalf("first and last relations are always present, got %q", link)
	}
}
