package rest

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
)

// ParsePageRequest reads the reserved pagination parameters. The sort
// parameter may repeat and takes the form field or field,desc.
func ParsePageRequest(values url.Values) domain.PageRequest {
	page := domain.PageRequest{}
	if raw := values.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Page = n
		}
	}
	if raw := values.Get("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Size = n
		}
	}
	for _, raw := range values["sort"] {
		field, dir, _ := strings.Cut(raw, ",")
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		order := domain.SortOrder{Field: field, Direction: domain.SortDirectionAsc}
		if strings.EqualFold(strings.TrimSpace(dir), "desc") {
			order.Direction = domain.SortDirectionDesc
		}
		page.Sort = append(page.Sort, order)
	}
	return page
}

// WritePaginationHeaders sets X-Total-Count plus the RFC 5988 Link header
// with first, prev, next and last relations for the given window.
func WritePaginationHeaders[T any](w http.ResponseWriter, r *http.Request, page domain.Page[T]) {
	w.Header().Set("X-Total-Count", strconv.FormatInt(page.TotalCount, 10))

	totalPages := page.TotalPages()
	var links []string
	link := func(number int, rel string) string {
		query := r.URL.Query()
		query.Set("page", strconv.Itoa(number))
		query.Set("size", strconv.Itoa(page.Size))
		return fmt.Sprintf("<%s?%s>; rel=\"%s\"", r.URL.Path, query.Encode(), rel)
	}
	if page.Number+1 < totalPages {
		links = append(links, link(page.Number+1, "next"))
	}
	if page.Number > 0 {
		links = append(links, link(page.Number-1, "prev"))
	}
	if totalPages > 0 {
		links = append(links, link(totalPages-1, "last"))
	}
	links = append(links, link(0, "first"))
	w.Header().Set("Link", strings.Join(links, ", "))
}
