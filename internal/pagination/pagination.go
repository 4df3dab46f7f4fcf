// Package pagination computes bounded offset/limit values and result
// metadata for list endpoints.
package pagination

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/userhub/userhub/internal/model"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ErrInvalidParams is returned when page or limit are malformed or out of
// their allowed ranges. An out-of-range page past the end of the result set
// is NOT malformed; it legitimately yields an empty page.
var ErrInvalidParams = errors.New("invalid pagination parameters")

// Params are the validated pagination inputs: page >= 1, 1 <= limit <= 100.
type Params struct {
	Page  int
	Limit int
}

// ParamsFromRequest parses and validates the "page" and "limit" query
// parameters, applying defaults for absent values.
func ParamsFromRequest(r *http.Request) (Params, error) {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Params{}, ErrInvalidParams
		}
		p.Page = n
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxLimit {
			return Params{}, ErrInvalidParams
		}
		p.Limit = n
	}
	return p, nil
}

// Offset is the row offset for this page. A page beyond the end of the
// result set is not clamped to it; the offset simply selects an empty slice.
// When the multiplication would overflow int, the offset saturates at
// math.MaxInt, which still lands past any real result set.
func (p Params) Offset() int {
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Resolve computes the response metadata for the given total record count.
// totalPages is ceil(total/limit), 0 for an empty set; a page beyond
// totalPages is echoed back unchanged so the metadata stays accurate.
func Resolve(p Params, total int64) model.PageMeta {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}

	return model.PageMeta{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}
}
