package pagination

import (
	"errors"
	"math"
	"net/http/httptest"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		wantOffset int
		wantPages  int
	}{
		{"first page", 1, 10, 25, 0, 3},
		{"middle page", 2, 10, 25, 10, 3},
		{"last partial page", 3, 10, 25, 20, 3},
		{"exact boundary", 3, 10, 20, 20, 2},
		{"one past exact boundary", 3, 10, 21, 20, 3},
		{"page past the end", 5, 10, 25, 40, 3},
		{"empty set", 1, 10, 0, 0, 0},
		{"single record", 1, 10, 1, 0, 1},
		{"limit one", 7, 1, 7, 6, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{Page: tt.page, Limit: tt.limit}
			if offset := p.Offset(); offset != tt.wantOffset {
				t.Errorf("offset: got %d, want %d", offset, tt.wantOffset)
			}
			meta := Resolve(p, tt.total)
			if meta.TotalPages != tt.wantPages {
				t.Errorf("totalPages: got %d, want %d", meta.TotalPages, tt.wantPages)
			}
			if meta.Total != tt.total || meta.Page != tt.page || meta.Limit != tt.limit {
				t.Errorf("meta echo mismatch: %+v", meta)
			}
		})
	}
}

// A page large enough to overflow page*limit must still behave like any other
// page past the end: a non-negative offset beyond the result set, never a
// wrapped negative value that a database would misread.
func TestOffsetSaturatesOnOverflow(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
	}{
		{"overflowing product", math.MaxInt/10 + 2, 10},
		{"max page max limit", math.MaxInt, MaxLimit},
		{"max page limit one", math.MaxInt, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{Page: tt.page, Limit: tt.limit}
			offset := p.Offset()
			if offset < 0 {
				t.Fatalf("offset wrapped negative: %d", offset)
			}
			if total := int64(25); int64(offset) <= total {
				t.Errorf("offset %d should land past the %d-record set", offset, total)
			}
			meta := Resolve(p, 25)
			if meta.Page != tt.page || meta.TotalPages != 3 {
				t.Errorf("meta: %+v", meta)
			}
		})
	}
}

func TestOffsetLargestExactProduct(t *testing.T) {
	// The largest page whose product still fits must not be clamped.
	p := Params{Page: math.MaxInt / 10, Limit: 10}
	want := (math.MaxInt/10 - 1) * 10
	if got := p.Offset(); got != want {
		t.Errorf("offset: got %d, want %d", got, want)
	}
}

func TestParamsFromRequestDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/users", nil)

	p, err := ParamsFromRequest(r)
	if err != nil {
		t.Fatalf("ParamsFromRequest: %v", err)
	}
	if p.Page != DefaultPage || p.Limit != DefaultLimit {
		t.Errorf("defaults: got %+v", p)
	}
}

func TestParamsFromRequestExplicit(t *testing.T) {
	r := httptest.NewRequest("GET", "/users?page=3&limit=50", nil)

	p, err := ParamsFromRequest(r)
	if err != nil {
		t.Fatalf("ParamsFromRequest: %v", err)
	}
	if p.Page != 3 || p.Limit != 50 {
		t.Errorf("got %+v, want page=3 limit=50", p)
	}
}

func TestParamsFromRequestMalformed(t *testing.T) {
	for _, query := range []string{
		"page=0",
		"page=-1",
		"page=abc",
		"limit=0",
		"limit=101",
		"limit=xyz",
	} {
		r := httptest.NewRequest("GET", "/users?"+query, nil)
		if _, err := ParamsFromRequest(r); !errors.Is(err, ErrInvalidParams) {
			t.Errorf("query %q: expected ErrInvalidParams, got %v", query, err)
		}
	}
}
