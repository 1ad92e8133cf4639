package product

import (
	"strings"
	"testing"
)

func Test_generateQueryAndParams_noFilters(t *testing.T) {
	query, countQuery, params := generateQueryAndParams(
		&GetAllProductsRequestQuery{
			PageOpts: PageOpts{Page: 1, Limit: 20},
		},
	)

	if strings.Contains(query, "WHERE") {
		t.Errorf("expected no WHERE clause, got %q", query)
	}
	if !strings.Contains(query, "ORDER BY created_at DESC") {
		t.Errorf("expected newest-first ordering, got %q", query)
	}
	if !strings.Contains(query, "LIMIT $1 OFFSET $2") {
		t.Errorf("expected pagination placeholders, got %q", query)
	}
	if strings.Contains(countQuery, "LIMIT") {
		t.Errorf("count query must not be paginated, got %q", countQuery)
	}

	if len(params) != 2 {
		t.Fatalf("got %d params, want 2", len(params))
	}
	if params[0] != uint64(20) || params[1] != uint64(0) {
		t.Errorf("got limit/offset %v/%v, want 20/0", params[0], params[1])
	}
}

func Test_generateQueryAndParams_allFilters(t *testing.T) {
	query, countQuery, params := generateQueryAndParams(
		&GetAllProductsRequestQuery{
			FilterOpts: FilterOpts{
				Search:   "mug",
				Category: "kitchen",
				MinPrice: 10,
				MaxPrice: 50,
			},
			PageOpts: PageOpts{Page: 3, Limit: 10},
		},
	)

	for _, clause := range []string{
		"name ILIKE $1",
		"category = $2",
		"price >= $3",
		"price <= $4",
	} {
		if !strings.Contains(query, clause) {
			t.Errorf("expected query to contain %q, got %q", clause, query)
		}
		if !strings.Contains(countQuery, clause) {
			t.Errorf("expected count query to contain %q, got %q", clause, countQuery)
		}
	}

	if !strings.Contains(query, "LIMIT $5 OFFSET $6") {
		t.Errorf("expected pagination after filter params, got %q", query)
	}

	if len(params) != 6 {
		t.Fatalf("got %d params, want 6", len(params))
	}

	// search matches anywhere in the name
	if params[0] != "%mug%" {
		t.Errorf("got search param %v, want %%mug%%", params[0])
	}

	// page 3 with limit 10 skips the first 20 rows
	if params[4] != uint64(10) || params[5] != uint64(20) {
		t.Errorf("got limit/offset %v/%v, want 10/20", params[4], params[5])
	}
}

func Test_generateQueryAndParams_priceZeroIsNotAFilter(t *testing.T) {
	query, _, params := generateQueryAndParams(
		&GetAllProductsRequestQuery{
			FilterOpts: FilterOpts{MinPrice: 0, MaxPrice: 0},
			PageOpts:   PageOpts{Page: 1, Limit: 20},
		},
	)

	if strings.Contains(query, "price") {
		t.Errorf("expected no price clause for zero bounds, got %q", query)
	}
	if len(params) != 2 {
		t.Errorf("got %d params, want 2", len(params))
	}
}
