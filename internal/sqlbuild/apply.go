package sqlbuild

import (
	"fmt"
	"math"

	"github.com/nlstn/go-odata-query/internal/expr"
	"github.com/nlstn/go-odata-query/internal/query"
	"gorm.io/gorm"
)

// Apply adds WHERE, ORDER BY, column selection, LIMIT and OFFSET clauses to db.
// A nil st leaves db untouched.
func Apply(db *gorm.DB, st *query.QueryOptions) (*gorm.DB, error) {
	if st == nil {
		return db, nil
	}

	if st.Filter != nil {
		where, args, err := Render(st.Filter)
		if err != nil {
			return nil, fmt.Errorf("render filter: %w", err)
		}
		db = db.Where(where, args...)
	}

	if len(st.OrderBy) > 0 {
		order, err := RenderOrderBy(st.OrderBy)
		if err != nil {
			return nil, fmt.Errorf("render orderby: %w", err)
		}
		db = db.Order(order)
	}

	if len(st.Select) > 0 {
		db = db.Select(st.Select)
	}

	return applyPage(db, st.Page)
}

func applyPage(db *gorm.DB, page *expr.Node) (*gorm.DB, error) {
	params, err := query.TopSkipFromNode(page)
	if err != nil {
		return nil, fmt.Errorf("render pagination: %w", err)
	}
	if params.Top != nil {
		db = db.Limit(clampInt(*params.Top))
	}
	if params.Skip != nil {
		db = db.Offset(clampInt(*params.Skip))
	}
	return db, nil
}

func clampInt(v int64) int {
	if v > math.MaxInt {
		return math.MaxInt
	}
	return int(v)
}
