package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	odataquery "github.com/nlstn/go-odata-query"
	"github.com/nlstn/go-odata-query/internal/observability"
	"github.com/nlstn/go-odata-query/internal/response"
	"github.com/nlstn/go-odata-query/internal/sqlbuild"
	"gorm.io/gorm"
)

const productsEntitySet = "Products"

// productsHandler serves the product collection with query options applied.
type productsHandler struct {
	db      *gorm.DB
	parser  *odataquery.Parser
	logger  *slog.Logger
	columns map[string]struct{}
}

func newProductsHandler(db *gorm.DB, parser *odataquery.Parser, logger *slog.Logger) *productsHandler {
	columns := make(map[string]struct{}, len(productColumns))
	for _, column := range productColumns {
		columns[column] = struct{}{}
	}
	return &productsHandler{db: db, parser: parser, logger: logger, columns: columns}
}

func (h *productsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		h.writeError(w, r, http.StatusMethodNotAllowed, "MethodNotAllowed",
			fmt.Sprintf("method %s is not allowed on %s", r.Method, productsEntitySet), "")
		return
	}

	q, err := h.parser.Parse(r.Context(), r.URL.Query())
	if err != nil {
		h.writeError(w, r, odataquery.StatusCode(err), string(odataquery.Code(err)), err.Error(), errorTarget(err))
		return
	}

	if err := h.resolveSelect(q); err != nil {
		h.writeError(w, r, http.StatusBadRequest, string(odataquery.ErrorCodeInvalidFieldName), err.Error(), "$select")
		return
	}
	if err := h.checkColumns(q); err != nil {
		h.writeError(w, r, http.StatusBadRequest, string(odataquery.ErrorCodeInvalidFieldName), err.Error(), "")
		return
	}

	timing := observability.StartServerTimingWithDesc(r.Context(), "db", "product query")
	tx, err := sqlbuild.Apply(h.db.WithContext(r.Context()).Model(&Product{}), q)
	if err != nil {
		timing.Stop()
		h.writeError(w, r, http.StatusInternalServerError, string(odataquery.ErrorCodeGeneral), err.Error(), "")
		return
	}

	var products []Product
	err = tx.Find(&products).Error
	timing.Stop()
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, string(odataquery.ErrorCodeGeneral), "failed to query products", "")
		observability.LoggerWithTrace(r.Context(), h.logger).Error("product query failed",
			slog.String(observability.LogFieldRequestID, requestIDFromContext(r.Context())),
			slog.String(observability.LogFieldError, err.Error()),
		)
		return
	}

	nextLink, err := nextLinkFor(r, q, len(products))
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, string(odataquery.ErrorCodeGeneral), err.Error(), "")
		return
	}

	if err := response.WriteCollection(w, r, productsEntitySet, products, nextLink); err != nil {
		h.logger.Error("failed to write response", slog.String(observability.LogFieldError, err.Error()))
	}
}

// resolveSelect maps selected property names to columns. Unknown names are rejected.
func (h *productsHandler) resolveSelect(q *odataquery.Query) error {
	for i, name := range q.Select {
		column, ok := productColumns[name]
		if !ok {
			return fmt.Errorf("property '%s' does not exist on %s", name, productsEntitySet)
		}
		q.Select[i] = column
	}
	return nil
}

// checkColumns rejects filters and sort orders over columns the table does not have.
func (h *productsHandler) checkColumns(q *odataquery.Query) error {
	nodes := append([]*odataquery.Node{q.Filter}, q.OrderBy...)
	for _, node := range nodes {
		for _, column := range node.Columns() {
			if _, ok := h.columns[column]; !ok {
				return fmt.Errorf("property '%s' does not exist on %s", column, productsEntitySet)
			}
		}
	}
	return nil
}

func (h *productsHandler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message, target string) {
	observability.LoggerWithTrace(r.Context(), h.logger).Debug("request rejected",
		slog.String(observability.LogFieldRequestID, requestIDFromContext(r.Context())),
		slog.Int("status", status),
		slog.String(observability.LogFieldError, message),
	)
	if err := response.WriteError(w, status, code, message, target); err != nil {
		h.logger.Error("failed to write error response", slog.String(observability.LogFieldError, err.Error()))
	}
}

// errorTarget names the pagination parameter behind err, if any.
func errorTarget(err error) string {
	var pageErr *odataquery.PaginationError
	if errors.As(err, &pageErr) {
		return "$" + pageErr.Param
	}
	return ""
}

// nextLinkFor returns a link to the following page when $top was given and
// the current page is full.
func nextLinkFor(r *http.Request, q *odataquery.Query, returned int) (string, error) {
	page, err := odataquery.TopSkipFromNode(q.Page)
	if err != nil {
		return "", err
	}
	if page.Top == nil || *page.Top == 0 || int64(returned) < *page.Top {
		return "", nil
	}

	var skip int64
	if page.Skip != nil {
		skip = *page.Skip
	}
	return response.BuildNextLink(r, skip+*page.Top), nil
}
