package response

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// WriteCollection writes an OData collection response. A nil data value is
// written as an empty array; an empty nextLink is omitted.
func WriteCollection(w http.ResponseWriter, r *http.Request, entitySetName string, data interface{}, nextLink string) error {
	if data == nil {
		data = []interface{}{}
	}

	response := map[string]interface{}{
		"@odata.context": BuildBaseURL(r) + "/$metadata#" + entitySetName,
		"value":          data,
	}
	if nextLink != "" {
		response["@odata.nextLink"] = nextLink
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	SetODataVersionHeader(w)
	w.WriteHeader(http.StatusOK)

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(response)
}

// BuildBaseURL builds the base URL of the service from the request.
func BuildBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	host := r.Host
	if host == "" {
		host = "localhost:8080"
	}

	var b strings.Builder
	b.Grow(len(scheme) + 3 + len(host))
	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(host)
	return b.String()
}

// BuildNextLink builds the next link URL for pagination using $skip
func BuildNextLink(r *http.Request, skipValue int64) string {
	nextURL := *r.URL
	query := nextURL.Query()
	query.Set("$skip", strconv.FormatInt(skipValue, 10))
	nextURL.RawQuery = query.Encode()

	return BuildBaseURL(r) + nextURL.Path + "?" + nextURL.RawQuery
}
