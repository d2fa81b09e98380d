// Package response writes OData JSON collection and error payloads.
package response

import (
	"encoding/json"
	"net/http"
)

const (
	ODataVersionValue  = "4.01"
	HeaderODataVersion = "OData-Version"

	contentTypeJSON = "application/json;odata.metadata=minimal"
)

// SetODataVersionHeader sets the OData-Version header with the correct capitalization.
func SetODataVersionHeader(w http.ResponseWriter) {
	w.Header()[HeaderODataVersion] = []string{ODataVersionValue}
}

// ODataErrorDetail represents an additional error detail in an OData error response.
type ODataErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Target  string `json:"target,omitempty"`
	Message string `json:"message"`
}

// ODataError represents the OData v4 compliant error structure.
type ODataError struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Target  string             `json:"target,omitempty"`
	Details []ODataErrorDetail `json:"details,omitempty"`
}

// WriteError writes an OData error naming the query option that failed.
// target may be empty when no single option is at fault.
func WriteError(w http.ResponseWriter, status int, code, message, target string) error {
	return WriteODataError(w, status, &ODataError{
		Code:    code,
		Message: message,
		Target:  target,
	})
}

// WriteODataError writes an OData v4 compliant error response with full error structure.
func WriteODataError(w http.ResponseWriter, httpStatusCode int, odataError *ODataError) error {
	errorResponse := map[string]interface{}{
		"error": odataError,
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	SetODataVersionHeader(w)
	w.WriteHeader(httpStatusCode)

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(errorResponse)
}
