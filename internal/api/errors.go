// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in the "error" field of JSON error bodies.
const (
	codeRouteInvalid  = "route_invalid"
	codeMetaMissing   = "meta_missing"
	codeNotFound      = "not_found"
	codeBadRequest    = "bad_request"
	codePolicyFailure = "policy_violation"
)

type errorBody struct {
	Error     string   `json:"error"`
	Detail    string   `json:"detail,omitempty"`
	Problems  []string `json:"problems,omitempty"`
	RequestID string   `json:"requestId,omitempty"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, detail string) {
	writeJSON(w, status, errorBody{
		Error:     code,
		Detail:    detail,
		RequestID: requestID(r),
	})
}
