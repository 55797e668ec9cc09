// Package web holds the response envelope shared by the REST handlers
// and the live report channel, plus small request/response helpers.
package web

import (
	"encoding/json"
	"net/http"
)

// Envelope is the shape every API response and live push uses. Domain
// failures travel in the success flag with HTTP 200; the generic slot
// carries the payload when there is one.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Generic any    `json:"generic,omitempty"`
}

// Respond writes the envelope as JSON with HTTP 200.
func Respond(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(env)
}

// Decode unmarshals the request body into v.
func Decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
