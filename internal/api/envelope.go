package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is bumped when the envelope structure changes shape.
const envelopeVersion = 1

// Envelope is the JSON wrapper around every API response body. Clients
// check Success before touching Data.
type Envelope struct {
	V       int       `json:"v" doc:"Envelope format version"`
	Success bool      `json:"success" doc:"Whether the request succeeded"`
	Data    any       `json:"data,omitempty" doc:"Response payload"`
	Error   *APIError `json:"error,omitempty" doc:"Error details when success is false"`
}

// EnvelopeTransformer wraps every response body in the standard envelope.
// Registered as a huma transformer so handlers return bare DTOs.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	switch body := v.(type) {
	case nil:
		return Envelope{V: envelopeVersion, Success: true}, nil
	case Envelope:
		// Already wrapped.
		return body, nil
	case *APIError:
		return Envelope{V: envelopeVersion, Success: false, Error: body}, nil
	default:
		return Envelope{V: envelopeVersion, Success: true, Data: v}, nil
	}
}
