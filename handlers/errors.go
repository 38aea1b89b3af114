// Package handlers wires the quote engine and persistence into the HTTP API.
package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// apiError writes a JSON error envelope with the given status code.
// Internal causes are logged at the call site; the message here is what the
// client sees.
func apiError(e *core.RequestEvent, statusCode int, message string) error {
	return e.JSON(statusCode, map[string]string{"error": message})
}

// validationError writes a 400 with per-field messages so the client can
// mark the offending inputs.
func validationError(e *core.RequestEvent, fields map[string]string) error {
	return e.JSON(http.StatusBadRequest, map[string]any{
		"error":  "Please fix the errors below",
		"fields": fields,
	})
}
