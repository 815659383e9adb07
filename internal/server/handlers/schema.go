package handlers

import (
	"net/http"

	"github.com/printdesk/jobtrack/internal/formschema"
)

// SchemaHandler serves the form field-descriptor list.
type SchemaHandler struct {
	schema *formschema.Schema
}

// NewSchemaHandler creates the handler for an already-loaded schema.
func NewSchemaHandler(schema *formschema.Schema) *SchemaHandler {
	return &SchemaHandler{schema: schema}
}

// Get serves GET /api/schema.
func (h *SchemaHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.schema)
}
