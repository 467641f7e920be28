package server

import (
	"github.com/rezonia/xmlconv/internal/converter"
	"github.com/rezonia/xmlconv/internal/validate"
	"github.com/rezonia/xmlconv/internal/value"
)

// ExtractResponse is the response for the extract endpoint
type ExtractResponse struct {
	Document *value.Map `json:"document"`
	Summary  *value.Map `json:"summary,omitempty"`
}

// ValidationResponse is the response for the validate endpoint
type ValidationResponse struct {
	validate.NFeReport
	Errors []string `json:"errors,omitempty"`
}

// InfoResponse is the response for the info endpoint
type InfoResponse struct {
	validate.StructureReport
	Size int `json:"size"`
}

// StatsResponse is the response for the stats endpoint
type StatsResponse struct {
	Converter converter.Stats `json:"converter"`
	Extracted int64           `json:"extracted"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
