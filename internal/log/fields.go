// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID     = "request_id"
	FieldCorrelationID = "correlation_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Matrix fields
	FieldShape    = "shape"
	FieldSource   = "source"
	FieldLang     = "lang"
	FieldAxis1    = "axis1"
	FieldAxis2    = "axis2"
	FieldModule   = "module"
	FieldEntries  = "entries"
	FieldWarnings = "warnings"

	// Path / URL fields
	FieldPath    = "path"
	FieldBaseURL = "base_url"
	FieldMethod  = "method"
	FieldStatus  = "status"
)
