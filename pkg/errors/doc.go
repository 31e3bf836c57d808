// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnavailable,
//	    "failed to call automation engine",
//	    cause,
//	    map[string]any{
//	        "function": "sap_control.parameter_value",
//	        "target":   minion,
//	    },
//	)
//
// CodeOf extracts the code from any wrapped error chain, which lets the HTTP
// server translate collection failures into status codes.
package errors
