// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Errors fall into three classes when talking to a device:
//
//   - ErrCodeTransport and ErrCodeInvalidEncoding: the command channel failed
//     or returned bytes that are not text. Always surfaced to the caller.
//   - ErrCodeMissingField: the report was received but its defining field was
//     absent, so the output is not the report the parser expects.
//   - Field-level absence is not an error at all and is represented by nil
//     values inside an otherwise valid record.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTransport,
//	    "failed to run shell command",
//	    cause,
//	    map[string]any{
//	        "command": "dumpsys battery",
//	        "serial":  serial,
//	    },
//	)
//
//	if errors.IsCode(err, errors.ErrCodeMissingField) {
//	    // wrong report shape
//	}
package errors
