package logging

import (
	"fmt"
	"log/slog"
)

// Attribute keys shared by every log statement in the server. Keeping
// them here means the instrumentation package, the credential manager,
// and the CLI all emit the same field names.
const (
	KeyTool      = "tool"
	KeyService   = "service"
	KeyOperation = "operation"
	KeyResource  = "resource"
	KeyStatus    = "status"
	KeyError     = "error"
	KeyPath      = "path"
	KeyDuration  = "duration"
	KeyTraceID   = "trace_id"
	KeySpanID    = "span_id"
)

// Tool returns the tool-name attribute.
func Tool(name string) slog.Attr {
	return slog.String(KeyTool, name)
}

// Service returns the Google-service attribute.
func Service(name string) slog.Attr {
	return slog.String(KeyService, name)
}

// Operation returns the operation-type attribute.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Status returns the status attribute.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Path returns a file-path attribute, used when reporting token-cache
// problems.
func Path(path string) slog.Attr {
	return slog.String(KeyPath, path)
}

// Err returns the error attribute. A nil error yields an empty group,
// which slog omits, so Err(maybeNil) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeToken masks a bearer token for logging. Only the length is
// reported; even a token prefix is enough to narrow an attack.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}
