package sl

import (
	"fmt"
	"log/slog"
)

// Err creates a slog.Attr with the given error.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// ErrType records the concrete type of err, e.g. "*minio.ErrorResponse".
func ErrType(err error) slog.Attr {
	return slog.String("error_type", fmt.Sprintf("%T", err))
}

// Present logs whether a secret is set without logging its value.
func Present(key, value string) slog.Attr {
	if value == "" {
		return slog.String(key, "no")
	}
	return slog.String(key, "yes")
}
