package sl_test

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer // buffer for log capturing
	testLogger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{}))

	errAttr := sl.Err(assert.AnError)
	testLogger.Warn("expected result:", errAttr)

	assert.Contains(t, logBuf.String(), assert.AnError.Error())
}

func TestErrType(t *testing.T) {
	t.Parallel()

	pathErr := &fs.PathError{Op: "open", Path: "/nope", Err: errors.New("boom")}

	attr := sl.ErrType(pathErr)

	assert.Equal(t, "error_type", attr.Key)
	assert.Equal(t, "*fs.PathError", attr.Value.String())
}

func TestPresent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "yes", sl.Present("token", "secret").Value.String())
	assert.Equal(t, "no", sl.Present("token", "").Value.String())
}
