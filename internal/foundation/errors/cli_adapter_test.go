package errors

import (
	"bytes"
	stdErrors "errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"validation", ValidationError("broken links").Build(), 2},
		{"not found", NotFoundError("no page").Build(), 4},
		{"config", ConfigError("missing index name").Build(), 7},
		{"search", SearchError("backend").Build(), 8},
		{"export", ExportError("write failed").Build(), 11},
		{"internal", InternalError("boom").Build(), 10},
		{"unclassified", stdErrors.New("plain"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	verbose := NewCLIErrorAdapter(true, nil)
	err := SearchError("backend unavailable").Build()

	assert.Equal(t, "search: backend unavailable", quiet.FormatError(err))
	assert.Equal(t, "[search:error] backend unavailable", verbose.FormatError(err))
	assert.Equal(t, "missing field", quiet.FormatError(ConfigError("missing field").Build()))
	assert.Equal(t, "Error: plain", quiet.FormatError(stdErrors.New("plain")))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out bytes.Buffer
	var code int
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	adapter.out = &out
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ValidationError("2 broken links").Build())

	assert.Equal(t, 2, code)
	assert.Equal(t, "2 broken links\n", out.String())
}
