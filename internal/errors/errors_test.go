package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "unknown sensor with suggestion",
			err:  New(ErrFleet, "Unknown sensor 'x9'", "Known sensors: t1, h1"),
			want: "✗ Unknown sensor 'x9'\n\n  Known sensors: t1, h1\n",
		},
		{
			name: "bad tier without suggestion",
			err:  New(ErrWidget, "Invalid size tier 7", ""),
			want: "✗ Invalid size tier 7\n",
		},
		{
			name: "export failure shows cause before suggestion",
			err:  WrapWithCode(fmt.Errorf("disk full"), ErrExport, "Cannot write t1.png", "Pick another --out"),
			want: "✗ Cannot write t1.png\n\n  disk full\n\n  Pick another --out\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestCodesAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, code := range []string{ErrConfig, ErrFleet, ErrWidget, ErrRender, ErrExport} {
		require.NotEmpty(t, code)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestCodeOfAndIsCode(t *testing.T) {
	cause := errors.New("yaml: line 3: mapping values are not allowed")
	cfgErr := WrapWithCode(cause, ErrConfig, "Cannot parse .pidash.yaml", "")
	wrapped := fmt.Errorf("loading dashboard: %w", cfgErr)

	tests := []struct {
		name string
		err  error
		code string
	}{
		{"direct", cfgErr, ErrConfig},
		{"wrapped by fmt", wrapped, ErrConfig},
		{"plain error", cause, ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, CodeOf(tt.err))
			assert.Equal(t, tt.code != "", IsCode(tt.err, ErrConfig))
			assert.False(t, IsCode(tt.err, ErrWidget))
		})
	}

	assert.ErrorIs(t, wrapped, cause)
}

func TestSummary(t *testing.T) {
	err := WrapWithCode(errors.New("permission denied"), ErrExport, "Cannot create snapshots/t1.svg", "Check --snapshot-dir")
	assert.Equal(t, "Cannot create snapshots/t1.svg", Summary(err))
	assert.Equal(t, "Cannot create snapshots/t1.svg", Summary(fmt.Errorf("key s: %w", err)))
	assert.Equal(t, "sensor t1 has no data", Summary(errors.New("sensor t1 has no data\n")))
}
