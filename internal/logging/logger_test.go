package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   zerolog.Level
		wantOK bool
	}{
		{"debug", zerolog.DebugLevel, true},
		{"WARN", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
		{"", zerolog.InfoLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("TILEWM_LOG_LEVEL", "debug")
	t.Setenv("TILEWM_LOG_FORMAT", "json")

	cfg := ConfigFromEnv(DefaultConfig())
	assert.Equal(t, zerolog.DebugLevel, cfg.Level)
	assert.Equal(t, "json", cfg.Format)

	t.Setenv("TILEWM_LOG_FORMAT", "xml")
	cfg = ConfigFromEnv(DefaultConfig())
	assert.Equal(t, "console", cfg.Format)
}

func TestContextHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.DebugLevel, Format: "json", Output: &buf})

	ctx := WithContext(context.Background(), logger)
	ctx = WithComponent(ctx, "tree")
	ctx = WithNodeID(ctx, 42)

	FromContext(ctx).Info().Msg("moved")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"component":"tree"`)
	assert.Contains(t, out, `"node_id":"42"`)
	assert.Contains(t, out, `"message":"moved"`)
}

func TestFromContextWithoutLogger(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	// Must not panic.
	log.Info().Msg("dropped")
}

func TestNew_ConsoleWithoutTerminalHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.InfoLevel, Format: "console", Output: &buf})

	logger.Warn().Str("node", "A").Msg("hit edge")

	assert.Contains(t, buf.String(), "hit edge")
	assert.NotContains(t, buf.String(), "\x1b[")
}
