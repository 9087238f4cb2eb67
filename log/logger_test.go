package log

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/seccure/errors"
	"github.com/kochabx/seccure/log/desensitize"
	"github.com/kochabx/seccure/log/writer"
)

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, WithLevel(zerolog.InfoLevel))

	logger.Debug().Msg("dropped")
	logger.Info().Str("op", "encrypt").Msg("ok")
	logger.Warn().Err(errors.Precondition("public key is empty")).Msg("encrypt failed")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Contains(t, entry["error"], "public key is empty")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf).Component("ecc")
	logger.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ecc", entry["component"])
}

func TestGlobalLog(t *testing.T) {
	prev := G
	defer SetGlobalLogger(prev)

	var buf bytes.Buffer
	SetGlobalLogger(NewWriter(&buf))
	SetGlobalLevel(zerolog.WarnLevel)

	Info().Msg("dropped")
	Warnf("runtime refs=%d", 2)
	assert.Contains(t, buf.String(), "runtime refs=2")
	assert.NotContains(t, buf.String(), "dropped")
}

func TestFileLog(t *testing.T) {
	dir := t.TempDir()
	config := FileConfig{
		Filepath:   dir,
		RotateMode: writer.RotateModeSize,
		Filename:   "test",
		LumberjackConfig: LumberjackConfig{
			MaxSize:    10,
			MaxBackups: 3,
		},
	}

	logger, err := NewFile(config)
	require.NoError(t, err)
	defer logger.Close()

	logger.Info().Msg("test file log")
	assert.FileExists(t, filepath.Join(dir, "test.log"))
}

func TestMultiLog(t *testing.T) {
	config := FileConfig{
		Filepath:   t.TempDir(),
		RotateMode: writer.RotateModeTime,
		Filename:   "multi",
	}

	logger, err := NewMulti(config)
	require.NoError(t, err)
	defer logger.Close()

	logger.Info().Str("type", "multi").Msg("test multi output log")
}

func TestFileConfigDefaults(t *testing.T) {
	c := FileConfig{}.withDefaults()
	assert.Equal(t, "log", c.Filepath)
	assert.Equal(t, "seccure", c.Filename)
	assert.Equal(t, "log", c.FileExt)
	assert.Equal(t, 24, c.RotatelogsConfig.MaxAge)
	assert.Equal(t, 100, c.LumberjackConfig.MaxSize)
}

func TestParseRotateMode(t *testing.T) {
	m, err := writer.ParseRotateMode("size")
	require.NoError(t, err)
	assert.Equal(t, writer.RotateModeSize, m)

	_, err = writer.ParseRotateMode("weekly")
	assert.Error(t, err)
}

func TestGlobalDefaultsToRedaction(t *testing.T) {
	require.NotNil(t, G.GetDesensitizeHook())
	assert.NotEmpty(t, G.GetDesensitizeHook().GetRules())
}

func TestFor(t *testing.T) {
	prev := G
	defer SetGlobalLogger(prev)

	var buf bytes.Buffer
	SetGlobalLogger(NewWriter(&buf, WithDesensitize(desensitize.NewBuiltinHook())))

	For("ecc").Warn().Str("passphrase", "correct horse").Msg("keygen failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ecc", entry["component"])
	assert.Equal(t, "******", entry["passphrase"])
}
