package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/seccure/errors"
)

type mock struct {
	Curve        string `mapstructure:"curve" json:"curve" validate:"required,oneof=p256 p384"`
	SecureMemory int    `mapstructure:"secure_memory" json:"secure_memory" validate:"gte=0"`
	SecureRandom bool   `mapstructure:"secure_random" json:"secure_random"`
}

func (m *mock) SetDefaults(v *viper.Viper) {
	v.SetDefault("curve", "p256")
	v.SetDefault("secure_memory", 65536)
	v.SetDefault("secure_random", true)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "seccure.yaml", "curve: p384\n")

	cfg := new(mock)
	c := New(cfg, WithFile("seccure.yaml", dir))
	require.NoError(t, c.Load())

	assert.Equal(t, "p384", cfg.Curve)
	assert.Equal(t, 65536, cfg.SecureMemory)
	assert.True(t, cfg.SecureRandom)
}

func TestExplicitFalseSurvivesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "seccure.yaml", "secure_random: false\nsecure_memory: 0\n")

	cfg := new(mock)
	require.NoError(t, New(cfg, WithFile("seccure.yaml", dir)).Load())

	assert.False(t, cfg.SecureRandom)
	assert.Equal(t, 0, cfg.SecureMemory)
	assert.Equal(t, "p256", cfg.Curve)
}

func TestJSONConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "opts.json", `{"curve":"p384","secure_memory":4096}`)

	cfg := new(mock)
	require.NoError(t, New(cfg, WithFile("opts.json", dir)).Load())
	assert.Equal(t, "p384", cfg.Curve)
	assert.Equal(t, 4096, cfg.SecureMemory)
}

func TestMissingFile(t *testing.T) {
	cfg := new(mock)
	err := New(cfg, WithFile("absent.yaml", t.TempDir())).Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestValidationFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "seccure.yaml", "curve: p999\n")

	err := New(new(mock), WithFile("seccure.yaml", dir)).Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Equal(t, errors.KindPrecondition, errors.KindOf(err))
}

func TestEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "seccure.yaml", "curve: p256\n")
	t.Setenv("SECCURE_CURVE", "p384")
	t.Setenv("SECCURE_SECURE_MEMORY", "8192")

	cfg := new(mock)
	require.NoError(t, New(cfg, WithFile("seccure.yaml", dir), WithEnvPrefix("SECCURE")).Load())

	assert.Equal(t, "p384", cfg.Curve)
	assert.Equal(t, 8192, cfg.SecureMemory)
}

func TestWatchDisabled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "seccure.yaml", "curve: p256\n")

	c := New(new(mock), WithFile("seccure.yaml", dir), WithWatch(false))
	require.NoError(t, c.Load())
	assert.NoError(t, c.Watch())
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "seccure.yaml", "curve: p256\n")

	changed := make(chan struct{}, 8)
	cfg := new(mock)
	c := New(cfg, WithFile("seccure.yaml", dir), WithOnChange(func() {
		changed <- struct{}{}
	}))
	require.NoError(t, c.Load())
	require.NoError(t, c.Watch())

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(p, []byte("curve: p384\n"), 0o600))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-changed:
		case <-deadline:
			t.Fatal("no reload observed")
		}

		var curve string
		c.Read(func(target any) {
			curve = target.(*mock).Curve
		})
		if curve == "p384" {
			return
		}
	}
}

func TestReloadKeepsLastGoodConfig(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "seccure.yaml", "curve: p384\nsecure_memory: 4096\n")

	reloaded := 0
	cfg := new(mock)
	c := New(cfg, WithFile("seccure.yaml", dir), WithWatch(false), WithOnChange(func() {
		reloaded++
	}))
	require.NoError(t, c.Load())

	require.NoError(t, os.WriteFile(p, []byte("curve: bogus\nsecure_memory: -5\n"), 0o600))
	err := c.Reload()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Zero(t, reloaded)

	c.Read(func(target any) {
		m := target.(*mock)
		assert.Equal(t, "p384", m.Curve)
		assert.Equal(t, 4096, m.SecureMemory)
	})

	require.NoError(t, os.WriteFile(p, []byte("curve: p256\n"), 0o600))
	require.NoError(t, c.Reload())
	assert.Equal(t, 1, reloaded)
	assert.Equal(t, "p256", cfg.Curve)
	assert.Equal(t, 65536, cfg.SecureMemory)
}
