package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRotator(t *testing.T, cfg RotatorConfig) *LogRotator {
	t.Helper()
	if cfg.Dir == "" {
		cfg.Dir = filepath.Join(t.TempDir(), "logs")
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 1
	}
	r, err := NewLogRotator(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestNewLogRotator_Validates(t *testing.T) {
	_, err := NewLogRotator(RotatorConfig{MaxSizeMB: 1})
	require.Error(t, err)

	_, err = NewLogRotator(RotatorConfig{Dir: t.TempDir()})
	require.Error(t, err)
}

func TestLogRotator_WritesToDefaultFile(t *testing.T) {
	r := newTestRotator(t, RotatorConfig{})

	_, err := r.Write([]byte("hello\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultLogFileName, filepath.Base(r.Path()))
	data, err := os.ReadFile(r.Path())
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestLogRotator_RotatesBySize(t *testing.T) {
	r := newTestRotator(t, RotatorConfig{FileName: "engine.log"})
	r.maxSize = 10

	_, err := r.Write([]byte("123456"))
	require.NoError(t, err)
	_, err = r.Write([]byte("abcdef"))
	require.NoError(t, err)

	backups := r.Backups()
	require.Len(t, backups, 1)
	assert.True(t, strings.HasPrefix(backups[0], "engine.log."))

	current, err := os.ReadFile(r.Path())
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(current))
	rotated, err := os.ReadFile(filepath.Join(r.baseDir, backups[0]))
	require.NoError(t, err)
	assert.Equal(t, "123456", string(rotated))
}

func TestLogRotator_OversizedWriteIntoEmptyFile(t *testing.T) {
	r := newTestRotator(t, RotatorConfig{})
	r.maxSize = 4

	_, err := r.Write([]byte("0123456789"))
	require.NoError(t, err)

	assert.Empty(t, r.Backups())
}

func TestLogRotator_CompressesBackups(t *testing.T) {
	r := newTestRotator(t, RotatorConfig{Compress: true})
	r.maxSize = 4

	_, err := r.Write([]byte("aaaa"))
	require.NoError(t, err)
	_, err = r.Write([]byte("bbbb"))
	require.NoError(t, err)

	backups := r.Backups()
	require.Len(t, backups, 1)
	assert.True(t, strings.HasSuffix(backups[0], ".gz"))
}

func TestLogRotator_KeepsMaxBackups(t *testing.T) {
	r := newTestRotator(t, RotatorConfig{MaxBackups: 2})
	r.maxSize = 4
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	for i := 0; i < 5; i++ {
		_, err := r.Write(bytes.Repeat([]byte{'x'}, 4))
		require.NoError(t, err)
	}

	assert.Len(t, r.Backups(), 2)
}

func TestLogRotator_DropsExpiredBackups(t *testing.T) {
	r := newTestRotator(t, RotatorConfig{MaxAgeDays: 1})
	stale := filepath.Join(r.baseDir, DefaultLogFileName+".2020-01-01-00-00-00")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))
	old := time.Now().Add(-72 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	r.cleanup()

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}

func TestLogRotator_WriteAfterCloseReopens(t *testing.T) {
	r := newTestRotator(t, RotatorConfig{})
	require.NoError(t, r.Close())

	_, err := r.Write([]byte("again"))

	require.NoError(t, err)
}
