package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLogFile_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	f, err := OpenLogFile(dir, "ballistics.log", MaxLogSize)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.WriteString("line\n")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "ballistics.log"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestOpenLogFile_Appends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ballistics.log")
	require.NoError(t, os.WriteFile(path, []byte("first\n"), 0644))

	f, err := OpenLogFile(dir, "ballistics.log", MaxLogSize)
	require.NoError(t, err)
	_, err = f.WriteString("second\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestOpenLogFile_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ballistics.log")
	require.NoError(t, os.WriteFile(path, make([]byte, 65), 0644))
	require.NoError(t, os.WriteFile(path+".old", []byte("stale"), 0644))

	f, err := OpenLogFile(dir, "ballistics.log", 64)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	backup, err := os.Stat(path + ".old")
	require.NoError(t, err)
	assert.Equal(t, int64(65), backup.Size())

	fresh, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, fresh.Size())
}

func TestOpenLogFile_NoRotationAtLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ballistics.log")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0644))

	f, err := OpenLogFile(dir, "ballistics.log", 64)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = os.Stat(path + ".old")
	assert.True(t, os.IsNotExist(err))
}
