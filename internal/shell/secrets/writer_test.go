package secrets

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Write Tests
// =============================================================================

func TestWrite_CreatesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "secrets")

	err := Write(dir, map[string]string{
		"app1_db_password": "hunter2",
		"app1_db_user":     "app1",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "app1_db_password"))
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "app1_db_user"))
	require.NoError(t, err)
	assert.Equal(t, "app1", string(data))
}

func TestWrite_RestrictivePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	dir := filepath.Join(t.TempDir(), "secrets")

	require.NoError(t, Write(dir, map[string]string{"token": "v"}))

	info, err := os.Stat(filepath.Join(dir, "token"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	info, err = os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

func TestWrite_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db_password")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o600))

	err := Write(dir, map[string]string{"db_password": "changed"})

	var existsErr *ExistsError
	require.ErrorAs(t, err, &existsErr)
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, []string{"db_password"}, existsErr.Names)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestWrite_BatchFailsBeforeWritingAnything(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing"), []byte("x"), 0o600))

	err := Write(dir, map[string]string{
		"existing": "y",
		"fresh":    "z",
	})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "fresh"))
	assert.True(t, os.IsNotExist(statErr), "no file may be written when any name collides")
}

func TestWrite_EmptyBatch(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")
	require.NoError(t, Write(dir, nil))

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

// =============================================================================
// MountPath Tests
// =============================================================================

func TestMountPath(t *testing.T) {
	assert.Equal(t, "/run/secrets/app1_db_password", MountPath("app1_db_password"))
}
