package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	original := Env
	t.Cleanup(func() { Env = original })

	t.Run("prefers loaded env file values", func(t *testing.T) {
		Env = map[string]string{"COWIN_TEST_KEY": "from-file"}
		t.Setenv("COWIN_TEST_KEY", "from-os")

		assert.Equal(t, "from-file", GetEnv("COWIN_TEST_KEY", "default"))
	})

	t.Run("falls back to the OS environment", func(t *testing.T) {
		Env = map[string]string{}
		t.Setenv("COWIN_TEST_KEY", "from-os")

		assert.Equal(t, "from-os", GetEnv("COWIN_TEST_KEY", "default"))
	})

	t.Run("returns the default when unset", func(t *testing.T) {
		Env = nil

		assert.Equal(t, "default", GetEnv("COWIN_TEST_KEY_UNSET", "default"))
	})
}

func TestIsDev(t *testing.T) {
	original := Env
	t.Cleanup(func() { Env = original })

	Env = map[string]string{"APP_ENV": "dev"}
	assert.True(t, IsDev())

	Env = map[string]string{"APP_ENV": "prod"}
	assert.False(t, IsDev())
}

func TestSetupEnvFile(t *testing.T) {
	original := Env
	t.Cleanup(func() { Env = original })

	wd, err := os.Getwd()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_PORT=4242\n"), 0o600))
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	SetupEnvFile()
	assert.Equal(t, "4242", GetEnv("APP_PORT", "4000"))
}
