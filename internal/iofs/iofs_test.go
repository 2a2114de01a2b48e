package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vgarchive/vgdb/pkg/config"
	"gopkg.in/yaml.v3"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	for _, dir := range []string{
		filepath.Join(tmpDir, ".config", "vgdb"),
		filepath.Join(tmpDir, ".cache", "vgdb"),
		filepath.Join(tmpDir, ".local", "share", "vgdb", "logs"),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), dir)
	}

	// repeated calls succeed
	require.NoError(t, EnsureDirs(tmpDir))
}

func TestTouchDir_ExistingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	existingDir := filepath.Join(tmpDir, "existing")
	require.NoError(t, os.MkdirAll(existingDir, 0700))

	require.NoError(t, touchDir(existingDir))

	info, err := os.Stat(existingDir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestTouchDir_FileInTheWay(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	err := touchDir(filepath.Join(path, "sub"))
	assert.Error(t, err)
}

func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	require.NoError(t, EnsureConfigFile(tmpDir))
	configPath := config.ConfigFilePath(tmpDir)
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	customContent := "# Custom config\ndatabase:\n  host: myhost"
	require.NoError(t, os.WriteFile(configPath, []byte(customContent), 0644))

	require.NoError(t, EnsureConfigFile(tmpDir))
	content, err = os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, customContent, string(content),
		"Existing config file should not be overwritten")
}

// TestConfigYAML_MatchesDefaults verifies the embedded template
// describes the same configuration as config.New().
func TestConfigYAML_MatchesDefaults(t *testing.T) {
	var cfg config.Config
	err := yaml.Unmarshal([]byte(ConfigYAML), &cfg)
	require.NoError(t, err)

	def := config.New()
	assert.Equal(t, def.Database, cfg.Database)
	assert.Equal(t, def.Import, cfg.Import)
	assert.Equal(t, def.Log, cfg.Log)
	assert.Equal(t, def.JobsNumber, cfg.JobsNumber)
}

func TestReadURLList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `# games from 2001
https://en.wikipedia.org/wiki/Halo:_Combat_Evolved

  https://en.wikipedia.org/wiki/Ico  
# https://en.wikipedia.org/wiki/Skipped
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	urls, err := ReadURLList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://en.wikipedia.org/wiki/Halo:_Combat_Evolved",
		"https://en.wikipedia.org/wiki/Ico",
	}, urls)

	_, err = ReadURLList(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
