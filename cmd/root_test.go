package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vgarchive/vgdb/internal/iofs"
)

func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "vgdb", cmd.Use)
}

func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, v := range []string{"create", "migrate", "import", "report"} {
		assert.Contains(t, names, v, "root should have %s", v)
	}
}

func TestGetRootCmd_Version(t *testing.T) {
	tests := []struct {
		msg  string
		flag string
	}{
		{"long flag", "--version"},
		{"short flag", "-V"},
	}

	for _, v := range tests {
		cmd := getRootCmd()
		cmd.Version = "version: v1.2.3\nbuild:   abc123"

		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{v.flag})

		err := cmd.Execute()
		require.NoError(t, err, v.msg)

		output := buf.String()
		assert.Contains(t, output, "v1.2.3", v.msg)
		assert.Contains(t, output, "abc123", v.msg)
		assert.NotContains(t, output, "vgdb version", v.msg)
	}
}

func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "vgdb")
	assert.Contains(t, helpText, "PostgreSQL")
	assert.Contains(t, helpText, "VGDB_")
	assert.Contains(t, helpText, "import")
}

func TestGetRootCmd_Settings(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.NotNil(t, cmd.RunE)
	assert.True(t, cmd.SilenceErrors, "Errors should be silenced")
	assert.True(t, cmd.SilenceUsage, "Usage should be silenced on errors")
}

func TestGetRootCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()

	assert.NotSame(t, cmd1, cmd2)

	cmd1.Version = "version1"
	cmd2.Version = "version2"
	assert.Equal(t, "version1", cmd1.Version)
	assert.Equal(t, "version2", cmd2.Version)
}

func TestGetRootCmd_InvalidCommand(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t,
		strings.Contains(buf.String(), "unknown") ||
			strings.Contains(err.Error(), "unknown"),
		"Error should indicate unknown command")
}

func TestInitConfig(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	require.NoError(t, iofs.EnsureConfigFile(home))

	t.Run("defaults from config file", func(t *testing.T) {
		res, err := initConfig(home)
		require.NoError(t, err)
		assert.Equal(t, "localhost", res.Database.Host)
		assert.Equal(t, 5432, res.Database.Port)
		assert.Equal(t, "https://en.wikipedia.org", res.Import.BaseURL)
		assert.True(t, res.Import.UseCache)
		assert.Equal(t, 1, res.JobsNumber)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("VGDB_DATABASE_HOST", "db.test")
		t.Setenv("VGDB_DATABASE_PORT", "5433")
		t.Setenv("VGDB_IMPORT_USE_CACHE", "false")
		t.Setenv("VGDB_IMPORT_USER_AGENT", "agent/1.0")
		t.Setenv("VGDB_JOBS_NUMBER", "4")

		res, err := initConfig(home)
		require.NoError(t, err)
		assert.Equal(t, "db.test", res.Database.Host)
		assert.Equal(t, 5433, res.Database.Port)
		assert.False(t, res.Import.UseCache)
		assert.Equal(t, "agent/1.0", res.Import.UserAgent)
		assert.Equal(t, 4, res.JobsNumber)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := initConfig(t.TempDir())
		assert.Error(t, err)
	})
}

func TestEnvVarsPrefix(t *testing.T) {
	for key, env := range envVars {
		assert.True(t, strings.HasPrefix(env, "VGDB_"), key)
		want := "VGDB_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		assert.Equal(t, want, env, key)
	}
}
