/*
Copyright © 2026 The vgdb Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vgarchive/vgdb/internal/iofs"
	"github.com/vgarchive/vgdb/internal/iologger"
	"github.com/vgarchive/vgdb/pkg/config"
	"github.com/vgarchive/vgdb/pkg/vgdb"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// envVars are the environment variables vgdb reads, keyed by the
// config.yaml field they override. They match config.ToOptions().
var envVars = map[string]string{
	"database.host":          "VGDB_DATABASE_HOST",
	"database.port":          "VGDB_DATABASE_PORT",
	"database.user":          "VGDB_DATABASE_USER",
	"database.password":      "VGDB_DATABASE_PASSWORD",
	"database.database":      "VGDB_DATABASE_DATABASE",
	"database.ssl_mode":      "VGDB_DATABASE_SSL_MODE",
	"import.base_url":        "VGDB_IMPORT_BASE_URL",
	"import.user_agent":      "VGDB_IMPORT_USER_AGENT",
	"import.timeout_sec":     "VGDB_IMPORT_TIMEOUT_SEC",
	"import.max_http_errors": "VGDB_IMPORT_MAX_HTTP_ERRORS",
	"import.use_cache":       "VGDB_IMPORT_USE_CACHE",
	"import.aliases_file":    "VGDB_IMPORT_ALIASES_FILE",
	"log.level":              "VGDB_LOG_LEVEL",
	"log.format":             "VGDB_LOG_FORMAT",
	"log.destination":        "VGDB_LOG_DESTINATION",
	"jobs_number":            "VGDB_JOBS_NUMBER",
}

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			vgdb.Version, vgdb.Build),
		Use:   "vgdb",
		Short: "vgdb builds a video game database from encyclopedia pages",
		Long: `vgdb reads encyclopedia articles about video games and stores
their facts in a PostgreSQL database.

Features:
  - Schema Management: create and migrate tables and foreign keys
  - Page Import: download articles, extract games, companies, employees,
    platforms and release dates, merge them without duplicates
  - Reports: show what is stored about a game

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (VGDB_*)
  3. ~/.config/vgdb/config.yaml
  4. Built-in defaults

Environment variables use the VGDB_ prefix and underscores for
nesting, for example VGDB_DATABASE_HOST or VGDB_IMPORT_USER_AGENT.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "vgdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for vgdb")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getImportCmd(),
		getReportCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Defaults until the user's config is read.
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// The log file was created above, keep its first lines.
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	gn.Info("Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir))
	return cmd.Help()
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// initEnvVars binds every allowed variable by its full name, so the
// list of supported variables is explicit.
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("VGDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, env := range envVars {
		_ = v.BindEnv(key, env)
	}

	v.AutomaticEnv()
}
