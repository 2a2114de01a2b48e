// Package iofs manages vgdb files and directories: config, cache and
// log locations, the default config file and URL lists.
package iofs

import (
	"bufio"
	_ "embed"
	"os"
	"strings"

	"github.com/vgarchive/vgdb/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless the user
// already has one.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// ReadURLList reads page URLs from a text file, one per line.
// Empty lines and lines starting with '#' are ignored.
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	defer f.Close()

	var res []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res = append(res, line)
	}
	if err := sc.Err(); err != nil {
		return nil, ReadFileError(path, err)
	}
	return res, nil
}
