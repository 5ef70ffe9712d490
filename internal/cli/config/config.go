// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/xmlupload/internal/util"
	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

const (
	ConfigFileName  = "xmlupload.conf.yaml"
	ConfigDirectory = ".config/xmlupload"
	DataDirectory   = ".pel/xmlupload"
	LogFileName     = "log/client.log"
)

var Config = cliconfig{}

type cliconfig struct{}

func (cliconfig) ConfigDirectory() string {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homePath, ConfigDirectory)
}

func (cliconfig) DataDirectory() string {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homePath, DataDirectory)
}

func (cliconfig) EnsureConfigDirectory() error {
	configPath := Config.ConfigDirectory()
	if configPath == "" {
		return fmt.Errorf("failed to ensure xmlupload config directory")
	}

	return util.EnsureFolderHierarchy(configPath)
}

func (cliconfig) EnsureDataDirectory() error {
	dataPath := Config.DataDirectory()
	if dataPath == "" {
		return fmt.Errorf("failed to ensure xmlupload data directory")
	}

	return util.EnsureFolderHierarchy(dataPath)
}

// DefaultLogFile is where client logs go unless configured otherwise.
func (cliconfig) DefaultLogFile() string {
	return filepath.Join(Config.DataDirectory(), LogFileName)
}

// Load reads the configuration at path on top of the defaults. An empty path
// falls back to the file in the config directory, which may be absent.
func (cliconfig) Load(path string) (*pkgmodel.Config, error) {
	cfg := pkgmodel.DefaultConfig()
	cfg.Logging.FilePath = Config.DefaultLogFile()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(Config.ConfigDirectory(), ConfigFileName)
	}
	path = util.ExpandHomePath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.Logging.FilePath = util.ExpandHomePath(cfg.Logging.FilePath)

	return cfg, nil
}
