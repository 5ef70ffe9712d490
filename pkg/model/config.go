// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"log/slog"
)

type ServerConfig struct {
	URL      string `yaml:"url"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type SipiConfig struct {
	URL string `yaml:"url"`
}

type LoggingConfig struct {
	FilePath        string     `yaml:"filePath"`
	FileLogLevel    slog.Level `yaml:"fileLogLevel"`
	ConsoleLogLevel slog.Level `yaml:"consoleLogLevel"`
}

type UploadConfig struct {
	ImageDirectory string `yaml:"imageDirectory"`
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Sipi    SipiConfig    `yaml:"sipi"`
	Upload  UploadConfig  `yaml:"upload"`
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig mirrors a local development stack.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://0.0.0.0:3333",
		},
		Sipi: SipiConfig{
			URL: "http://0.0.0.0:1024",
		},
		Upload: UploadConfig{
			ImageDirectory: ".",
		},
		Logging: LoggingConfig{
			FileLogLevel:    slog.LevelDebug,
			ConsoleLogLevel: slog.LevelWarn,
		},
	}
}
