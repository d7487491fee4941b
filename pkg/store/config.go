package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	keyPath          = "path"
	keyHours         = "timeline.hours"
	keyAutosave      = "autosave.window"
	keyShareBaseURL  = "share.base_url"
	keyLogFile       = "log.file"
	keyLogLevel      = "log.level"
	defaultPath      = "~/.zones.db"
	defaultShareBase = "https://zones.tableflip.dev/"
)

// ZONES_TIMELINE_HOURS overrides timeline.hours.
var envKeyReplacer = strings.NewReplacer(".", "_")

// Config is the resolved runtime configuration.
type Config interface {
	BasePath() string
}

// Settings carries every configurable value. It satisfies Config.
type Settings struct {
	Path           string        `json:"path"`
	Hours          int           `json:"hours"`
	AutosaveWindow time.Duration `json:"autosaveWindow"`
	ShareBaseURL   string        `json:"shareBaseURL"`
	LogFile        string        `json:"logFile"`
	LogLevel       string        `json:"logLevel"`
	ConfigFile     string        `json:"configFile,omitempty"`
}

// BasePath is the diskv directory holding the record.
func (s *Settings) BasePath() string {
	return s.Path
}

// LoadConfig reads .zones.yaml from ZONES_CONFIG_PATH or the working
// directory, with ZONES_* environment overrides.
func LoadConfig() (*Settings, error) {
	v := viper.New()
	v.SetDefault(keyPath, defaultPath)
	v.SetDefault(keyHours, 48)
	v.SetDefault(keyAutosave, "250ms")
	v.SetDefault(keyShareBaseURL, defaultShareBase)
	v.SetDefault(keyLogFile, "")
	v.SetDefault(keyLogLevel, "info")
	v.SetConfigName(".zones") // .yaml is implicit
	v.SetEnvPrefix("ZONES")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if override := os.Getenv("ZONES_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString(keyPath))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	s := &Settings{
		Path:           path,
		Hours:          v.GetInt(keyHours),
		AutosaveWindow: v.GetDuration(keyAutosave),
		ShareBaseURL:   v.GetString(keyShareBaseURL),
		LogFile:        v.GetString(keyLogFile),
		LogLevel:       v.GetString(keyLogLevel),
		ConfigFile:     v.ConfigFileUsed(),
	}
	if s.LogFile != "" {
		if s.LogFile, err = homedir.Expand(s.LogFile); err != nil {
			return nil, fmt.Errorf("store: expand log file: %w", err)
		}
	}
	if s.Hours <= 0 {
		s.Hours = 48
	}
	if s.AutosaveWindow <= 0 {
		s.AutosaveWindow = 250 * time.Millisecond
	}
	return s, nil
}
