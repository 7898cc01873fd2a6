package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	defaultPath  = "~/.zenday"
	defaultModel = "gemini-2.5-flash"

	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
)

// Config selects where and how records are persisted.
type Config interface {
	BasePath() string
	BackendName() string
}

// FileConfig is the resolved .zenday.yaml / ZENDAY_* configuration.
type FileConfig struct {
	Path     string `json:"path"`
	Backend  string `json:"backend"`
	Model    string `json:"model"`
	APIKey   string `json:"-"`
	LogFile  string `json:"log_file"`
	LogLevel string `json:"log_level"`
}

// LoadConfig reads .zenday.yaml from $ZENDAY_CONFIG_PATH, the working
// directory or $HOME, overlaid with ZENDAY_* environment variables.
func LoadConfig() (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("model", defaultModel)
	v.SetDefault("log_level", "info")
	v.SetConfigName(".zenday") // .yaml is implicit
	v.SetEnvPrefix("ZENDAY")
	v.AutomaticEnv()

	if override := os.Getenv("ZENDAY_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	apiKey := v.GetString("api_key")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("API_KEY")
	}

	logFile := v.GetString("log_file")
	if logFile == "" {
		logFile = filepath.Join(path, "zenday.log")
	} else if logFile, err = homedir.Expand(logFile); err != nil {
		return nil, fmt.Errorf("store: expand log_file: %w", err)
	}

	return &FileConfig{
		Path:     path,
		Backend:  v.GetString("backend"),
		Model:    v.GetString("model"),
		APIKey:   apiKey,
		LogFile:  logFile,
		LogLevel: v.GetString("log_level"),
	}, nil
}

func (f *FileConfig) BasePath() string {
	return f.Path
}

func (f *FileConfig) BackendName() string {
	return f.Backend
}
