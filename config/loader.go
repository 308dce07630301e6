package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/beankit/logger"
)

// FileSystem abstracts the file operations of the loader.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem is the FileSystem backed by the OS.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds loader dependencies and explicit file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// ResolvedFiles are the files LoadConfig reads. Empty means none found.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// Resolve returns the config and env files for serviceName. Explicit paths
// win; otherwise the first existing candidate of ConfigCandidates and
// EnvCandidates is used.
func Resolve(serviceName string, lc LoaderConfig) ResolvedFiles {
	files := ResolvedFiles{ConfigFile: lc.ConfigFile, EnvFile: lc.EnvFile}
	if files.ConfigFile == "" {
		files.ConfigFile = firstExisting(lc.FileSystem, ConfigCandidates(serviceName))
	}
	if files.EnvFile == "" {
		files.EnvFile = firstExisting(lc.FileSystem, EnvCandidates(serviceName))
	}
	return files
}

// ConfigCandidates lists config.yml locations in search order.
func ConfigCandidates(serviceName string) []string {
	var paths []string
	for _, dir := range []string{".", "..", "../.."} {
		paths = append(paths, filepath.Join(dir, "cmd", serviceName, "config.yml"))
	}
	return append(paths,
		filepath.Join("config", "config.yml"),
		filepath.Join("..", "config", "config.yml"),
		"config.yml",
	)
}

// EnvCandidates lists .env locations in search order. A service-specific
// file (.env.<service>) is preferred over a plain .env in the same place.
func EnvCandidates(serviceName string) []string {
	dirs := []string{
		filepath.Join("cmd", serviceName),
		filepath.Join("config", serviceName),
		"config",
		".",
		"..",
		filepath.Join("..", ".."),
	}
	var paths []string
	for _, name := range []string{".env." + serviceName, ".env"} {
		for _, dir := range dirs {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths
}

func firstExisting(fs FileSystem, paths []string) string {
	for _, p := range paths {
		if fs.Exists(p) {
			return p
		}
	}
	return ""
}

// LoadConfig loads the configuration for serviceName into cfg. The YAML file
// is read first, then the .env file is loaded into the environment, then every
// environment variable is bound so that SESSION_TIMEOUT overrides
// session.timeout.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: RealFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}
	files := Resolve(serviceName, lc)

	v := viper.New()
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			logger.Warn("failed to read config file", logger.Fields(
				"file", files.ConfigFile,
				logger.FieldError, err.Error(),
			))
		}
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			logger.Warn("failed to load env file", logger.Fields(
				"file", files.EnvFile,
				logger.FieldError, err.Error(),
			))
		}
	}

	v.AutomaticEnv()
	bindEnv(v, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// bindEnv sets every KEY=value pair under each nested key it could mean.
func bindEnv(v *viper.Viper, environ []string) {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// envKeyVariants maps an environment variable name to candidate config keys:
//
//	SESSION_SWEEP_INTERVAL -> session_sweep_interval, session.sweep.interval,
//	                          session.sweep_interval, session_sweep.interval
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) == 1 {
		return []string{lower}
	}

	variants := []string{lower, strings.Join(parts, ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants,
			strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"),
			strings.Join(parts[:i], "_")+"."+strings.Join(parts[i:], "."),
		)
	}

	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, variant := range variants {
		if !seen[variant] {
			seen[variant] = true
			out = append(out, variant)
		}
	}
	return out
}
