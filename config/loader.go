package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ruwler/ruwler-go/httpclient"
	"github.com/ruwler/ruwler-go/logger"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RUWLER"

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	HomeDir() (string, error)
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

func (rfs *RealFileSystem) HomeDir() (string, error) {
	return os.UserHomeDir()
}

// Resolver handles finding config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

var configNames = []string{"ruwler.yml", "ruwler.yaml", "ruwler.json", "ruwler.toml"}

// ResolveFiles returns the explicit paths if provided, otherwise the
// first match from the search lists.
func (r *Resolver) ResolveFiles(opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.first(r.configSearchPaths())
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.first([]string{".env.ruwler", ".env", filepath.Join("config", ".env")})
	}
	return resolved
}

func (r *Resolver) configSearchPaths() []string {
	dirs := []string{".", "config"}
	if home, err := r.FileSystem.HomeDir(); err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, ".config", "ruwler"))
	}
	var paths []string
	for _, dir := range dirs {
		for _, name := range configNames {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths
}

func (r *Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
	// Overrides are applied last, e.g. values from command-line flags.
	Overrides map[string]any
}

// LoaderOption is a functional option for Load.
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

// WithOverride sets key (dotted for nested sections) after every other source.
func WithOverride(key string, value any) LoaderOption {
	return func(lc *LoaderConfig) {
		if lc.Overrides == nil {
			lc.Overrides = make(map[string]any)
		}
		lc.Overrides[key] = value
	}
}

// Load resolves every source and returns settings with defaults applied.
// It does not validate; call Settings.Validate before use.
func Load(opts ...LoaderOption) (*Settings, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	files := (&Resolver{FileSystem: lc.FileSystem}).ResolveFiles(lc)
	return loadFromResolvedFiles(files, lc)
}

func loadFromResolvedFiles(files ResolvedFiles, lc LoaderConfig) (*Settings, error) {
	v := viper.New()

	// 1. Config file.
	if files.ConfigFile != "" {
		if !lc.FileSystem.Exists(files.ConfigFile) {
			if lc.ConfigFile != "" {
				return nil, fmt.Errorf("config file %s not found", files.ConfigFile)
			}
		} else {
			v.SetConfigFile(files.ConfigFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", files.ConfigFile, err)
			}
		}
	}

	// 2. .env file, without overriding variables already set.
	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", files.EnvFile, err)
		}
	}

	// 3. Environment variables.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v, "", reflect.TypeOf(httpclient.Config{}))
	bindEnv(v, "logging.", reflect.TypeOf(logger.Config{}))
	bindEnv(v, "telemetry.", reflect.TypeOf(Telemetry{}))

	// 4. Explicit overrides.
	for k, val := range lc.Overrides {
		v.Set(k, val)
	}

	var s Settings
	hook := viper.DecodeHook(decodeHook())
	if err := v.Unmarshal(&s.Client, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal client config: %w", err)
	}
	if err := v.UnmarshalKey("logging", &s.Logging, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal logging config: %w", err)
	}
	if err := v.UnmarshalKey("telemetry", &s.Telemetry, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal telemetry config: %w", err)
	}
	s.ApplyDefaults()
	return &s, nil
}
