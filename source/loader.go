package source

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/envguard/env"
	"github.com/kbukum/envguard/logger"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	ReadEnv(path string) (map[string]string, error)
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) ReadEnv(path string) (map[string]string, error) {
	return godotenv.Read(path)
}

// Resolver handles finding config and env files for a service.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths. Empty
// paths mean nothing was found.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles finds config and env files for a service.
// Returns explicit paths if provided, otherwise searches for them.
func (r *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}

	if resolved.ConfigFile == "" && !opts.SkipConfigFile {
		resolved.ConfigFile = r.findConfigFile(serviceName)
	}
	if resolved.EnvFile == "" && !opts.SkipEnvFile {
		resolved.EnvFile = r.findEnvFile(serviceName)
	}

	return resolved
}

// findConfigFile searches for config.yml in standard locations.
func (r *Resolver) findConfigFile(serviceName string) string {
	shortName := shortServiceName(serviceName)

	searchPaths := []string{
		fmt.Sprintf("./cmd/%s/config.yml", serviceName),
		fmt.Sprintf("./cmd/%s/config.yml", shortName),
		fmt.Sprintf("../cmd/%s/config.yml", serviceName),
		fmt.Sprintf("../cmd/%s/config.yml", shortName),
		"./config/config.yml",
		"../config/config.yml",
		"./config.yml",
	}

	for _, path := range searchPaths {
		if r.FileSystem.Exists(path) {
			return path
		}
	}
	return ""
}

// findEnvFile searches for .env.<service> and then .env.
func (r *Resolver) findEnvFile(serviceName string) string {
	shortName := shortServiceName(serviceName)

	envFiles := []string{
		fmt.Sprintf(".env.%s", serviceName),
		".env",
	}

	searchPaths := buildEnvSearchPaths(serviceName)
	if shortName != serviceName {
		searchPaths = append(searchPaths, buildEnvSearchPaths(shortName)...)
	}

	for _, envFile := range envFiles {
		for _, basePath := range searchPaths {
			fullPath := envFile
			if basePath != "" {
				fullPath = basePath + "/" + envFile
			}
			if r.FileSystem.Exists(fullPath) {
				return fullPath
			}
		}
	}
	return ""
}

func shortServiceName(serviceName string) string {
	if idx := strings.LastIndex(serviceName, "-"); idx != -1 {
		return serviceName[idx+1:]
	}
	return serviceName
}

// buildEnvSearchPaths lists the directories searched for .env files.
func buildEnvSearchPaths(serviceName string) []string {
	var paths []string
	for _, dir := range []string{"cmd/" + serviceName, "config/" + serviceName, "config"} {
		paths = append(paths, "./"+dir, "../"+dir)
	}
	return append(paths, ".", "..", "")
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem     FileSystem
	Logger         *logger.Logger
	ConfigFile     string   // Direct config file path (optional)
	EnvFile        string   // Direct env file path (optional)
	SkipConfigFile bool     // Do not search for a config file
	SkipEnvFile    bool     // Do not search for an env file
	Environ        []string // Process environment, nil for os.Environ
	SkipOS         bool     // Leave the process environment out
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

// WithoutConfigFile disables the config file search.
func WithoutConfigFile() LoaderOption {
	return func(lc *LoaderConfig) { lc.SkipConfigFile = true }
}

// WithoutEnvFile disables the .env file search.
func WithoutEnvFile() LoaderOption {
	return func(lc *LoaderConfig) { lc.SkipEnvFile = true }
}

// WithEnviron replaces os.Environ as the process environment.
func WithEnviron(pairs []string) LoaderOption {
	return func(lc *LoaderConfig) { lc.Environ = pairs }
}

// WithoutOS leaves the process environment out of the result.
func WithoutOS() LoaderOption {
	return func(lc *LoaderConfig) { lc.SkipOS = true }
}

// WithLogger sets the logger used for load warnings.
func WithLogger(l *logger.Logger) LoaderOption {
	return func(lc *LoaderConfig) { lc.Logger = l }
}

// Load builds the raw environment for a service. Precedence, highest
// first: the process environment, the .env file, the config file. Files
// that are named explicitly must exist; files found by searching are
// optional. The result is a snapshot.
func Load(serviceName string, opts ...LoaderOption) (env.Map, ResolvedFiles, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}
	if lc.Logger == nil {
		lc.Logger = logger.GetGlobalLogger()
	}
	log := lc.Logger.WithComponent("source")

	for _, explicit := range []string{lc.ConfigFile, lc.EnvFile} {
		if explicit != "" && !lc.FileSystem.Exists(explicit) {
			return nil, ResolvedFiles{}, fmt.Errorf("file not found: %s", explicit)
		}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(serviceName, lc)

	var layers []env.Source
	if !lc.SkipOS {
		environ := lc.Environ
		if environ == nil {
			environ = os.Environ()
		}
		layers = append(layers, FromEnviron(environ))
	}

	if files.EnvFile != "" {
		values, err := lc.FileSystem.ReadEnv(files.EnvFile)
		if err != nil {
			return nil, files, fmt.Errorf("failed to load env file %s: %w", files.EnvFile, err)
		}
		log.Debug("loaded env file", logger.Fields(logger.FieldSource, files.EnvFile, logger.FieldCount, len(values)))
		layers = append(layers, env.Map(values))
	}

	if files.ConfigFile != "" {
		v := viper.New()
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, files, fmt.Errorf("failed to load config file %s for service %s: %w", files.ConfigFile, serviceName, err)
		}
		log.Debug("loaded config file", logger.Fields(logger.FieldSource, files.ConfigFile, logger.FieldCount, len(v.AllKeys())))
		layers = append(layers, Viper(v))
	}

	return Snapshot(Layered(layers...)), files, nil
}
