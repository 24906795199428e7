package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tristendillon/approute/core/logger"
	"github.com/tristendillon/approute/core/models"
	"gopkg.in/yaml.v3"
)

const FileName = "approute.yaml"

// DefaultIgnore lists tooling directories the scanner and watcher never enter.
var DefaultIgnore = []string{
	"node_modules", ".git", ".next", ".turbo", ".vercel",
	"dist", "build", "out", "coverage",
}

type Config struct {
	RouteRoots          []string `yaml:"route_roots" validate:"required,min=1,dive,required"`
	Manifest            string   `yaml:"manifest" validate:"required"`
	FrameworkDependency string   `yaml:"framework_dependency" validate:"required"`
	PrivatePrefix       string   `yaml:"private_prefix" validate:"required"`
	Ignore              []string `yaml:"ignore,omitempty" validate:"dive,required"`
	Watch               Watch    `yaml:"watch"`
	Create              Create   `yaml:"create"`
}

type Watch struct {
	Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
	VCS      bool          `yaml:"vcs"`
}

type Create struct {
	SampleLimit   int    `yaml:"sample_limit" validate:"gte=1"`
	DefaultMethod string `yaml:"default_method" validate:"oneof=GET POST PUT DELETE PATCH HEAD OPTIONS"`
}

func Default() *Config {
	return &Config{
		RouteRoots:          []string{"app", filepath.Join("src", "app")},
		Manifest:            "package.json",
		FrameworkDependency: "next",
		PrivatePrefix:       models.DefaultPrivatePrefix,
		Watch: Watch{
			Debounce: 300 * time.Millisecond,
			VCS:      true,
		},
		Create: Create{
			SampleLimit:   50,
			DefaultMethod: "GET",
		},
	}
}

// ExcludeNames returns the built-in ignore list plus the configured extras.
func (c *Config) ExcludeNames() []string {
	names := make([]string, 0, len(DefaultIgnore)+len(c.Ignore))
	names = append(names, DefaultIgnore...)
	names = append(names, c.Ignore...)
	return names
}

func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load reads approute.yaml from projectDir. Missing keys keep their defaults.
func Load(projectDir string) (*Config, error) {
	cfg := Default()

	filePath := filepath.Join(projectDir, FileName)
	if _, err := os.Stat(filePath); err != nil {
		logger.Debug("No config file found, using default config")
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Config file found: %s", filePath)
	logger.Debug("Config: %+v", *cfg)

	return cfg, nil
}
