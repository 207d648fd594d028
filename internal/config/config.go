// Package config loads nextroutes settings from nextroutes.yaml, the
// environment, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/nextroutes/pkg/generator"
	"github.com/abdul-hamid-achik/nextroutes/pkg/scanner"
)

// FileName is the base name of the project configuration file.
const FileName = "nextroutes"

// EnvPrefix prefixes every environment override (e.g., NEXTROUTES_OUT_DIR).
const EnvPrefix = "NEXTROUTES"

// Keys
const (
	KeyOutDir         = "out_dir"
	KeyDeclarations   = "declarations"
	KeyConstants      = "constants"
	KeyPagesTypeName  = "pages_type_name"
	KeyAppTypeName    = "app_type_name"
	KeyPageExtensions = "page_extensions"
	KeySrcDir         = "src_dir"
	KeyMethods        = "openapi_methods"
)

// DefaultOutDir is where generated files go when nothing is configured.
const DefaultOutDir = "generated"

// Config is the resolved configuration for one project.
type Config struct {
	OutDir         string   `mapstructure:"out_dir" yaml:"out_dir"`
	Declarations   string   `mapstructure:"declarations" yaml:"declarations,omitempty"`
	Constants      string   `mapstructure:"constants" yaml:"constants,omitempty"`
	PagesTypeName  string   `mapstructure:"pages_type_name" yaml:"pages_type_name"`
	AppTypeName    string   `mapstructure:"app_type_name" yaml:"app_type_name"`
	PageExtensions []string `mapstructure:"page_extensions" yaml:"page_extensions"`
	SrcDir         string   `mapstructure:"src_dir" yaml:"src_dir,omitempty"`
	// OpenAPIMethods are the HTTP methods documented for every route handler
	OpenAPIMethods []string `mapstructure:"openapi_methods" yaml:"openapi_methods,omitempty"`

	// File is the config file that was read, if any
	File string `mapstructure:"-" yaml:"-"`
}

// Default returns the configuration used when no file or override is present.
func Default() *Config {
	return &Config{
		OutDir:         DefaultOutDir,
		PagesTypeName:  generator.DefaultPagesName,
		AppTypeName:    generator.DefaultAppName,
		PageExtensions: append([]string(nil), scanner.DefaultExtensions...),
		OpenAPIMethods: []string{"GET"},
	}
}

// NewViper returns a viper instance with defaults and environment overrides
// registered. Callers bind flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	def := Default()
	v.SetDefault(KeyOutDir, def.OutDir)
	v.SetDefault(KeyDeclarations, "")
	v.SetDefault(KeyConstants, "")
	v.SetDefault(KeyPagesTypeName, def.PagesTypeName)
	v.SetDefault(KeyAppTypeName, def.AppTypeName)
	v.SetDefault(KeyPageExtensions, def.PageExtensions)
	v.SetDefault(KeySrcDir, "")
	v.SetDefault(KeyMethods, def.OpenAPIMethods)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration for the project in dir. A .env file in dir is
// loaded into the environment first; a missing .env or config file is not an
// error. When file is set it is read instead of searching dir.
func Load(v *viper.Viper, dir, file string) (*Config, error) {
	if v == nil {
		v = NewViper()
	}
	if err := loadDotEnv(filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.PageExtensions = splitList(cfg.PageExtensions)
	cfg.OpenAPIMethods = splitList(cfg.OpenAPIMethods)
	return cfg, cfg.Validate()
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// splitList accepts both YAML lists and comma-separated environment values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks the configuration for values the generator cannot use.
func (c *Config) Validate() error {
	if c.OutDir == "" && (c.Declarations == "" || c.Constants == "") {
		return fmt.Errorf("%s must be set unless both %s and %s are", KeyOutDir, KeyDeclarations, KeyConstants)
	}
	if len(c.PageExtensions) == 0 {
		return fmt.Errorf("%s must list at least one extension", KeyPageExtensions)
	}
	return c.Generator("").Validate()
}

// Generator returns the generator configuration with paths resolved
// against root. Relative declaration and constants paths default to files
// inside OutDir.
func (c *Config) Generator(root string) generator.Config {
	gen := generator.DefaultConfig(c.OutDir)
	if c.Declarations != "" {
		gen.DeclarationsPath = c.Declarations
	}
	if c.Constants != "" {
		gen.ConstantsPath = c.Constants
	}
	gen.DeclarationsPath = resolve(root, gen.DeclarationsPath)
	gen.ConstantsPath = resolve(root, gen.ConstantsPath)
	gen.PagesName = c.PagesTypeName
	gen.AppName = c.AppTypeName
	return gen
}

func resolve(root, path string) string {
	if root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// Write saves cfg as nextroutes.yaml in dir and returns the file path.
func Write(cfg *Config, dir string) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	path := filepath.Join(dir, FileName+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}
