// Package config stores column-mapping profiles and BOM/PnP projects in a
// YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file used when BOOMER_CONFIG is not set.
const DefaultPath = "boomer.yaml"

// EnvPath names the environment variable overriding DefaultPath.
const EnvPath = "BOOMER_CONFIG"

// DefaultProfileName is reported when no profile has been saved yet.
const DefaultProfileName = "default-profile"

// ErrProfileNotFound indicates a profile name missing from the config.
var ErrProfileNotFound = errors.New("profile not found")

// ErrProjectNotFound indicates a BOM path without a saved project.
var ErrProjectNotFound = errors.New("project not found")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Common holds settings shared by all profiles.
type Common struct {
	// InitialDir is where file lookups start.
	InitialDir string `yaml:"initial_dir"`
	// MinDistanceMM is the minimum allowed distance between part centers.
	MinDistanceMM float64 `yaml:"components_min_distance" validate:"gt=0"`
	// NoColor disables ANSI colors in terminal reports.
	NoColor bool `yaml:"no_color,omitempty"`
}

// Project ties a BOM file to its PnP files and profile. Relative PnP paths
// are relative to the directory of the BOM file.
type Project struct {
	PnP     string `yaml:"pnp" validate:"required"`
	PnP2    string `yaml:"pnp2,omitempty"`
	Profile string `yaml:"profile" validate:"required"`
}

// Paths returns the PnP paths of p resolved against the directory of bomPath.
func (p *Project) Paths(bomPath string) (pnp, pnp2 string) {
	dir := filepath.Dir(bomPath)
	return resolvePath(dir, p.PnP), resolvePath(dir, p.PnP2)
}

func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// relativePath makes path relative to dir, or absolute when that is not
// possible.
func relativePath(dir, path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return abs
	}
	return rel
}

// Config is the content of the config file.
type Config struct {
	Common   Common              `yaml:"common"`
	Profiles map[string]*Profile `yaml:"profiles,omitempty" validate:"dive,required"`
	// Projects is keyed by BOM file path.
	Projects map[string]*Project `yaml:"projects,omitempty" validate:"dive,required"`

	path string
}

// Path returns the config file path from EnvPath, or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Default returns an empty config bound to path.
func Default(path string) *Config {
	return &Config{
		Common: Common{
			InitialDir:    ".",
			MinDistanceMM: 3.0,
		},
		Profiles: map[string]*Profile{},
		Projects: map[string]*Project{},
		path:     path,
	}
}

// Load reads the config file at path. A missing file yields Default(path).
func Load(path string) (*Config, error) {
	cfg := Default(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Common.InitialDir == "" {
		c.Common.InitialDir = "."
	}
	if c.Common.MinDistanceMM == 0 {
		c.Common.MinDistanceMM = 3.0
	}
	if c.Profiles == nil {
		c.Profiles = map[string]*Profile{}
	}
	if c.Projects == nil {
		c.Projects = map[string]*Project{}
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// FilePath returns the file the config is loaded from and saved to.
func (c *Config) FilePath() string {
	return c.path
}

// Save writes the config back to its file.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0644)
}

// Profile returns the named profile.
func (c *Config) Profile(name string) (*Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return p, nil
}

// ProfileNames returns sorted profile names, or DefaultProfileName when
// there are none.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	if len(names) == 0 {
		names = append(names, DefaultProfileName)
	}
	slices.Sort(names)
	return names
}

// SetProfile stores p under name.
func (c *Config) SetProfile(name string, p *Profile) {
	c.Profiles[name] = p
}

// DeleteProfile removes the named profile.
func (c *Config) DeleteProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	delete(c.Profiles, name)
	return nil
}

// ProfileUseCount returns how many projects use the named profile.
func (c *Config) ProfileUseCount(name string) int {
	n := 0
	for _, p := range c.Projects {
		if p.Profile == name {
			n++
		}
	}
	return n
}

// projectKey finds the key of the project saved for bomPath, either as
// given or as an absolute path.
func (c *Config) projectKey(bomPath string) (string, error) {
	if _, ok := c.Projects[bomPath]; ok {
		return bomPath, nil
	}
	if abs, err := filepath.Abs(bomPath); err == nil {
		if _, ok := c.Projects[abs]; ok {
			return abs, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrProjectNotFound, bomPath)
}

// Project returns the project saved for bomPath.
func (c *Config) Project(bomPath string) (*Project, error) {
	key, err := c.projectKey(bomPath)
	if err != nil {
		return nil, err
	}
	return c.Projects[key], nil
}

// SaveProject stores p under the absolute path of bomPath, with its PnP
// paths made relative to the BOM directory, and writes the file.
func (c *Config) SaveProject(bomPath string, p Project) error {
	key, err := filepath.Abs(bomPath)
	if err != nil {
		return err
	}
	if old, err := c.projectKey(bomPath); err == nil {
		delete(c.Projects, old)
	}
	dir := filepath.Dir(key)
	p.PnP = relativePath(dir, p.PnP)
	p.PnP2 = relativePath(dir, p.PnP2)
	c.Projects[key] = &p
	return c.Save()
}

// DeleteProject removes the project of bomPath.
func (c *Config) DeleteProject(bomPath string) error {
	key, err := c.projectKey(bomPath)
	if err != nil {
		return err
	}
	delete(c.Projects, key)
	return nil
}

// ProjectPaths returns sorted BOM paths of saved projects. Projects whose BOM
// file no longer exists are removed and reported in pruned.
func (c *Config) ProjectPaths() (paths, pruned []string) {
	for bomPath := range c.Projects {
		if _, err := os.Stat(bomPath); err != nil {
			pruned = append(pruned, bomPath)
			delete(c.Projects, bomPath)
			continue
		}
		paths = append(paths, bomPath)
	}
	slices.Sort(paths)
	slices.Sort(pruned)
	return paths, pruned
}
