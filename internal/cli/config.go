package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"

	"github.com/matzehuels/mvnfetch/pkg/errors"
	"github.com/matzehuels/mvnfetch/pkg/repository"
)

const configFile = "config.toml"

// Config is the optional configuration file.
//
//	repositories = ["mavenCentral", "internal"]
//	timeout = "30s"
//	retries = 2
//	netrc = "~/.netrc"
//	output = "libs"
//
//	[aliases]
//	internal = "https://nexus.example.com/repository/maven-public"
type Config struct {
	// Repositories are used when no -u flag is given.
	Repositories []string `toml:"repositories"`
	// Timeout is a Go duration string.
	Timeout string `toml:"timeout"`
	// Retries is the number of extra attempts per repository.
	Retries int `toml:"retries"`
	// Netrc points at a netrc file with repository credentials.
	Netrc string `toml:"netrc"`
	// Output is the default output directory.
	Output string `toml:"output"`
	// Aliases extend and override the built-in repository aliases.
	Aliases map[string]string `toml:"aliases"`
}

// defaultConfig is used when no config file exists.
func defaultConfig() *Config {
	return &Config{
		Repositories: []string{"mavenCentral"},
		Netrc:        "~/.netrc",
	}
}

// LoadConfig reads the config file at path. An empty path means the default
// location, which may be missing; an explicit path must exist. Values not
// set in the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return defaultConfig(), nil
		}
		path = filepath.Join(dir, configFile)
	}

	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate checks value ranges and repository tokens.
func (c *Config) Validate() error {
	if c.Retries < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "retries must be >= 0, got %d", c.Retries)
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid timeout %q", c.Timeout)
		}
		if d <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "timeout must be positive, got %s", c.Timeout)
		}
	}
	if len(c.Repositories) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no repositories configured")
	}
	for name, url := range c.Aliases {
		if _, err := repository.Normalize(url, nil); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "alias %q", name)
		}
	}
	return nil
}

// TimeoutDuration returns the parsed timeout, or the client default.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return repository.DefaultTimeout
	}
	return d
}

// repositoryAliases returns the built-in aliases merged with those of the
// config file at path. An unreadable config contributes nothing.
func repositoryAliases(path string) map[string]string {
	cfg, err := LoadConfig(path)
	if err != nil {
		return lo.Assign(repository.DefaultAliases)
	}
	return lo.Assign(repository.DefaultAliases, cfg.Aliases)
}
