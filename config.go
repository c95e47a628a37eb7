package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/semverist/bumpver/pkg/version"
)

const (
	defaultParse     = `(?P<major>\d+)\.(?P<minor>\d+)\.(?P<patch>\d+)`
	defaultSerialize = "{major}.{minor}.{patch}"
	defaultTagName   = "v{new_version}"
	defaultMessage   = "Bump version: {current_version} → {new_version}"
)

type PartSettings struct {
	Values        []string `mapstructure:"values"`
	FirstValue    string   `mapstructure:"first_value"`
	OptionalValue string   `mapstructure:"optional_value"`
	Independent   bool     `mapstructure:"independent"`
}

type FileSettings struct {
	File      string   `mapstructure:"file"`
	Parse     string   `mapstructure:"parse"`
	Serialize []string `mapstructure:"serialize"`
	Search    string   `mapstructure:"search"`
	Replace   string   `mapstructure:"replace"`
}

type GithubSettings struct {
	Token  string `mapstructure:"token"`
	Repo   string `mapstructure:"repo"`
	Branch string `mapstructure:"branch"`
}

type Config struct {
	CurrentVersion string                  `mapstructure:"current_version"`
	Parse          string                  `mapstructure:"parse"`
	Serialize      []string                `mapstructure:"serialize"`
	Search         string                  `mapstructure:"search"`
	Replace        string                  `mapstructure:"replace"`
	Commit         bool                    `mapstructure:"commit"`
	Tag            bool                    `mapstructure:"tag"`
	TagName        string                  `mapstructure:"tag_name"`
	TagMessage     string                  `mapstructure:"tag_message"`
	Message        string                  `mapstructure:"message"`
	Parts          map[string]PartSettings `mapstructure:"parts"`
	Files          []FileSettings          `mapstructure:"files"`
	Github         GithubSettings          `mapstructure:"github"`
}

// LoadFromPath reads the configuration file. With an empty path the file
// .bumpver.yaml is searched in the working directory and the home
// directory; a missing file is fine then, the tool can run on flags alone.
func LoadFromPath(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName(".bumpver")
		viper.SetConfigType("yaml")

		if cwd, err := os.Getwd(); err == nil {
			viper.AddConfigPath(cwd)
		}
		if homeDir, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(homeDir)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if configPath != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file .bumpver.yaml: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Parse == "" {
		c.Parse = defaultParse
	}
	if len(c.Serialize) == 0 {
		c.Serialize = []string{defaultSerialize}
	}
	if c.Search == "" {
		c.Search = version.DefaultSearch
	}
	if c.Replace == "" {
		c.Replace = version.DefaultReplace
	}
	if c.TagName == "" {
		c.TagName = defaultTagName
	}
	if c.TagMessage == "" {
		c.TagMessage = defaultMessage
	}
	if c.Message == "" {
		c.Message = defaultMessage
	}
	if c.Github.Branch == "" {
		c.Github.Branch = "main"
	}
}

// VersionConfig builds the bump engine configuration from the loaded
// settings. Part configuration problems fail here, before any file or
// repository is touched.
func (c *Config) VersionConfig() (*version.Config, error) {
	parts, err := c.partConfigs()
	if err != nil {
		return nil, err
	}
	return version.NewConfig(c.Parse, c.Serialize, c.Search, c.Replace, parts)
}

// FileVersionConfig builds the engine configuration for one configured
// file, falling back to the global settings for anything not overridden.
func (c *Config) FileVersionConfig(fs FileSettings) (*version.Config, error) {
	parts, err := c.partConfigs()
	if err != nil {
		return nil, err
	}
	parse := fs.Parse
	if parse == "" {
		parse = c.Parse
	}
	serialize := fs.Serialize
	if len(serialize) == 0 {
		serialize = c.Serialize
	}
	search := fs.Search
	if search == "" {
		search = c.Search
	}
	replace := fs.Replace
	if replace == "" {
		replace = c.Replace
	}
	return version.NewConfig(parse, serialize, search, replace, parts)
}

func (c *Config) partConfigs() (map[string]*version.PartConfig, error) {
	parts := map[string]*version.PartConfig{}
	for name, ps := range c.Parts {
		pc, err := buildPartConfig(ps)
		if err != nil {
			return nil, fmt.Errorf("invalid configuration for part %q: %w", name, err)
		}
		parts[name] = pc
	}
	return parts, nil
}

// buildPartConfig switches a part to the enumerated strategy when a values
// list is present, numeric otherwise.
func buildPartConfig(ps PartSettings) (*version.PartConfig, error) {
	var (
		strat version.Strategy
		err   error
	)
	if len(ps.Values) > 0 {
		strat, err = version.NewValuesStrategy(ps.Values, ps.OptionalValue, ps.FirstValue, nil)
	} else {
		strat, err = version.NewNumericStrategy(ps.FirstValue, nil)
	}
	if err != nil {
		return nil, err
	}
	return &version.PartConfig{Strategy: strat, Independent: ps.Independent}, nil
}

// SaveCurrentVersion writes the new current version back to the config
// file the run was loaded from, if there was one.
func SaveCurrentVersion(newVersion string) error {
	if viper.ConfigFileUsed() == "" {
		return nil
	}
	viper.Set("current_version", newVersion)
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", viper.ConfigFileUsed(), err)
	}
	return nil
}
