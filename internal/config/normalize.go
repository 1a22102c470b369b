package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStore()
	c.normalizeLimits()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	c.Paths.DataDir = strings.TrimSpace(c.Paths.DataDir)
	if c.Paths.DataDir == "" || c.Paths.DataDir == defaultDataDir {
		if value, ok := os.LookupEnv(dataDirEnv); ok && strings.TrimSpace(value) != "" {
			c.Paths.DataDir = strings.TrimSpace(value)
		}
	}
	if c.Paths.DataDir == "" {
		c.Paths.DataDir = defaultDataDir
	}
	c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir)
	if c.Paths.LogDir == defaultLogDir {
		if value, ok := os.LookupEnv(logDirEnv); ok {
			c.Paths.LogDir = strings.TrimSpace(value)
		}
	}

	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStore() {
	c.Store.DefaultCookbook = strings.TrimSpace(c.Store.DefaultCookbook)
	if c.Store.DefaultCookbook == "" {
		c.Store.DefaultCookbook = defaultCookbookName
	}
	if c.Store.BusyTimeoutMS == 0 {
		c.Store.BusyTimeoutMS = defaultBusyTimeoutMS
	}
	if c.Store.SearchLimit == 0 {
		c.Store.SearchLimit = defaultSearchLimit
	}
}

func (c *Config) normalizeLimits() {
	fill := func(value *int, fallback int) {
		if *value == 0 {
			*value = fallback
		}
	}
	fill(&c.Limits.MaxIngredients, defaultMaxIngredients)
	fill(&c.Limits.MaxSteps, defaultMaxSteps)
	fill(&c.Limits.MaxTags, defaultMaxTags)
	fill(&c.Limits.MaxNameLength, defaultMaxNameLength)
	fill(&c.Limits.MaxTitleLength, defaultMaxTitleLength)
	fill(&c.Limits.MaxTextLength, defaultMaxTextLength)
	fill(&c.Limits.MaxPhotoBytes, defaultMaxPhotoBytes)
	fill(&c.Limits.MaxSuggestions, defaultMaxSuggestions)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console", "text":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
