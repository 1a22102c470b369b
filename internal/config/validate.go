package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateLimits(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.BusyTimeoutMS < 0 {
		return errors.New("store.busy_timeout_ms must be >= 0")
	}
	if c.Store.SearchLimit <= 0 {
		return errors.New("store.search_limit must be positive")
	}
	if strings.TrimSpace(c.Store.DefaultCookbook) == "" {
		return errors.New("store.default_cookbook must be set")
	}
	return nil
}

func (c *Config) validateLimits() error {
	return ensurePositive([]namedValue{
		{"limits.max_ingredients", c.Limits.MaxIngredients},
		{"limits.max_steps", c.Limits.MaxSteps},
		{"limits.max_tags", c.Limits.MaxTags},
		{"limits.max_name_length", c.Limits.MaxNameLength},
		{"limits.max_title_length", c.Limits.MaxTitleLength},
		{"limits.max_text_length", c.Limits.MaxTextLength},
		{"limits.max_photo_bytes", c.Limits.MaxPhotoBytes},
		{"limits.max_suggestions", c.Limits.MaxSuggestions},
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}

type namedValue struct {
	key   string
	value int
}

func ensurePositive(values []namedValue) error {
	for _, item := range values {
		if item.value <= 0 {
			return fmt.Errorf("%s must be positive", item.key)
		}
	}
	return nil
}
