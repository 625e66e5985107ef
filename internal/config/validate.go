package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePortal(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePortal() error {
	parsed, err := url.Parse(c.Portal.BaseURL)
	if err != nil {
		return fmt.Errorf("portal.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("portal.base_url must be an http(s) URL, got %q", c.Portal.BaseURL)
	}
	if parsed.Host == "" {
		return errors.New("portal.base_url must include a host")
	}
	if c.Portal.RequestTimeout < 0 {
		return errors.New("portal.request_timeout must not be negative")
	}
	return nil
}

func (c *Config) validateDownload() error {
	if c.Download.ChunkSizeKiB < 1 {
		return errors.New("download.chunk_size_kib must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
