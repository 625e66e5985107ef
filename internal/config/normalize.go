package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePortal(); err != nil {
		return err
	}
	if err := c.normalizeDownload(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePortal() error {
	if value, ok := os.LookupEnv("OSRCDL_BASE_URL"); ok && strings.TrimSpace(value) != "" {
		c.Portal.BaseURL = value
	}
	c.Portal.BaseURL = strings.TrimRight(strings.TrimSpace(c.Portal.BaseURL), "/")
	if c.Portal.BaseURL == "" {
		c.Portal.BaseURL = defaultBaseURL
	}
	c.Portal.UserAgent = strings.TrimSpace(c.Portal.UserAgent)
	if c.Portal.UserAgent == "" {
		c.Portal.UserAgent = defaultUserAgent
	}
	if c.Portal.RequestTimeout == 0 {
		c.Portal.RequestTimeout = defaultRequestTimeout
	}
	return nil
}

func (c *Config) normalizeDownload() error {
	var err error
	c.Download.Dir = strings.TrimSpace(c.Download.Dir)
	if c.Download.Dir == "" {
		c.Download.Dir = defaultDownloadDir
	}
	if c.Download.Dir, err = expandPath(c.Download.Dir); err != nil {
		return fmt.Errorf("download.dir: %w", err)
	}
	if c.Download.ChunkSizeKiB == 0 {
		c.Download.ChunkSizeKiB = defaultChunkSizeKiB
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
