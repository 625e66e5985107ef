package main

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"osrcdl/internal/config"
	"osrcdl/internal/logging"
	"osrcdl/internal/portal"
)

type commandContext struct {
	modelFlag  *string
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(modelFlag, configFlag *string) *commandContext {
	return &commandContext{
		modelFlag:  modelFlag,
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// model returns the device model flag, which every portal operation needs.
func (c *commandContext) model() (string, error) {
	var model string
	if c.modelFlag != nil {
		model = strings.TrimSpace(*c.modelFlag)
	}
	if model == "" {
		return "", errors.New("device model is required (use --model)")
	}
	return model, nil
}

func (c *commandContext) portalClient() (*portal.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return portal.New(portal.Config{
		BaseURL:        cfg.Portal.BaseURL,
		UserAgent:      cfg.Portal.UserAgent,
		RequestTimeout: time.Duration(cfg.Portal.RequestTimeout) * time.Second,
		InsecureTLS:    cfg.Portal.InsecureTLS,
		Logger:         logger,
	})
}
