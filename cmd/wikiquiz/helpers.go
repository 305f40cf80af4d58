package main

import (
	"fmt"
	"strconv"

	"github.com/at-ishikawa/wikiquiz/internal/api"
	"github.com/at-ishikawa/wikiquiz/internal/config"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *api.HTTPClient {
	return api.NewHTTPClient(cfg.API.BaseURL, cfg.API.Timeout)
}

func parseQuizID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid quiz id: %s", arg)
	}
	return id, nil
}
