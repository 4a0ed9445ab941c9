package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/healthcomp/internal/flagx"
	"github.com/dmitrijs2005/healthcomp/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "set to the zero value".
type JSONConfig struct {
	BackendURL     *string         `json:"backend_url"`
	FrontendURL    *string         `json:"frontend_url"`
	DatabasePath   *string         `json:"database_path"`
	LogLevel       *string         `json:"log_level"`
	OTelEndpoint   *string         `json:"otel_endpoint"`
	SingleFlight   *bool           `json:"single_flight"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIf(&cfg.BackendURL, jc.BackendURL)
	setIf(&cfg.FrontendURL, jc.FrontendURL)
	setIf(&cfg.DatabasePath, jc.DatabasePath)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.OTelEndpoint, jc.OTelEndpoint)
	setIf(&cfg.SingleFlight, jc.SingleFlight)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
