package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema struct {
		Defs map[string]struct {
			Required []string `json:"required"`
		} `json:"$defs"`
	}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// required fields of each section must be set
	sections := map[string]string{"server": "ServerConfig", "client": "ClientConfig", "ui": "UIConfig", "backend": "BackendConfig"}
	for section, def := range sections {
		for _, field := range schema.Defs[def].Required {
			if v, ok := configMap[section][field]; !ok || v == "" || v == nil {
				return fmt.Errorf("%s.%s is required", section, field)
			}
		}
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return errors.New("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return errors.New("server.timeout is required")
	}
	if cfg.UI.Title == "" {
		return errors.New("ui.title is required")
	}
	if cfg.Backend.Enabled {
		if cfg.Backend.SteamURL == "" {
			return errors.New("backend.steam_url is required when backend is enabled")
		}
		if cfg.Backend.EpicURL == "" {
			return errors.New("backend.epic_url is required when backend is enabled")
		}
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
