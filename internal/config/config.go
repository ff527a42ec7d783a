// Package config defines service configuration and its loading hooks.
package config

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// ClubName is shown on the dashboard header.
	ClubName string `koanf:"club_name" validate:"required"`

	// StartingPath and BenchPath point at the two roster files (.csv or .xlsx).
	StartingPath string `koanf:"starting_path" validate:"required"`
	BenchPath    string `koanf:"bench_path" validate:"required"`

	// SheetName selects the worksheet of XLSX sources and names the export
	// sheet. Empty reads the first sheet.
	SheetName string `koanf:"sheet_name"`

	// ImageDir holds <player_id>.jpg portraits.
	ImageDir string `koanf:"image_dir"`

	// PlaceholderImage is served for players without a portrait.
	PlaceholderImage string `koanf:"placeholder_image"`

	// GeoJSONURL is handed to the browser for the nationality map.
	GeoJSONURL string `koanf:"geojson_url" validate:"omitempty,url"`

	// AgeBins is the bar count of the age histogram.
	AgeBins int `koanf:"age_bins" validate:"gte=1,lte=100"`

	// MCPEnabled mounts the MCP tools at MCPPath.
	MCPEnabled bool   `koanf:"mcp_enabled"`
	MCPPath    string `koanf:"mcp_path" validate:"required_if=MCPEnabled true,omitempty,startswith=/"`
}

// New creates a Config with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		ClubName:         "Bristol City",
		StartingPath:     "bristol_city_starting_11.csv",
		BenchPath:        "bristol_city_bench.csv",
		ImageDir:         "Bristol_City_Player_Pics",
		PlaceholderImage: "placeholder.jpg",
		GeoJSONURL:       "https://raw.githubusercontent.com/datasets/geo-countries/master/data/countries.geojson",
		AgeBins:          10,
		MCPEnabled:       true,
		MCPPath:          "/mcp",
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return wrap(ErrInvalidConfig, err)
	}
	return nil
}
