// Package config loads environment configuration for DragBox.
package config

import (
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/frudas24/dragbox/internal/geom"
	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr     = "0.0.0.0:8788"
	defaultDataDir        = "./data"
	defaultGeometryFile   = "dragbox.yml"
	defaultPasswordMode   = true
	defaultMinWidth       = 150
	defaultMaxWidth       = 500
	defaultMinHeight      = 240
	defaultHandleSize     = 10
	defaultViewportWidth  = 1280
	defaultViewportHeight = 720
	defaultFeedIntervalMs = 16
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr     string
	UIPassword     string
	PasswordMode   bool
	DataDir        string
	GeometryPath   string
	MinWidth       float64
	MaxWidth       float64
	MinHeight      float64
	Initial        geom.Rect
	HandleSize     float64
	Viewport       geom.Size
	MonitorIndex   int
	FeedIntervalMs int

	// Load status for startup reporting.
	EnvPath        string
	EnvLoaded      bool
	GeometryLoaded bool
}

// geometryFile is the optional YAML geometry override.
type geometryFile struct {
	Limits struct {
		MinWidth  *float64 `yaml:"minWidth"`
		MaxWidth  *float64 `yaml:"maxWidth"`
		MinHeight *float64 `yaml:"minHeight"`
	} `yaml:"limits"`
	Initial      *geom.Rect `yaml:"initial"`
	HandleSize   *float64   `yaml:"handleSize"`
	Viewport     *geom.Size `yaml:"viewport"`
	MonitorIndex *int       `yaml:"monitor"`
}

// Load reads configuration from DATA_DIR/.env, DATA_DIR/dragbox.yml and environment variables.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:     defaultListenAddr,
		PasswordMode:   defaultPasswordMode,
		DataDir:        envString("DATA_DIR", defaultDataDir),
		MinWidth:       defaultMinWidth,
		MaxWidth:       defaultMaxWidth,
		MinHeight:      defaultMinHeight,
		Initial:        geom.Rect{X: 100, Y: 100, W: 250, H: 250},
		HandleSize:     defaultHandleSize,
		Viewport:       geom.Size{W: defaultViewportWidth, H: defaultViewportHeight},
		FeedIntervalMs: defaultFeedIntervalMs,
	}

	cfg.EnvPath = filepath.Join(cfg.DataDir, ".env")
	envLoaded, err := loadEnvFile(cfg.EnvPath)
	if err != nil {
		return Config{}, err
	}
	cfg.EnvLoaded = envLoaded

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.GeometryPath = envString("GEOMETRY_PATH", filepath.Join(cfg.DataDir, defaultGeometryFile))
	cfg.UIPassword = strings.TrimSpace(os.Getenv("UI_PASSWORD"))
	cfg.PasswordMode = envBool("PASSWORD_MODE", cfg.PasswordMode)

	geometryLoaded, err := loadGeometryFile(cfg.GeometryPath, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", cfg.GeometryPath, err)
	}
	cfg.GeometryLoaded = geometryLoaded

	floats := []struct {
		key string
		dst *float64
	}{
		{"MIN_WIDTH", &cfg.MinWidth},
		{"MAX_WIDTH", &cfg.MaxWidth},
		{"MIN_HEIGHT", &cfg.MinHeight},
		{"HANDLE_SIZE", &cfg.HandleSize},
		{"VIEWPORT_WIDTH", &cfg.Viewport.W},
		{"VIEWPORT_HEIGHT", &cfg.Viewport.H},
	}
	for _, f := range floats {
		value, err := envFloat(f.key, *f.dst)
		if err != nil {
			return Config{}, err
		}
		*f.dst = value
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"MONITOR_INDEX", &cfg.MonitorIndex},
		{"FEED_INTERVAL_MS", &cfg.FeedIntervalMs},
	}
	for _, f := range ints {
		value, err := envInt(f.key, *f.dst)
		if err != nil {
			return Config{}, err
		}
		*f.dst = value
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate checks value ranges after all sources are merged.
// Comparisons are written so that NaN from the geometry file fails them.
func (c Config) validate() error {
	finite := []struct {
		key   string
		value float64
	}{
		{"MIN_WIDTH", c.MinWidth},
		{"MAX_WIDTH", c.MaxWidth},
		{"MIN_HEIGHT", c.MinHeight},
		{"HANDLE_SIZE", c.HandleSize},
	}
	for _, f := range finite {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be finite", f.key)
		}
	}
	if !(c.MinWidth > 0) {
		return fmt.Errorf("MIN_WIDTH must be > 0")
	}
	if !(c.MaxWidth >= c.MinWidth) {
		return fmt.Errorf("MAX_WIDTH must be >= MIN_WIDTH")
	}
	if !(c.MinHeight > 0) {
		return fmt.Errorf("MIN_HEIGHT must be > 0")
	}
	if !(c.HandleSize >= 0) {
		return fmt.Errorf("HANDLE_SIZE must be >= 0")
	}
	if !c.Viewport.Usable() {
		return fmt.Errorf("VIEWPORT_WIDTH and VIEWPORT_HEIGHT must be > 0")
	}
	if c.MonitorIndex < 0 {
		return fmt.Errorf("MONITOR_INDEX must be >= 0")
	}
	if c.FeedIntervalMs < 0 {
		return fmt.Errorf("FEED_INTERVAL_MS must be >= 0")
	}
	if c.PasswordMode && c.UIPassword == "" {
		return errors.New("UI_PASSWORD is required")
	}
	return nil
}

// LocalURL returns a browsable URL for the listen address, or "" when it cannot be parsed.
func (c Config) LocalURL() string {
	host, port, err := net.SplitHostPort(c.ListenAddr)
	if err != nil {
		return ""
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// loadGeometryFile merges a YAML geometry file into cfg and reports whether one was read.
// Missing files are ignored. The initial rect is normalized so negative sizes flip.
func loadGeometryFile(path string, cfg *Config) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	var file geometryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return false, err
	}
	if file.Limits.MinWidth != nil {
		cfg.MinWidth = *file.Limits.MinWidth
	}
	if file.Limits.MaxWidth != nil {
		cfg.MaxWidth = *file.Limits.MaxWidth
	}
	if file.Limits.MinHeight != nil {
		cfg.MinHeight = *file.Limits.MinHeight
	}
	if file.Initial != nil {
		if !file.Initial.Finite() {
			return false, fmt.Errorf("initial rect %+v is not finite", *file.Initial)
		}
		cfg.Initial = geom.Normalize(*file.Initial)
	}
	if file.HandleSize != nil {
		cfg.HandleSize = *file.HandleSize
	}
	if file.MonitorIndex != nil {
		cfg.MonitorIndex = *file.MonitorIndex
	}
	if file.Viewport != nil {
		cfg.Viewport = *file.Viewport
	}
	return true, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envFloat returns a float env override when present, otherwise a default.
func envFloat(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be finite, got %q", key, raw)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file and reports whether it exists.
func loadEnvFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return false, err
			}
		}
	}

	return true, nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(value), `"'`), true
}
