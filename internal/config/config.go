package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dshills/storefront/internal/api"
)

// Config is the complete storefront configuration.
type Config struct {
	API     APIConfig     `toml:"api" yaml:"api"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Display DisplayConfig `toml:"display" yaml:"display"`
	Metrics MetricsConfig `toml:"metrics" yaml:"metrics"`
}

// APIConfig configures the shop API client.
type APIConfig struct {
	// URL is the API root.
	URL string `toml:"url" yaml:"url"`

	// CDNURL is prepended to product image paths.
	CDNURL string `toml:"cdn_url" yaml:"cdn_url"`

	// Timeout bounds each request.
	Timeout Duration `toml:"timeout" yaml:"timeout"`

	// RequestsPerSecond limits outgoing requests. Zero disables the limit.
	RequestsPerSecond float64 `toml:"requests_per_second" yaml:"requests_per_second"`

	// Burst is the limiter burst size.
	Burst int `toml:"burst" yaml:"burst"`
}

// LogConfig configures the application log.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File is the log output path. The terminal belongs to the UI, so the
	// log never goes to stdout.
	File string `toml:"file" yaml:"file"`
}

// DisplayConfig configures how prices and categories are shown.
type DisplayConfig struct {
	// Locale is a BCP 47 tag used for digit grouping.
	Locale string `toml:"locale" yaml:"locale"`

	// Currency is the word printed after amounts.
	Currency string `toml:"currency" yaml:"currency"`

	// Accent is the theme accent color as "#rrggbb".
	Accent string `toml:"accent" yaml:"accent"`

	// Categories maps category names to chip colors. Entries override
	// the built-in palette.
	Categories map[string]string `toml:"categories" yaml:"categories"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics. Empty disables the server.
	Addr string `toml:"addr" yaml:"addr"`
}

// Default values.
const (
	DefaultAPIURL   = "http://localhost:3000/api/weblarek"
	DefaultCDNURL   = "http://localhost:3000/content/weblarek"
	DefaultTimeout  = 10 * time.Second
	DefaultLogLevel = "info"
	DefaultLogFile  = "storefront.log"
	DefaultLocale   = "en-US"
	DefaultCurrency = "synapses"
	DefaultAccent   = "#5f8dd3"
)

// LogLevels lists the accepted log.level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:     DefaultAPIURL,
			CDNURL:  DefaultCDNURL,
			Timeout: Duration(DefaultTimeout),
			Burst:   1,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
			File:  DefaultLogFile,
		},
		Display: DisplayConfig{
			Locale:   DefaultLocale,
			Currency: DefaultCurrency,
			Accent:   DefaultAccent,
		},
	}
}

// Validate checks every setting and returns the first *ValidationError.
func (c *Config) Validate() error {
	if err := validateURL("api.url", c.API.URL); err != nil {
		return err
	}
	if c.API.CDNURL != "" {
		if err := validateURL("api.cdn_url", c.API.CDNURL); err != nil {
			return err
		}
	}
	if c.API.Timeout <= 0 {
		return &ValidationError{Path: "api.timeout", Message: "must be positive", Value: c.API.Timeout, Code: ErrCodeOutOfRange}
	}
	if c.API.RequestsPerSecond < 0 {
		return &ValidationError{Path: "api.requests_per_second", Message: "must not be negative", Value: c.API.RequestsPerSecond, Code: ErrCodeOutOfRange}
	}
	if c.API.Burst < 0 {
		return &ValidationError{Path: "api.burst", Message: "must not be negative", Value: c.API.Burst, Code: ErrCodeOutOfRange}
	}

	if !slices.Contains(LogLevels, strings.ToLower(c.Log.Level)) {
		return &ValidationError{
			Path:    "log.level",
			Message: "must be one of " + strings.Join(LogLevels, ", "),
			Value:   c.Log.Level,
			Code:    ErrCodeInvalidEnum,
		}
	}

	if _, err := language.Parse(c.Display.Locale); err != nil {
		return &ValidationError{Path: "display.locale", Message: "not a BCP 47 tag", Value: c.Display.Locale, Code: ErrCodePatternMismatch}
	}
	if _, err := colorful.Hex(c.Display.Accent); err != nil {
		return &ValidationError{Path: "display.accent", Message: "not a #rrggbb color", Value: c.Display.Accent, Code: ErrCodePatternMismatch}
	}
	for name, hex := range c.Display.Categories {
		if _, err := colorful.Hex(hex); err != nil {
			return &ValidationError{Path: "display.categories." + name, Message: "not a #rrggbb color", Value: hex, Code: ErrCodePatternMismatch}
		}
	}
	return nil
}

func validateURL(path, raw string) error {
	if raw == "" {
		return &ValidationError{Path: path, Message: "is required", Value: raw, Code: ErrCodeRequiredMissing}
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Path: path, Message: "must be an http(s) URL", Value: raw, Code: ErrCodePatternMismatch}
	}
	return nil
}

// APIConfig converts the api section to client options.
func (c *Config) APIConfig() api.Config {
	return api.Config{
		BaseURL:           c.API.URL,
		CDNURL:            c.API.CDNURL,
		Timeout:           c.API.Timeout.Duration(),
		RequestsPerSecond: c.API.RequestsPerSecond,
		Burst:             c.API.Burst,
	}
}

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration time.Duration

// Duration returns d as a time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	return d.UnmarshalText([]byte(node.Value))
}
