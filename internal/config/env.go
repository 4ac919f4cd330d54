package config

import (
	"strconv"
)

// EnvPrefix is the prefix of every configuration environment variable.
const EnvPrefix = "STOREFRONT_"

// LookupFunc reports the value of an environment variable. os.LookupEnv
// satisfies it.
type LookupFunc func(key string) (string, bool)

// envSetting binds one environment variable to a setting.
type envSetting struct {
	name string
	path string
	set  func(c *Config, value string) error
}

func stringSetting(field func(c *Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

// envMapping returns the environment variable mappings.
func envMapping() []envSetting {
	return []envSetting{
		{EnvPrefix + "API_URL", "api.url", stringSetting(func(c *Config) *string { return &c.API.URL })},
		{EnvPrefix + "CDN_URL", "api.cdn_url", stringSetting(func(c *Config) *string { return &c.API.CDNURL })},
		{EnvPrefix + "API_TIMEOUT", "api.timeout", func(c *Config, v string) error {
			return c.API.Timeout.UnmarshalText([]byte(v))
		}},
		{EnvPrefix + "API_RPS", "api.requests_per_second", func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			c.API.RequestsPerSecond = f
			return nil
		}},
		{EnvPrefix + "API_BURST", "api.burst", func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			c.API.Burst = n
			return nil
		}},
		{EnvPrefix + "LOG_LEVEL", "log.level", stringSetting(func(c *Config) *string { return &c.Log.Level })},
		{EnvPrefix + "LOG_FILE", "log.file", stringSetting(func(c *Config) *string { return &c.Log.File })},
		{EnvPrefix + "LOCALE", "display.locale", stringSetting(func(c *Config) *string { return &c.Display.Locale })},
		{EnvPrefix + "CURRENCY", "display.currency", stringSetting(func(c *Config) *string { return &c.Display.Currency })},
		{EnvPrefix + "ACCENT", "display.accent", stringSetting(func(c *Config) *string { return &c.Display.Accent })},
		{EnvPrefix + "METRICS_ADDR", "metrics.addr", stringSetting(func(c *Config) *string { return &c.Metrics.Addr })},
	}
}

// ApplyEnv overrides settings from environment variables. Empty values
// are treated as set, not as unset.
func ApplyEnv(c *Config, lookup LookupFunc) error {
	for _, s := range envMapping() {
		v, ok := lookup(s.name)
		if !ok {
			continue
		}
		if err := s.set(c, v); err != nil {
			return &ParseError{Path: s.name, Message: "setting " + s.path + ": " + err.Error(), Err: err}
		}
	}
	return nil
}

// EnvNames returns the recognized variable names in a stable order.
func EnvNames() []string {
	mapping := envMapping()
	names := make([]string, len(mapping))
	for i, s := range mapping {
		names[i] = s.name
	}
	return names
}
