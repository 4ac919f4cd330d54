// Package config provides the storefront configuration.
//
// Configuration is resolved in layers, each overriding the one below:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← STOREFRONT_*, highest priority
//	├─────────────────────────────┤
//	│  2. Config File             │  ← storefront.toml / storefront.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The file format is chosen by extension: ".toml" is decoded with
// go-toml, ".yaml" and ".yml" with yaml.v3. A missing file is not an
// error; the defaults are used.
//
// # Basic Usage
//
//	cfg, err := config.Load("storefront.toml")
//	if err != nil {
//	    return err
//	}
//	client := api.New(cfg.APIConfig())
//
// Load always validates the result. A *ValidationError names the first
// offending setting by its dotted path, e.g. "api.url".
//
// # Environment Variables
//
//	STOREFRONT_API_URL          api.url
//	STOREFRONT_CDN_URL          api.cdn_url
//	STOREFRONT_API_TIMEOUT      api.timeout (Go duration, e.g. "10s")
//	STOREFRONT_API_RPS          api.requests_per_second
//	STOREFRONT_API_BURST        api.burst
//	STOREFRONT_LOG_LEVEL        log.level
//	STOREFRONT_LOG_FILE         log.file
//	STOREFRONT_LOCALE           display.locale
//	STOREFRONT_CURRENCY         display.currency
//	STOREFRONT_ACCENT           display.accent
//	STOREFRONT_METRICS_ADDR     metrics.addr
package config
