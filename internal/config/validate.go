package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validDrivers = map[string]bool{
	"sqlite": true, "bolt": true, "memory": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid). A missing API key is
// not an error here; queries report it when they run.
func (c *Config) Validate() []string {
	var errs []string

	// OMDb
	if u, err := url.Parse(c.OMDb.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("omdb.base_url: must be an absolute http(s) URL, got %q", c.OMDb.BaseURL))
	}
	if c.OMDb.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("omdb.timeout: must not be negative, got %s", c.OMDb.Timeout))
	}
	if c.OMDb.RateLimit < 0 {
		errs = append(errs, fmt.Sprintf("omdb.rate_limit: must not be negative, got %g", c.OMDb.RateLimit))
	}
	if c.OMDb.Burst < 0 {
		errs = append(errs, fmt.Sprintf("omdb.burst: must not be negative, got %d", c.OMDb.Burst))
	}

	// Cache and retry
	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Sprintf("cache.ttl: must not be negative, got %s", c.Cache.TTL))
	}
	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Sprintf("retry.max_attempts: must be at least 1, got %d", c.Retry.MaxAttempts))
	}
	if c.Retry.BaseDelay < 0 {
		errs = append(errs, fmt.Sprintf("retry.base_delay: must not be negative, got %s", c.Retry.BaseDelay))
	}

	// Storage
	if !validDrivers[c.Storage.Driver] {
		errs = append(errs, fmt.Sprintf("storage.driver: must be one of sqlite, bolt, memory; got %q", c.Storage.Driver))
	}
	if c.Storage.Driver != "memory" && c.Storage.Path == "" {
		errs = append(errs, "storage.path: required for the "+c.Storage.Driver+" driver")
	}

	// Trending and batch
	for i, seed := range c.Trending.Seeds {
		if strings.TrimSpace(seed) == "" {
			errs = append(errs, fmt.Sprintf("trending.seeds[%d]: must not be blank", i))
		}
	}
	if c.Trending.Limit < 1 {
		errs = append(errs, fmt.Sprintf("trending.limit: must be at least 1, got %d", c.Trending.Limit))
	}
	if c.Batch.Concurrency < 0 {
		errs = append(errs, fmt.Sprintf("batch.concurrency: must not be negative, got %d", c.Batch.Concurrency))
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	return errs
}
