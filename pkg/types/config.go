// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	// Scholar rejects requests without a browser-like agent string.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DefaultSite is the Scholar origin used when no site is configured.
const DefaultSite = "http://scholar.google.com"

// ScholarConfig holds settings for Scholar queries.
type ScholarConfig struct {
	HTTPConfig `yaml:",inline"`

	// Site is the Scholar origin relative result links resolve against
	// (default http://scholar.google.com).
	Site string `json:"site" yaml:"site"`

	// MaxResults caps the number of returned articles. Scholar ignores
	// values above 100, so the cap is clamped to [0, 100]; 0 means no
	// explicit cap.
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// SiteOrigin returns the configured site, or DefaultSite when unset.
func (c ScholarConfig) SiteOrigin() string {
	if c.Site != "" {
		return c.Site
	}
	return DefaultSite
}
