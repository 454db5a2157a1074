package config

import "time"

// File represents the structure of the .neocc configuration file.
// Zero values leave the corresponding setting unchanged.
type File struct {
	Endpoints EndpointsFile `yaml:"endpoints,omitempty"`
	HTTP      HTTPFile      `yaml:"http,omitempty"`
	Query     QueryFile     `yaml:"query,omitempty"`
	Cache     CacheFile     `yaml:"cache,omitempty"`
}

// EndpointsFile overrides the portal URL prefixes.
type EndpointsFile struct {
	Download    string `yaml:"download,omitempty"`
	Properties  string `yaml:"properties,omitempty"`
	Ephemerides string `yaml:"ephemerides,omitempty"`
	Summary     string `yaml:"summary,omitempty"`
}

// HTTPFile holds transport settings.
type HTTPFile struct {
	Timeout           time.Duration `yaml:"timeout,omitempty"`
	UserAgent         string        `yaml:"userAgent,omitempty"`
	MaxBodySize       int64         `yaml:"maxBodySize,omitempty"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond,omitempty"`
}

// QueryFile holds retry and batch settings.
type QueryFile struct {
	RetryDelay time.Duration `yaml:"retryDelay,omitempty"`
	BatchSize  int           `yaml:"batchSize,omitempty"`
}

// CacheFile holds the document cache settings.
type CacheFile struct {
	Dir      string        `yaml:"dir,omitempty"`
	MaxAge   time.Duration `yaml:"maxAge,omitempty"`
	Disabled bool          `yaml:"disabled,omitempty"`
}

// Apply copies every non-zero setting of the file into c.
func (f *File) Apply(c *Config) {
	setString(&c.DownloadURL, f.Endpoints.Download)
	setString(&c.PropertiesURL, f.Endpoints.Properties)
	setString(&c.EphemeridesURL, f.Endpoints.Ephemerides)
	setString(&c.SummaryURL, f.Endpoints.Summary)

	if f.HTTP.Timeout != 0 {
		c.Timeout = f.HTTP.Timeout
	}
	setString(&c.UserAgent, f.HTTP.UserAgent)
	if f.HTTP.MaxBodySize != 0 {
		c.MaxBodySize = f.HTTP.MaxBodySize
	}
	if f.HTTP.RequestsPerSecond != 0 {
		c.RequestsPerSecond = f.HTTP.RequestsPerSecond
	}

	if f.Query.RetryDelay != 0 {
		c.RetryDelay = f.Query.RetryDelay
	}
	if f.Query.BatchSize != 0 {
		c.BatchSize = f.Query.BatchSize
	}

	setString(&c.DBDir, f.Cache.Dir)
	if f.Cache.MaxAge != 0 {
		c.CacheMaxAge = f.Cache.MaxAge
	}
	if f.Cache.Disabled {
		c.NoCache = true
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
