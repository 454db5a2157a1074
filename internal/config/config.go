package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/neocc/internal/tabs"
)

// Default configuration values.
const (
	// DefaultTimeout bounds one HTTP request. Orbit and observation files
	// are small, but the NEA list is several megabytes.
	DefaultTimeout = 60 * time.Second

	// DefaultRetryDelay is the pause before the single retry of a
	// transient server error.
	DefaultRetryDelay = 5 * time.Second

	// DefaultRequestsPerSecond keeps batch queries polite towards the portal.
	DefaultRequestsPerSecond = 2.0

	// DefaultBatchSize is the number of objects queried concurrently.
	DefaultBatchSize = 4

	// DefaultCacheMaxAge is how long a cached document is served without
	// contacting the portal. NEOCC lists are regenerated a few times a day.
	DefaultCacheMaxAge = time.Hour

	// AppName is the application name used for XDG directory paths.
	AppName = "neocc"

	// DefaultUserAgent identifies the client in the portal's logs.
	DefaultUserAgent = "neocc/1.0 (+https://github.com/nao1215/neocc)"

	// DefaultMaxBodySize limits the size of one downloaded document.
	DefaultMaxBodySize = 64 * 1024 * 1024 // 64MB

	// EnvPrefix prefixes every environment override, e.g. NEOCC_TIMEOUT.
	EnvPrefix = "NEOCC"
)

// Config holds every runtime setting. It is populated from defaults, the
// YAML file, NEOCC_* environment variables and CLI flags, in that order.
type Config struct {
	// Portal endpoints. Designators are appended to these prefixes.
	DownloadURL    string `envconfig:"DOWNLOAD_URL"`
	PropertiesURL  string `envconfig:"PROPERTIES_URL"`
	EphemeridesURL string `envconfig:"EPHEMERIDES_URL"`
	SummaryURL     string `envconfig:"SUMMARY_URL"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `envconfig:"TIMEOUT"`

	// RetryDelay is the wait before retrying a transient error once.
	RetryDelay time.Duration `envconfig:"RETRY_DELAY"`

	// RequestsPerSecond caps the request rate of the whole client.
	// Zero disables the limiter.
	RequestsPerSecond float64 `envconfig:"REQUESTS_PER_SECOND"`

	// BatchSize is the number of concurrent object queries.
	BatchSize int `envconfig:"BATCH_SIZE"`

	// CacheMaxAge is the age after which a cached document is refetched.
	CacheMaxAge time.Duration `envconfig:"CACHE_MAX_AGE"`

	// NoCache disables the document cache. List snapshots are still
	// stored when requested.
	NoCache bool `envconfig:"NO_CACHE"`

	// DBDir is the directory of the SQLite database holding the document
	// cache and list snapshots. Defaults to the XDG data directory.
	DBDir string `envconfig:"DB_DIR"`

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string `envconfig:"USER_AGENT"`

	// MaxBodySize is the maximum response body size in bytes.
	MaxBodySize int64 `envconfig:"MAX_BODY_SIZE"`

	// Verbose enables debug logging.
	Verbose bool `ignored:"true"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `ignored:"true"`

	// ConfigFilePath is the explicit configuration file. If empty, the
	// file is searched for with FindConfigFile.
	ConfigFilePath string `ignored:"true"`

	// MetricsFile receives the prometheus counters in text format when
	// the command exits. Empty disables the export.
	MetricsFile string `envconfig:"METRICS_FILE"`

	// JSONReport, MarkdownReport and XLSXReport select the report format.
	// At most one can be set; the default is a text table.
	JSONReport     bool `ignored:"true"`
	MarkdownReport bool `ignored:"true"`
	XLSXReport     bool `ignored:"true"`

	// ReportFile is the output file path for the report. Required for XLSX.
	ReportFile string `ignored:"true"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		DownloadURL:       tabs.DefaultDownloadURL,
		PropertiesURL:     tabs.DefaultPropertiesURL,
		EphemeridesURL:    tabs.DefaultEphemeridesURL,
		SummaryURL:        tabs.DefaultSummaryURL,
		Timeout:           DefaultTimeout,
		RetryDelay:        DefaultRetryDelay,
		RequestsPerSecond: DefaultRequestsPerSecond,
		BatchSize:         DefaultBatchSize,
		CacheMaxAge:       DefaultCacheMaxAge,
		DBDir:             XDGDataDir(),
		UserAgent:         DefaultUserAgent,
		MaxBodySize:       DefaultMaxBodySize,
	}
}

// Endpoints returns the URL prefixes the object tabs are fetched from.
func (c *Config) Endpoints() tabs.Endpoints {
	return tabs.Endpoints{
		Download:    c.DownloadURL,
		Properties:  c.PropertiesURL,
		Ephemerides: c.EphemeridesURL,
		Summary:     c.SummaryURL,
	}
}

// XDGDataDir returns the XDG data directory for neocc.
// On Linux: ~/.local/share/neocc
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for neocc.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.DownloadURL == "" || c.PropertiesURL == "" || c.EphemeridesURL == "" || c.SummaryURL == "" {
		return ErrEmptyEndpoint
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.RetryDelay < 0 {
		return ErrInvalidRetryDelay
	}
	if c.RequestsPerSecond < 0 {
		return ErrInvalidRate
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.CacheMaxAge < 0 {
		return ErrInvalidCacheMaxAge
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	formats := 0
	for _, on := range []bool{c.JSONReport, c.MarkdownReport, c.XLSXReport} {
		if on {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}
	if c.XLSXReport && c.ReportFile == "" {
		return ErrXLSXNeedsFile
	}
	return nil
}
