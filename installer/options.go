package installer

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultDownloadTimeout bounds a single URL install.
const DefaultDownloadTimeout = 5 * time.Minute

// Option configures an Installer.
type Option func(*config)

type config struct {
	packageManager  PackageManager
	client          *http.Client
	downloadTimeout time.Duration
	logger          *log.Logger
}

func defaultConfig() config {
	return config{
		downloadTimeout: DefaultDownloadTimeout,
	}
}

// WithPackageManager sets the package manager used for registry installs.
// Defaults to the wasmer CLI.
func WithPackageManager(pm PackageManager) Option {
	return func(c *config) {
		c.packageManager = pm
	}
}

// WithHTTPClient sets the client used for URL installs.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// WithDownloadTimeout sets the timeout of the default HTTP client.
// Zero disables the timeout. Ignored when WithHTTPClient is used.
func WithDownloadTimeout(d time.Duration) Option {
	return func(c *config) {
		c.downloadTimeout = d
	}
}

// WithLogger sets the logger for install diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
