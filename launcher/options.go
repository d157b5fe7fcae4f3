package launcher

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures a Launcher.
type Option func(*config)

type config struct {
	out         io.Writer
	logger      *log.Logger
	assumeYes   bool
	managerName string
}

func defaultConfig() config {
	return config{managerName: "Wasmer"}
}

// WithOutput sets where user-facing progress messages are written.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.out = w
	}
}

// WithLogger sets the logger for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithAssumeYes skips the install confirmation for registry languages.
func WithAssumeYes(yes bool) Option {
	return func(c *config) {
		c.assumeYes = yes
	}
}

// WithManagerName sets the package manager name shown in prompts.
func WithManagerName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.managerName = name
		}
	}
}
