// Package launcher decides, for a requested language, whether to run its
// runtime immediately, ask to install it from the registry, or ask for a URL
// to download it from.
//
// The flow is a small state machine:
//
//	CacheCheck ─┬─> Ready
//	            └─> NeedsInstall ─┬─> PromptUser ─┬─> InstallViaRegistry ─┬─> Ready
//	                              │               └─> Aborted             └─> Failed
//	                              └─> RequestURL ───> InstallViaURL ──────┬─> Ready
//	                                                                      └─> Failed
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/caffeineduck/rchidrun/installer"
	"github.com/caffeineduck/rchidrun/prompt"
	"github.com/caffeineduck/rchidrun/registry"
	"github.com/caffeineduck/rchidrun/sdk"
	"github.com/charmbracelet/log"
)

// ErrAborted is returned when the user declines an install.
var ErrAborted = errors.New("installation aborted")

// State is a step of the resolution flow.
type State int

const (
	CacheCheck State = iota
	NeedsInstall
	PromptUser
	RequestURL
	InstallViaRegistry
	InstallViaURL
	Ready
	Aborted
	Failed
)

var stateNames = [...]string{
	CacheCheck:         "CacheCheck",
	NeedsInstall:       "NeedsInstall",
	PromptUser:         "PromptUser",
	RequestURL:         "RequestURL",
	InstallViaRegistry: "InstallViaRegistry",
	InstallViaURL:      "InstallViaURL",
	Ready:              "Ready",
	Aborted:            "Aborted",
	Failed:             "Failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether the flow stops at s.
func (s State) Terminal() bool {
	return s == Ready || s == Aborted || s == Failed
}

// Installer acquires a runtime. *installer.Installer implements it.
type Installer interface {
	Install(ctx context.Context, req installer.Request) error
}

// Runner executes an installed runtime. *executor.Executor implements it.
type Runner interface {
	Run(ctx context.Context, language, script string) error
}

// Launcher resolves and runs language runtimes.
type Launcher struct {
	layout    sdk.Layout
	registry  *registry.Registry
	installer Installer
	runner    Runner
	prompter  prompt.Prompter
	cfg       config
}

// New creates a Launcher.
func New(layout sdk.Layout, reg *registry.Registry, inst Installer, runner Runner, p prompt.Prompter, opts ...Option) *Launcher {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.out == nil {
		cfg.out = io.Discard
	}
	return &Launcher{
		layout:    layout,
		registry:  reg,
		installer: inst,
		runner:    runner,
		prompter:  p,
		cfg:       cfg,
	}
}

// Resolve drives the flow for language until it reaches a terminal state and
// returns every state visited. The error is ErrAborted for Aborted and the
// cause for Failed.
func (l *Launcher) Resolve(ctx context.Context, language string) ([]State, error) {
	state := CacheCheck
	trace := []State{state}
	var req installer.Request

	for !state.Terminal() {
		next, nextReq, err := l.step(ctx, state, language, req)
		l.cfg.logger.Debug("resolve", "language", language, "from", state, "to", next)
		state, req = next, nextReq
		trace = append(trace, state)

		switch state {
		case Aborted:
			return trace, ErrAborted
		case Failed:
			return trace, err
		}
	}
	return trace, nil
}

func (l *Launcher) step(ctx context.Context, state State, language string, req installer.Request) (State, installer.Request, error) {
	switch state {
	case CacheCheck:
		if err := sdk.ValidateLanguage(language); err != nil {
			return Failed, nil, err
		}
		if l.layout.Installed(language) {
			return Ready, nil, nil
		}
		fmt.Fprintf(l.cfg.out, "No runtime found for '%s'.\n", language)
		return NeedsInstall, nil, nil

	case NeedsInstall:
		if l.registry.Supported(language) {
			return PromptUser, nil, nil
		}
		return RequestURL, nil, nil

	case PromptUser:
		if l.cfg.assumeYes {
			return InstallViaRegistry, installer.FromRegistry{Language: language}, nil
		}
		ok, err := l.prompter.Confirm(fmt.Sprintf("Install it via %s?", l.cfg.managerName))
		if err != nil {
			return Failed, nil, fmt.Errorf("confirm install: %w", err)
		}
		if !ok {
			return Aborted, nil, nil
		}
		return InstallViaRegistry, installer.FromRegistry{Language: language}, nil

	case RequestURL:
		url, err := l.prompter.Ask("Language not predefined. Provide a URL to the WASM runtime: ")
		if err != nil {
			return Failed, nil, fmt.Errorf("read runtime URL: %w", err)
		}
		return InstallViaURL, installer.FromURL{Language: language, URL: url}, nil

	case InstallViaRegistry, InstallViaURL:
		if err := l.installer.Install(ctx, req); err != nil {
			return Failed, nil, err
		}
		if state == InstallViaRegistry {
			fmt.Fprintf(l.cfg.out, "Installed '%s' via %s\n", language, l.cfg.managerName)
		} else {
			fmt.Fprintf(l.cfg.out, "Installed '%s' from URL\n", language)
		}
		return Ready, nil, nil
	}
	return Failed, nil, fmt.Errorf("no transition from %s", state)
}

// Run resolves language and, once its runtime is ready, executes script.
func (l *Launcher) Run(ctx context.Context, language, script string) error {
	if _, err := l.Resolve(ctx, language); err != nil {
		return err
	}
	return l.runner.Run(ctx, language, script)
}
