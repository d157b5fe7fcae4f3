// Package registry maps language names to the package-manager packages that
// provide their WASM runtimes.
package registry

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnsupportedLanguage is returned when a language has no registry entry.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Entry pairs a language name with the package that provides its runtime.
type Entry struct {
	Language string `mapstructure:"name"`
	Package  string `mapstructure:"package"`
}

// Defaults returns the built-in language table.
func Defaults() []Entry {
	return []Entry{
		{Language: "python", Package: "wasmer/python"},
		{Language: "javascript", Package: "wasmer/quickjs"},
		{Language: "ruby", Package: "wasmer/ruby"},
	}
}

// Registry is an ordered, case-sensitive language → package table.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]string
}

// New returns a Registry seeded with the given entries. Later entries for the
// same language replace earlier ones but keep the original position.
func New(entries ...Entry) *Registry {
	r := &Registry{entries: make(map[string]string)}
	for _, e := range entries {
		r.Register(e.Language, e.Package)
	}
	return r
}

// NewDefault returns a Registry holding the built-in table followed by extra.
func NewDefault(extra ...Entry) *Registry {
	return New(append(Defaults(), extra...)...)
}

// Register adds or replaces the package for a language.
func (r *Registry) Register(language, pkg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[language]; !ok {
		r.order = append(r.order, language)
	}
	r.entries[language] = pkg
}

// Validate checks that every entry names both a language and a package.
func Validate(entries []Entry) error {
	for i, e := range entries {
		if e.Language == "" {
			return fmt.Errorf("registry entry %d: name required", i)
		}
		if e.Package == "" {
			return fmt.Errorf("registry entry %q: package required", e.Language)
		}
	}
	return nil
}

// Supported reports whether the language has a registry entry.
func (r *Registry) Supported(language string) bool {
	_, ok := r.Package(language)
	return ok
}

// Package returns the package for a language.
func (r *Registry) Package(language string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pkg, ok := r.entries[language]
	return pkg, ok
}

// Lookup is like Package but returns ErrUnsupportedLanguage for unknown names.
func (r *Registry) Lookup(language string) (string, error) {
	pkg, ok := r.Package(language)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	return pkg, nil
}

// Entries returns all entries in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.order))
	for _, lang := range r.order {
		out = append(out, Entry{Language: lang, Package: r.entries[lang]})
	}
	return out
}
