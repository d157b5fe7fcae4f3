// Package sdk resolves where language runtimes live on disk and lists the
// ones that are installed.
//
// Every installed language owns one directory under the SDK root holding a
// single artifact:
//
//	<home>/.rchidrun/plugins/<language>/runtime.wasm
package sdk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactName is the file name of a language's runtime inside its directory.
const ArtifactName = "runtime.wasm"

var (
	// ErrConfiguration is returned when the SDK root cannot be determined.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidLanguage is returned for names that are not a single path
	// element.
	ErrInvalidLanguage = errors.New("invalid language name")
)

// Layout computes paths under a fixed SDK root. It never touches the
// filesystem except in the listing and existence helpers.
type Layout struct {
	root string
}

// New returns a Layout rooted at dir.
func New(dir string) Layout {
	return Layout{root: dir}
}

// HomeDir returns the user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("%w: home directory not set", ErrConfiguration)
	}
	return home, nil
}

// DefaultRoot returns <home>/.rchidrun/plugins.
func DefaultRoot() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rchidrun", "plugins"), nil
}

// ValidateLanguage rejects names that would not map to exactly one directory
// directly under the root.
func ValidateLanguage(language string) error {
	if language == "" || language == "." || language == ".." ||
		strings.ContainsAny(language, `/\`) || filepath.Base(language) != language {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, language)
	}
	return nil
}

// Default returns a Layout rooted at DefaultRoot.
func Default() (Layout, error) {
	root, err := DefaultRoot()
	if err != nil {
		return Layout{}, err
	}
	return New(root), nil
}

// Root returns the SDK root directory.
func (l Layout) Root() string {
	return l.root
}

// Dir returns the directory holding a language's runtime.
func (l Layout) Dir(language string) string {
	return filepath.Join(l.root, language)
}

// ArtifactPath returns the runtime artifact path for a language.
func (l Layout) ArtifactPath(language string) string {
	return filepath.Join(l.root, language, ArtifactName)
}

// Installed reports whether the runtime artifact for a language exists.
func (l Layout) Installed(language string) bool {
	info, err := os.Stat(l.ArtifactPath(language))
	return err == nil && !info.IsDir()
}

// ListInstalled returns the names of the immediate subdirectories of the root,
// in directory order. An unreadable or missing root yields an empty list.
func (l Layout) ListInstalled() []string {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}

// Remove deletes a language's directory. Removing a language that is not
// installed is not an error.
func (l Layout) Remove(language string) error {
	if err := ValidateLanguage(language); err != nil {
		return err
	}
	if err := os.RemoveAll(l.Dir(language)); err != nil {
		return fmt.Errorf("remove %s: %w", language, err)
	}
	return nil
}
