package sdk

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDefaultRoot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	root, err := DefaultRoot()
	if err != nil {
		t.Fatalf("DefaultRoot: %v", err)
	}
	want := filepath.Join(home, ".rchidrun", "plugins")
	if root != want {
		t.Errorf("DefaultRoot() = %q, want %q", root, want)
	}
}

func TestDefaultRootWithoutHome(t *testing.T) {
	t.Setenv("HOME", "")
	// os.UserHomeDir on unix only consults $HOME.
	if _, err := DefaultRoot(); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestArtifactPathDeterministic(t *testing.T) {
	l := New("/sdk")
	a := l.ArtifactPath("python")
	b := l.ArtifactPath("python")
	if a != b {
		t.Errorf("ArtifactPath not deterministic: %q vs %q", a, b)
	}
	if want := filepath.Join("/sdk", "python", ArtifactName); a != want {
		t.Errorf("ArtifactPath = %q, want %q", a, want)
	}
}

func TestArtifactPathDoesNotTouchFilesystem(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")
	_ = New(root).ArtifactPath("python")
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Errorf("root should not be created, stat err = %v", err)
	}
}

func TestInstalled(t *testing.T) {
	l := New(t.TempDir())
	if l.Installed("python") {
		t.Fatal("python should not be installed yet")
	}

	os.MkdirAll(l.Dir("python"), 0755)
	if l.Installed("python") {
		t.Fatal("empty language dir should not count as installed")
	}

	os.WriteFile(l.ArtifactPath("python"), []byte("\x00asm"), 0644)
	if !l.Installed("python") {
		t.Error("python should be installed")
	}
}

func TestListInstalled(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "python"), 0755)
	os.MkdirAll(filepath.Join(root, "cobol"), 0755)
	os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644)

	got := New(root).ListInstalled()
	slices.Sort(got)
	want := []string{"cobol", "python"}
	if !slices.Equal(got, want) {
		t.Errorf("ListInstalled() = %v, want %v", got, want)
	}
}

func TestListInstalledMissingRoot(t *testing.T) {
	got := New(filepath.Join(t.TempDir(), "nope")).ListInstalled()
	if len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

func TestRemove(t *testing.T) {
	l := New(t.TempDir())
	os.MkdirAll(l.Dir("ruby"), 0755)
	os.WriteFile(l.ArtifactPath("ruby"), []byte("x"), 0644)

	if err := l.Remove("ruby"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(l.Dir("ruby")); !os.IsNotExist(err) {
		t.Error("ruby dir should be removed")
	}
	if err := l.Remove("ruby"); err != nil {
		t.Errorf("removing twice should not fail: %v", err)
	}
}

func TestRemoveRejectsTraversal(t *testing.T) {
	l := New(t.TempDir())
	for _, name := range []string{"", ".", "..", "../x", "a/b"} {
		if err := l.Remove(name); !errors.Is(err, ErrInvalidLanguage) {
			t.Errorf("Remove(%q) = %v, want ErrInvalidLanguage", name, err)
		}
	}
}

func TestValidateLanguage(t *testing.T) {
	for _, name := range []string{"python", "c++", "ruby-3.3", ".hidden"} {
		if err := ValidateLanguage(name); err != nil {
			t.Errorf("ValidateLanguage(%q) = %v, want nil", name, err)
		}
	}
	for _, name := range []string{"", ".", "..", "../x", "a/b", `a\b`, "/abs"} {
		if err := ValidateLanguage(name); !errors.Is(err, ErrInvalidLanguage) {
			t.Errorf("ValidateLanguage(%q) = %v, want ErrInvalidLanguage", name, err)
		}
	}
}

func TestHomeDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := HomeDir()
	if err != nil || got != home {
		t.Errorf("HomeDir() = %q, %v; want %q", got, err, home)
	}

	t.Setenv("HOME", "")
	if _, err := HomeDir(); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}
