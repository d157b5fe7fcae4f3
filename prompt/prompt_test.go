package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestIsYes(t *testing.T) {
	tests := map[string]bool{
		"y":      true,
		"Y":      true,
		" y ":    true,
		"yes":    false,
		"n":      false,
		"":       false,
		"\ty\n": true,
	}
	for in, want := range tests {
		if got := IsYes(in); got != want {
			t.Errorf("IsYes(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLineConfirm(t *testing.T) {
	var out bytes.Buffer
	p := NewLine(strings.NewReader("Y\nn\n"), &out)

	ok, err := p.Confirm("Install it?")
	if err != nil || !ok {
		t.Fatalf("first Confirm = %v, %v; want true", ok, err)
	}
	ok, err = p.Confirm("Again?")
	if err != nil || ok {
		t.Fatalf("second Confirm = %v, %v; want false", ok, err)
	}
	if !strings.Contains(out.String(), "Install it? (y/n): ") {
		t.Errorf("prompt not written, got %q", out.String())
	}
}

func TestLineAskTrims(t *testing.T) {
	p := NewLine(strings.NewReader("  https://example.com/rt.wasm \r\n"), &bytes.Buffer{})
	got, err := p.Ask("URL: ")
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://example.com/rt.wasm" {
		t.Errorf("Ask() = %q", got)
	}
}

func TestLineAskLastLineWithoutNewline(t *testing.T) {
	p := NewLine(strings.NewReader("y"), &bytes.Buffer{})
	ok, err := p.Confirm("?")
	if err != nil || !ok {
		t.Errorf("Confirm = %v, %v; want true", ok, err)
	}
}

func TestLineAskEOF(t *testing.T) {
	p := NewLine(strings.NewReader(""), &bytes.Buffer{})
	if _, err := p.Ask("?"); !errors.Is(err, ErrNoInput) {
		t.Errorf("expected ErrNoInput, got %v", err)
	}
}

func TestCanned(t *testing.T) {
	c := &Canned{Answers: []string{"y", " url "}}

	ok, err := c.Confirm("q1")
	if err != nil || !ok {
		t.Fatalf("Confirm = %v, %v", ok, err)
	}
	url, err := c.Ask("q2")
	if err != nil || url != "url" {
		t.Fatalf("Ask = %q, %v", url, err)
	}
	if _, err := c.Ask("q3"); !errors.Is(err, ErrNoInput) {
		t.Errorf("expected ErrNoInput once answers run out, got %v", err)
	}
	if len(c.Asked) != 3 {
		t.Errorf("Asked = %v", c.Asked)
	}
}

func TestLineLeavesRemainingInput(t *testing.T) {
	in := strings.NewReader("y\nprint('hello')\n")
	p := NewLine(in, &bytes.Buffer{})

	ok, err := p.Confirm("Install it?")
	if err != nil || !ok {
		t.Fatalf("Confirm = %v, %v; want true", ok, err)
	}
	rest, _ := io.ReadAll(in)
	if string(rest) != "print('hello')\n" {
		t.Errorf("remaining input = %q, want the line after the answer", rest)
	}
}
