package installer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

func (i *Installer) installFromURL(ctx context.Context, r FromURL) error {
	if r.URL == "" {
		return fmt.Errorf("%w: url required", ErrDownloadFailed)
	}

	dir := i.layout.Dir(r.Language)
	cleanup, err := prepareDir(dir)
	if err != nil {
		return err
	}

	i.logger.Debug("downloading runtime", "language", r.Language, "url", r.URL)
	if err := i.download(ctx, r, dir); err != nil {
		cleanup()
		return err
	}
	return nil
}

func (i *Installer) download(ctx context.Context, r FromURL, dir string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned %s", ErrDownloadFailed, r.URL, resp.Status)
	}

	tmp, err := os.CreateTemp(dir, ".runtime-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	hash := sha256.New()
	out := &trackingWriter{w: tmp}
	n, err := io.Copy(io.MultiWriter(out, hash), resp.Body)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		out.err = closeErr
		err = closeErr
	}
	if err != nil {
		if out.err != nil {
			return fmt.Errorf("%w: write %s: %w", ErrFilesystem, tmpPath, out.err)
		}
		return fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	if r.SHA256 != "" {
		got := hex.EncodeToString(hash.Sum(nil))
		if !strings.EqualFold(got, strings.TrimSpace(r.SHA256)) {
			return fmt.Errorf("%w: got sha256 %s, want %s", ErrChecksumMismatch, got, r.SHA256)
		}
	}

	dest := i.layout.ArtifactPath(r.Language)
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	i.logger.Debug("runtime downloaded", "language", r.Language, "bytes", n, "path", dest)
	return nil
}

// trackingWriter remembers write errors so they can be told apart from
// errors reading the response body.
type trackingWriter struct {
	w   io.Writer
	err error
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil {
		t.err = err
	}
	return n, err
}
