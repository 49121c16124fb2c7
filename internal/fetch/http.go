package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"wikiqa/internal/logging"
)

// ProgressFunc receives the bytes written so far and the expected total, or -1 when unknown.
type ProgressFunc func(written, total int64)

// HTTPFetcher downloads over HTTP(S) with net/http.
type HTTPFetcher struct {
	Client   *http.Client
	Progress ProgressFunc
}

// Fetch streams the response body into dest. The body lands in a temporary
// sibling first and is renamed once complete.
func (f HTTPFetcher) Fetch(ctx context.Context, url, dest string) error {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger := logging.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	logger.Info("downloading archive", zap.String("url", url), zap.Int64("content_length", resp.ContentLength))

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".part-*")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	var w io.Writer = tmp
	if f.Progress != nil {
		w = &progressWriter{w: tmp, total: resp.ContentLength, report: f.Progress}
	}
	written, err := io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp archive: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("rename archive: %w", err)
	}
	committed = true
	logger.Info("archive downloaded", zap.String("path", dest), zap.Int64("bytes", written))
	return nil
}

type progressWriter struct {
	w       io.Writer
	written int64
	total   int64
	report  ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	p.report(p.written, p.total)
	return n, err
}
