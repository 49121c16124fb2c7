package archive

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"wikiqa/internal/logging"
)

// TarGzExtractor unpacks gzip-compressed tarballs in-process. Only
// directories and regular files are materialized; other entry types are skipped.
type TarGzExtractor struct{}

func (TarGzExtractor) Extract(ctx context.Context, path, dir string) error {
	logger := logging.FromContext(ctx)
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("open gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	files := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read archive: %w", err)
		}
		target, err := entryPath(dir, header.Name)
		if err != nil {
			return err
		}
		info := header.FileInfo()
		switch {
		case info.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", header.Name, err)
			}
		case info.Mode().IsRegular():
			if err := writeEntry(target, tr); err != nil {
				return fmt.Errorf("extract %s: %w", header.Name, err)
			}
			files++
		default:
			logger.Debug("skipping archive entry", zap.String("name", header.Name), zap.String("type", string(header.Typeflag)))
		}
	}
	logger.Info("archive extracted", zap.String("archive", path), zap.Int("files", files))
	return nil
}

// entryPath maps an archive entry name to a path under dir.
func entryPath(dir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", &UnsafePathError{Entry: name}
	}
	return filepath.Join(dir, cleaned), nil
}

func writeEntry(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
