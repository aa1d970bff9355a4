package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wpmirror/wpmirror/internal/errs"
	"github.com/wpmirror/wpmirror/internal/logger"
	"github.com/wpmirror/wpmirror/internal/pathsafe"
	"github.com/wpmirror/wpmirror/internal/utils"
)

// Report summarizes one archive extraction.
type Report struct {
	FilesWritten int
	DirsCreated  int
	Skipped      int // entries rejected by the traversal check
}

// Extractor materializes zip archives under a destination root. Normalize
// rewrites resolved paths for the target platform (long-path handling);
// leave it nil to get the platform default.
type Extractor struct {
	Normalize pathsafe.Normalizer
}

func New() *Extractor {
	return &Extractor{Normalize: pathsafe.Default()}
}

// Unzip extracts every entry of the in-memory archive under destRoot.
// Entries whose path contains a ".." segment or is absolute are skipped and
// never written. An unreadable archive aborts with *errs.BadArchiveError; the
// first filesystem error aborts the whole archive, leaving whatever was
// already written (the caller treats the plugin as failed either way).
func (e *Extractor) Unzip(data []byte, destRoot string) (*Report, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &errs.BadArchiveError{Err: err}
	}

	normalize := e.Normalize
	if normalize == nil {
		normalize = pathsafe.Default()
	}

	report := &Report{}

	for _, f := range zr.File {
		segments, ok := safeSegments(f.Name)
		if !ok {
			logger.Debug("skipping unsafe archive entry %q", f.Name)
			report.Skipped++
			continue
		}
		if len(segments) == 0 {
			continue
		}

		dest := normalize(filepath.Join(destRoot, filepath.Join(segments...)))

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return report, fmt.Errorf("create directory %s: %w", dest, err)
			}
			report.DirsCreated++
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return report, fmt.Errorf("create parent of %s: %w", dest, err)
		}

		if err := writeEntry(f, dest); err != nil {
			return report, err
		}
		report.FilesWritten++
	}

	return report, nil
}

// safeSegments splits a zip entry name into path segments, reporting false
// for names that could escape the destination root. Zip names use forward
// slashes, but archives built on Windows sometimes carry backslashes.
func safeSegments(name string) ([]string, bool) {
	if name == "" {
		return nil, true
	}
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) || filepath.IsAbs(name) {
		return nil, false
	}

	raw := strings.FieldsFunc(name, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		switch s {
		case "", ".":
			continue
		case "..":
			return nil, false
		}
		segments = append(segments, s)
	}
	return segments, true
}

func writeEntry(f *zip.File, dest string) error {
	src, err := f.Open()
	if err != nil {
		return &errs.BadArchiveError{Err: fmt.Errorf("open entry %s: %w", f.Name, err)}
	}
	defer utils.Try(src.Close)

	dst, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}

	_, copyErr := io.Copy(dst, src)
	closeErr := dst.Close()

	if copyErr != nil {
		return fmt.Errorf("write %s: %w", dest, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", dest, closeErr)
	}
	return nil
}
