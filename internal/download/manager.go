package download

import (
	"context"
	"os"
	"path/filepath"

	"github.com/wpmirror/wpmirror/internal/extract"
	"github.com/wpmirror/wpmirror/internal/filter"
	"github.com/wpmirror/wpmirror/internal/logger"
	"github.com/wpmirror/wpmirror/internal/models"
	"github.com/wpmirror/wpmirror/internal/pathsafe"
	"github.com/wpmirror/wpmirror/internal/registry"
)

// Status is the terminal state of one plugin's download attempt.
type Status int

const (
	StatusExtracted Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusExtracted:
		return "extracted"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome is a tagged per-plugin result. Skips are expected and frequent;
// only Failed carries a genuine error behind Reason.
type Outcome struct {
	Slug   string
	Status Status
	Reason string
}

// Summary counts terminal states across a batch.
type Summary struct {
	Extracted int
	Skipped   int
	Failed    int
}

// Manager downloads and extracts accepted plugins one at a time. A failure
// is confined to its plugin; the batch always runs to completion.
type Manager struct {
	Registry    registry.Fetcher
	Extractor   *extract.Extractor
	Criteria    filter.Criteria
	DownloadDir string
	Normalize   pathsafe.Normalizer
}

func New(reg registry.Fetcher, downloadDir string, criteria filter.Criteria) *Manager {
	return &Manager{
		Registry:    reg,
		Extractor:   extract.New(),
		Criteria:    criteria,
		DownloadDir: downloadDir,
		Normalize:   pathsafe.Default(),
	}
}

// ProcessAll runs Process over the batch sequentially and logs a completion
// summary regardless of how many plugins failed.
func (m *Manager) ProcessAll(ctx context.Context, plugins []models.Plugin) Summary {
	var sum Summary
	for i := range plugins {
		out := m.Process(ctx, &plugins[i])
		switch out.Status {
		case StatusExtracted:
			sum.Extracted++
		case StatusSkipped:
			sum.Skipped++
			logger.Debug("skipped %s: %s", out.Slug, out.Reason)
		case StatusFailed:
			sum.Failed++
			logger.LogError("plugin %s failed: %s", out.Slug, out.Reason)
		}
	}
	logger.Success("batch complete: %d extracted, %d skipped, %d failed",
		sum.Extracted, sum.Skipped, sum.Failed)
	return sum
}

// Process takes one plugin from Pending to a terminal state:
// Skipped (bounds or missing link), Failed (network, archive, filesystem)
// or Extracted.
func (m *Manager) Process(ctx context.Context, p *models.Plugin) Outcome {
	// Records normally arrive pre-filtered, but cached sets may have been
	// written under different bounds.
	if !m.Criteria.InBounds(p) {
		return Outcome{Slug: p.Slug, Status: StatusSkipped, Reason: "install count out of bounds"}
	}
	if p.DownloadLink == "" {
		return Outcome{Slug: p.Slug, Status: StatusSkipped, Reason: "no download link"}
	}

	target := m.targetDir(p.Slug)

	// Stale contents from a previous run must never linger next to new
	// files. Removal is best-effort.
	if _, err := os.Stat(target); err == nil {
		logger.Debug("removing previous copy of %s", p.Slug)
		if err := os.RemoveAll(target); err != nil {
			logger.Warn("could not fully remove old %s: %v", target, err)
		}
	}

	logger.Debug("downloading %s", p.Slug)

	data, err := m.Registry.FetchArchive(ctx, p.DownloadLink)
	if err != nil {
		return Outcome{Slug: p.Slug, Status: StatusFailed, Reason: "download: " + err.Error()}
	}

	if _, err := m.Extractor.Unzip(data, target); err != nil {
		return Outcome{Slug: p.Slug, Status: StatusFailed, Reason: "extract: " + err.Error()}
	}

	return Outcome{Slug: p.Slug, Status: StatusExtracted}
}

func (m *Manager) targetDir(slug string) string {
	target := filepath.Join(m.DownloadDir, "plugins", slug)
	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}
	if m.Normalize != nil {
		target = m.Normalize(target)
	}
	return target
}
