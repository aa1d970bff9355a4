package enumerate

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wpmirror/wpmirror/internal/errs"
	"github.com/wpmirror/wpmirror/internal/filter"
	"github.com/wpmirror/wpmirror/internal/globalconfig"
	"github.com/wpmirror/wpmirror/internal/logger"
	"github.com/wpmirror/wpmirror/internal/models"
	"github.com/wpmirror/wpmirror/internal/registry"
)

// Enumerator walks the registry listing page by page, applying the filter
// criteria to every record. Page fetches run on a bounded worker pool; the
// combined result interleaves pages in completion order, which is fine since
// pages partition the registry.
type Enumerator struct {
	Registry    registry.Fetcher
	Criteria    filter.Criteria
	PerPage     int
	MaxPages    int // 0 means every page the registry reports
	Concurrency int

	// OnPageDone, when set, is invoked after each page task finishes
	// (successfully or not) with the number of completed pages and the total.
	OnPageDone func(done, total int)

	// now is swappable in tests; the recency window depends on it.
	now func() time.Time
}

func New(reg registry.Fetcher, criteria filter.Criteria) *Enumerator {
	return &Enumerator{
		Registry:    reg,
		Criteria:    criteria,
		PerPage:     globalconfig.DefaultPerPage,
		Concurrency: globalconfig.DefaultConcurrency,
		now:         time.Now,
	}
}

// Run fetches page 1 synchronously to learn the page count, then fans the
// full page range out across the worker pool. A page-level failure costs only
// that page's records; failing to bootstrap pagination fails the whole run.
func (e *Enumerator) Run(ctx context.Context) ([]models.Plugin, error) {
	if e.now == nil {
		e.now = time.Now
	}
	if e.PerPage <= 0 {
		e.PerPage = globalconfig.DefaultPerPage
	}

	first, err := e.Registry.FetchPage(ctx, 1, e.PerPage)
	if err != nil {
		return nil, fmt.Errorf("fetch first page: %w", err)
	}
	if first.Info.Pages <= 0 {
		return nil, errs.ErrNoPageInfo
	}

	total := first.Info.Pages
	if e.MaxPages > 0 && e.MaxPages < total {
		total = e.MaxPages
	}

	logger.Debug("enumerating %d pages (per_page=%d, concurrency=%d)", total, e.PerPage, e.Concurrency)

	var (
		mu       sync.Mutex
		accepted []models.Plugin
		done     atomic.Int64
		wg       sync.WaitGroup
	)

	pages := make(chan int)

	workers := e.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for page := range pages {
				batch := e.processPage(ctx, page)
				if len(batch) > 0 {
					mu.Lock()
					accepted = append(accepted, batch...)
					mu.Unlock()
				}
				n := int(done.Add(1))
				if e.OnPageDone != nil {
					e.OnPageDone(n, total)
				}
			}
		}()
	}

	for page := 1; page <= total; page++ {
		pages <- page
	}
	close(pages)
	wg.Wait()

	return accepted, nil
}

// processPage fetches and filters a single page. Failures contribute an
// empty batch, never an aborted run.
func (e *Enumerator) processPage(ctx context.Context, page int) []models.Plugin {
	resp, err := e.Registry.FetchPage(ctx, page, e.PerPage)
	if err != nil {
		logger.Warn("page %d failed, skipping: %v", page, err)
		return nil
	}

	now := e.now()
	var batch []models.Plugin
	for _, p := range resp.Plugins {
		if filter.Accepts(&p, e.Criteria, now) {
			batch = append(batch, p)
		}
	}
	return batch
}
