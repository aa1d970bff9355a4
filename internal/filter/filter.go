package filter

import (
	"time"

	"github.com/wpmirror/wpmirror/internal/models"
)

// lastUpdatedLayout matches the registry's last_updated field,
// e.g. "2024-03-18 7:41am GMT".
const lastUpdatedLayout = "2006-01-02 3:04pm MST"

// recencyWindowYears defines how old a plugin may be: anything last updated
// before (current year - recencyWindowYears) is rejected.
const recencyWindowYears = 2

// Criteria holds the install-count bounds applied during enumeration and
// re-checked by the download manager. A nil MaxInstalls means unbounded.
type Criteria struct {
	MinInstalls int
	MaxInstalls *int
}

// InBounds reports whether the plugin's install count satisfies the criteria.
func (c Criteria) InBounds(p *models.Plugin) bool {
	if p.ActiveInstalls < c.MinInstalls {
		return false
	}
	if c.MaxInstalls != nil && p.ActiveInstalls > *c.MaxInstalls {
		return false
	}
	return true
}

// Accepts is the full enumeration predicate: install bounds plus the
// last-updated recency window. A last_updated value that does not parse
// rejects the plugin; stale metadata must not abort enumeration.
func Accepts(p *models.Plugin, c Criteria, now time.Time) bool {
	if !c.InBounds(p) {
		return false
	}

	updated, err := time.Parse(lastUpdatedLayout, p.LastUpdated)
	if err != nil {
		return false
	}
	return updated.Year() >= now.Year()-recencyWindowYears
}
