package crawler

import (
	"context"
	"errors"
)

// Popularity periods understood by FetchPopular.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAward = "award"
)

// AllPeriods lists every period in display order.
var AllPeriods = []string{PeriodToday, PeriodWeek, PeriodMonth, PeriodYear, PeriodAward}

// ErrNoEntries is returned when a page fetched with a 2xx status contains no
// recognizable entry blocks. It is distinct from a transport failure and from
// a page that simply has zero new games.
var ErrNoEntries = errors.New("no entry blocks found on page")

// Site is the capability contract every source site implements. Adapters own
// their base URL and rate-limit policy; they return raw, unfiltered
// candidates and leave blacklisting and normalization to the caller.
type Site interface {
	// ID returns the stable short identifier used as a registry key and
	// data partition key.
	ID() string
	// Name returns the human-readable site name.
	Name() string
	// BaseURL returns the site's root URL.
	BaseURL() string
	// Enabled reports whether the site should be included in crawl-all runs.
	Enabled() bool
	// CrawlPage fetches one listing page and returns its parsed candidates.
	// An empty result is not an error; transport failures and pages with no
	// entry blocks are.
	CrawlPage(ctx context.Context, page int) ([]GameRepack, error)
	// CrawlSingle fetches one detail page. It returns (nil, nil) when the
	// page lacks the minimum required fields.
	CrawlSingle(ctx context.Context, url string) (*GameRepack, error)
	// FetchPopular returns the ranked snapshot for a period. Sites without
	// a ranking feed return an empty list rather than an error.
	FetchPopular(ctx context.Context, period string) ([]PopularEntry, error)
}

// Registry holds the registered site adapters. New sites plug in by calling
// Register; nothing else in the engine changes.
type Registry struct {
	sites []Site
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(s Site) {
	r.sites = append(r.sites, s)
}

// Get returns the adapter with the given id, or nil.
func (r *Registry) Get(id string) Site {
	for _, s := range r.sites {
		if s.ID() == id {
			return s
		}
	}
	return nil
}

// Enabled returns all adapters currently enabled, in registration order.
func (r *Registry) Enabled() []Site {
	var out []Site
	for _, s := range r.sites {
		if s.Enabled() {
			out = append(out, s)
		}
	}
	return out
}

// All returns every registered adapter.
func (r *Registry) All() []Site {
	return r.sites
}
