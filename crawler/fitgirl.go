package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"repack-catalog/config"

	"github.com/PuerkitoBio/goquery"
)

const fitgirlBaseURL = "https://fitgirl-repacks.site"

// FitGirl is the adapter for fitgirl-repacks.site. It owns its HTTP client,
// per-request timeout, and inter-request delay; blacklist filtering and
// normalization happen downstream.
type FitGirl struct {
	client    *http.Client
	baseURL   string
	userAgent string
	delay     time.Duration
	enabled   bool
}

// NewFitGirl creates the FitGirl adapter using the provided configuration.
func NewFitGirl(cfg config.Config) *FitGirl {
	return &FitGirl{
		client: &http.Client{
			Timeout: time.Duration(cfg.HTTPTimeoutSecs) * time.Second,
		},
		baseURL:   fitgirlBaseURL,
		userAgent: cfg.UserAgent,
		delay:     time.Duration(cfg.CrawlDelaySeconds) * time.Second,
		enabled:   true,
	}
}

func (f *FitGirl) ID() string      { return "fitgirl" }
func (f *FitGirl) Name() string    { return "FitGirl Repacks" }
func (f *FitGirl) BaseURL() string { return f.baseURL }
func (f *FitGirl) Enabled() bool   { return f.enabled }

// pageURL maps a page number to a listing URL. Page 1 is the site root.
func (f *FitGirl) pageURL(page int) string {
	if page <= 1 {
		return f.baseURL
	}
	return fmt.Sprintf("%s/page/%d/", f.baseURL, page)
}

// fetchDocument applies the inter-request delay, fetches one URL, and parses
// it. The delay sleep is cancellable so a crawl can stop between pages.
func (f *FitGirl) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}
	return doc, nil
}

// CrawlPage fetches one listing page and returns its raw candidates. A page
// with articles but zero valid entries yields an empty slice; a page with no
// article blocks at all reports ErrNoEntries.
func (f *FitGirl) CrawlPage(ctx context.Context, page int) ([]GameRepack, error) {
	doc, err := f.fetchDocument(ctx, f.pageURL(page))
	if err != nil {
		return nil, err
	}

	if doc.Find("article").Length() == 0 {
		return nil, fmt.Errorf("page %d: %w", page, ErrNoEntries)
	}
	return extractEntries(doc), nil
}

// CrawlSingle fetches one detail page. A page without an extractable entry
// returns (nil, nil), not an error.
func (f *FitGirl) CrawlSingle(ctx context.Context, url string) (*GameRepack, error) {
	doc, err := f.fetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	article := doc.Find("article").First()
	if article.Length() == 0 {
		return nil, nil
	}
	return extractEntry(article, url), nil
}

// FetchPopular returns the ranked snapshot for a period. The month, year,
// and award feeds have dedicated pages; today and week live in sidebar
// widgets on the site root. Unknown periods yield an empty snapshot.
func (f *FitGirl) FetchPopular(ctx context.Context, period string) ([]PopularEntry, error) {
	switch period {
	case PeriodMonth, PeriodYear, PeriodAward:
		url := map[string]string{
			PeriodMonth: f.baseURL + "/popular-repacks/",
			PeriodYear:  f.baseURL + "/popular-repacks-of-the-year/",
			PeriodAward: f.baseURL + "/games-with-my-personal-pink-paw-award/",
		}[period]

		doc, err := f.fetchDocument(ctx, url)
		if err != nil {
			return nil, err
		}
		if period == PeriodAward {
			return parseAwardList(doc)
		}
		return parsePopularGrid(doc)

	case PeriodToday, PeriodWeek:
		doc, err := f.fetchDocument(ctx, f.baseURL)
		if err != nil {
			return nil, err
		}
		title := sidebarTitleToday
		if period == PeriodWeek {
			title = sidebarTitleWeek
		}
		return parseSidebarPopular(doc, title)

	default:
		return nil, nil
	}
}
