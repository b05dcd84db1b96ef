// Package service is the synchronous command surface the CLI and any
// embedding UI call into: crawling, popularity refresh, catalog queries, and
// settings. Each call returns a final count or result; there is no streaming.
package service

import (
	"context"
	"errors"
	"fmt"

	"repack-catalog/crawler"
	"repack-catalog/db"
	"repack-catalog/logger"

	"go.uber.org/zap"
)

// Engine wires the site registry, the blacklist, and the catalog store
// together. Blacklist filtering and title normalization happen here, between
// adapter output and store input.
type Engine struct {
	DB        *db.Database
	Sites     *crawler.Registry
	Blacklist *crawler.Blacklist
}

func New(database *db.Database, sites *crawler.Registry, blacklist *crawler.Blacklist) *Engine {
	return &Engine{DB: database, Sites: sites, Blacklist: blacklist}
}

// CrawlResult summarizes one crawl run.
type CrawlResult struct {
	SiteID      string
	Pages       int // pages that yielded entries
	Saved       int // records written to the catalog
	Blacklisted int // entries dropped by the blacklist
}

// The incremental update never walks deeper than this; if ten pages of a
// listing are all new, a full crawl is the right tool.
const incrementalPageLimit = 10

// CrawlSite crawls up to pages listing pages of one site sequentially,
// persisting each page's batch before fetching the next. A page with no
// entries ends the run (end of listing); a failed page is logged and skipped
// — pages already persisted stay valid, and re-running the same crawl is
// safe because upserts are idempotent.
func (e *Engine) CrawlSite(ctx context.Context, site crawler.Site, startPage, pages int) (CrawlResult, error) {
	result := CrawlResult{SiteID: site.ID()}

	for page := startPage; page < startPage+pages; page++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		repacks, err := site.CrawlPage(ctx, page)
		if err != nil {
			if errors.Is(err, crawler.ErrNoEntries) {
				logger.Log.Infow("No entry blocks found, stopping",
					zap.String("site", site.ID()), zap.Int("page", page))
				return result, nil
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return result, err
			}
			logger.Log.Warnw("Page fetch failed, skipping",
				zap.String("site", site.ID()), zap.Int("page", page), zap.Error(err))
			continue
		}
		if len(repacks) == 0 {
			logger.Log.Infow("No more content",
				zap.String("site", site.ID()), zap.Int("page", page))
			return result, nil
		}

		saved, dropped, err := e.persistBatch(site, repacks)
		if err != nil {
			return result, fmt.Errorf("persist page %d: %w", page, err)
		}
		result.Pages++
		result.Saved += saved
		result.Blacklisted += dropped
		logger.Log.Infow("Page persisted",
			zap.String("site", site.ID()), zap.Int("page", page), zap.Int("saved", saved))
	}
	return result, nil
}

// CrawlAll crawls every enabled site. One site failing does not stop the
// others.
func (e *Engine) CrawlAll(ctx context.Context, startPage, pages int) ([]CrawlResult, error) {
	var results []CrawlResult
	for _, site := range e.Sites.Enabled() {
		result, err := e.CrawlSite(ctx, site, startPage, pages)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return results, err
			}
			logger.Log.Errorw("Site crawl failed",
				zap.String("site", site.ID()), zap.Error(err))
		}
		results = append(results, result)
	}
	return results, nil
}

// IncrementalUpdate crawls from page 1 until it reaches a page with no
// unknown URLs — a cheap freshness check that assumes listings are ordered
// newest first.
func (e *Engine) IncrementalUpdate(ctx context.Context, site crawler.Site) (CrawlResult, error) {
	result := CrawlResult{SiteID: site.ID()}

	for page := 1; page <= incrementalPageLimit; page++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		repacks, err := site.CrawlPage(ctx, page)
		if err != nil || len(repacks) == 0 {
			if err != nil && !errors.Is(err, crawler.ErrNoEntries) {
				logger.Log.Warnw("Update stopped on page error",
					zap.String("site", site.ID()), zap.Int("page", page), zap.Error(err))
			}
			return result, nil
		}

		unknown := repacks[:0]
		for _, r := range repacks {
			exists, err := e.DB.URLExists(r.URL)
			if err != nil {
				return result, err
			}
			if !exists {
				unknown = append(unknown, r)
			}
		}
		if len(unknown) == 0 {
			return result, nil // caught up
		}

		saved, dropped, err := e.persistBatch(site, unknown)
		if err != nil {
			return result, fmt.Errorf("persist page %d: %w", page, err)
		}
		result.Pages++
		result.Saved += saved
		result.Blacklisted += dropped
	}
	return result, nil
}

// persistBatch filters, normalizes, and upserts one page's worth of raw
// candidates in a single transaction.
func (e *Engine) persistBatch(site crawler.Site, repacks []crawler.GameRepack) (saved, blacklisted int, err error) {
	records := make([]db.Repack, 0, len(repacks))
	for _, r := range repacks {
		blocked, err := e.Blacklist.IsBlacklisted(r.URL, r.Title)
		if err != nil {
			return 0, 0, fmt.Errorf("blacklist check: %w", err)
		}
		if blocked {
			blacklisted++
			continue
		}
		records = append(records, e.toRecord(site, r))
	}

	saved, err = e.DB.UpsertBatch(records)
	return saved, blacklisted, err
}

func (e *Engine) toRecord(site crawler.Site, r crawler.GameRepack) db.Repack {
	record := db.Repack{
		URL:             r.URL,
		Site:            site.ID(),
		Title:           r.Title,
		CleanName:       crawler.CleanGameTitle(r.Title),
		GenresTags:      r.GenresTags,
		Company:         r.Company,
		Languages:       r.Languages,
		OriginalSize:    r.OriginalSize,
		RepackSize:      r.RepackSize,
		RepackSizeBytes: crawler.ParseSizeBytes(r.RepackSize),
		PublishedDate:   r.Date,
		ImageURL:        r.ImageURL,
	}
	for _, m := range r.MagnetLinks {
		record.MagnetLinks = append(record.MagnetLinks, db.MagnetLink{
			Source: m.Source,
			Magnet: m.Magnet,
		})
	}
	return record
}
