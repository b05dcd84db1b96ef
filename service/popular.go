package service

import (
	"context"
	"fmt"

	"repack-catalog/crawler"
	"repack-catalog/db"
	"repack-catalog/logger"

	"go.uber.org/zap"
)

// RefreshPopular fetches a period's ranked snapshot from the site and
// replaces the stored rows for that period. Returns the number of rows
// saved; a site serving an empty feed leaves the prior snapshot in place and
// returns zero.
func (e *Engine) RefreshPopular(ctx context.Context, site crawler.Site, period string) (int, error) {
	entries, err := site.FetchPopular(ctx, period)
	if err != nil {
		return 0, fmt.Errorf("fetch popular %s/%s: %w", site.ID(), period, err)
	}
	if len(entries) == 0 {
		logger.Log.Warnw("Empty popular snapshot, keeping prior rows",
			zap.String("site", site.ID()), zap.String("period", period))
		return 0, nil
	}

	candidates := make([]db.PopularCandidate, 0, len(entries))
	for _, entry := range entries {
		candidates = append(candidates, db.PopularCandidate{
			URL:      entry.URL,
			Title:    entry.Title,
			ImageURL: entry.ImageURL,
		})
	}
	return e.DB.ReplaceSnapshot(period, candidates)
}

// FetchPopularDetails crawls the detail pages of snapshot entries that are
// not yet linked to a catalog row, persists them, and relinks the period.
// Returns how many entries were fetched and how many failed.
func (e *Engine) FetchPopularDetails(ctx context.Context, site crawler.Site, period string) (fetched, failed int, err error) {
	rows, err := e.DB.PopularByPeriod(period, 0)
	if err != nil {
		return 0, 0, err
	}

	for _, row := range rows {
		if row.RepackID != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fetched, failed, err
		}

		repack, err := site.CrawlSingle(ctx, row.URL)
		if err != nil {
			failed++
			logger.Log.Warnw("Detail fetch failed",
				zap.String("url", row.URL), zap.Error(err))
			continue
		}
		if repack == nil {
			failed++
			continue
		}

		saved, _, err := e.persistBatch(site, []crawler.GameRepack{*repack})
		if err != nil {
			return fetched, failed, err
		}
		fetched += saved
	}

	if _, err := e.DB.RelinkPopular(period); err != nil {
		return fetched, failed, err
	}
	return fetched, failed, nil
}
