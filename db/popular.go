package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// PopularCandidate is one ranked entry handed over by a site adapter.
// Rank is implied by slice order.
type PopularCandidate struct {
	URL      string
	Title    string
	ImageURL string
}

// ReplaceSnapshot replaces a period's trending rows with a fresh snapshot in
// one transaction: old rows are deleted, new rows inserted with rank 1..N.
// FirstSeenAt is carried over for URLs already present in the prior snapshot
// so unseen counts stay meaningful across refreshes. Each entry is linked to
// a catalog row by exact URL match when one exists.
//
// An empty snapshot is treated as a no-op that keeps the prior rows: the
// sites occasionally serve a transiently empty page and wiping a period over
// that would be destructive.
func (d *Database) ReplaceSnapshot(period string, entries []PopularCandidate) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	// Feeds occasionally repeat a URL; keep the first (best-ranked) row so a
	// duplicate cannot trip the period+url unique index and roll back the
	// whole refresh.
	seen := make(map[string]struct{}, len(entries))
	unique := make([]PopularCandidate, 0, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.URL]; ok {
			continue
		}
		seen[entry.URL] = struct{}{}
		unique = append(unique, entry)
	}
	entries = unique

	now := time.Now()
	saved := 0
	err := d.transaction(func(tx *gorm.DB) error {
		var prior []PopularRepack
		if err := tx.Select("url", "first_seen_at").
			Where("period = ?", period).
			Find(&prior).Error; err != nil {
			return err
		}
		firstSeen := make(map[string]time.Time, len(prior))
		for _, p := range prior {
			firstSeen[p.URL] = p.FirstSeenAt
		}

		if err := tx.Where("period = ?", period).Delete(&PopularRepack{}).Error; err != nil {
			return err
		}

		for i, entry := range entries {
			row := PopularRepack{
				Period:      period,
				Rank:        i + 1,
				URL:         entry.URL,
				Title:       entry.Title,
				ImageURL:    entry.ImageURL,
				FirstSeenAt: now,
			}
			if seen, ok := firstSeen[entry.URL]; ok {
				row.FirstSeenAt = seen
			}
			if id, err := repackIDByURL(tx, entry.URL); err != nil {
				return err
			} else if id != 0 {
				row.RepackID = &id
			}

			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return saved, nil
}

func repackIDByURL(tx *gorm.DB, url string) (uint, error) {
	var repack Repack
	err := tx.Select("id").Where("url = ?", url).First(&repack).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return repack.ID, nil
}

// PopularByPeriod returns a period's snapshot in rank order. A limit of
// zero or less returns every row.
func (d *Database) PopularByPeriod(period string, limit int) ([]PopularRepack, error) {
	query := d.gorm.Where("period = ?", period).Order("rank ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []PopularRepack
	err := query.Find(&rows).Error
	return rows, err
}

// RelinkPopular links unlinked snapshot rows whose URL has since appeared in
// the catalog. Returns the number of rows newly linked.
func (d *Database) RelinkPopular(period string) (int64, error) {
	var affected int64
	err := d.transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
			UPDATE popular_repacks
			SET repack_id = (SELECT id FROM repacks WHERE repacks.url = popular_repacks.url)
			WHERE period = ? AND repack_id IS NULL
			  AND EXISTS (SELECT 1 FROM repacks WHERE repacks.url = popular_repacks.url)`,
			period)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

// MarkViewed records that a period's snapshot has been viewed now. View
// state only ever moves by this explicit action.
func (d *Database) MarkViewed(period string) error {
	return d.transaction(func(tx *gorm.DB) error {
		var state PopularViewState
		err := tx.Where("period = ?", period).First(&state).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&PopularViewState{Period: period, LastViewedAt: time.Now()}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&state).Update("last_viewed_at", time.Now()).Error
	})
}

// UnseenCount counts a period's entries first seen after the period was last
// viewed. A period never viewed counts every entry.
func (d *Database) UnseenCount(period string) (int64, error) {
	var state PopularViewState
	err := d.gorm.Where("period = ?", period).First(&state).Error

	query := d.gorm.Model(&PopularRepack{}).Where("period = ?", period)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// never viewed: everything is unseen
	case err != nil:
		return 0, err
	default:
		query = query.Where("first_seen_at > ?", state.LastViewedAt)
	}

	var count int64
	err = query.Count(&count).Error
	return count, err
}
