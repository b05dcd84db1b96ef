package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// UpsertBatch writes a crawled batch in one transaction. Records are looked
// up by URL: absent rows are inserted, present rows have their mutable
// fields refreshed. Magnet links are replaced wholesale; category
// associations are upserted by case-insensitive name. Records missing a URL
// or title are skipped before the transaction starts. Returns the number of
// records actually written; on a transaction failure nothing is committed
// and the same batch can be retried safely.
func (d *Database) UpsertBatch(records []Repack) (int, error) {
	valid := make([]Repack, 0, len(records))
	for _, r := range records {
		if r.URL == "" || r.Title == "" {
			continue // expected noise in source markup, not an error
		}
		valid = append(valid, r)
	}
	if len(valid) == 0 {
		return 0, nil
	}

	touched := 0
	err := d.transaction(func(tx *gorm.DB) error {
		for i := range valid {
			if err := upsertRepack(tx, &valid[i]); err != nil {
				return fmt.Errorf("upsert %q: %w", valid[i].URL, err)
			}
			touched++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return touched, nil
}

func upsertRepack(tx *gorm.DB, rec *Repack) error {
	magnets := rec.MagnetLinks
	categories := categoryNames(rec.GenresTags)
	rec.MagnetLinks = nil
	rec.Categories = nil

	var existing Repack
	err := tx.Where("url = ?", rec.URL).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		rec.ID = existing.ID
		// Everything except url and created_at is mutable.
		updates := map[string]any{
			"site":              rec.Site,
			"title":             rec.Title,
			"clean_name":        rec.CleanName,
			"genres_tags":       rec.GenresTags,
			"company":           rec.Company,
			"languages":         rec.Languages,
			"original_size":     rec.OriginalSize,
			"repack_size":       rec.RepackSize,
			"repack_size_bytes": rec.RepackSizeBytes,
			"published_date":    rec.PublishedDate,
			"image_url":         rec.ImageURL,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
	}

	// Source pages carry no stable magnet identifiers: replace, don't diff.
	if err := tx.Where("repack_id = ?", rec.ID).Delete(&MagnetLink{}).Error; err != nil {
		return err
	}
	for i := range magnets {
		magnets[i].ID = 0
		magnets[i].RepackID = rec.ID
	}
	if len(magnets) > 0 {
		if err := tx.Create(&magnets).Error; err != nil {
			return err
		}
	}

	cats := make([]Category, 0, len(categories))
	for _, name := range categories {
		var cat Category
		err := tx.Where("name = ? COLLATE NOCASE", name).First(&cat).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cat = Category{Name: name}
			if err := tx.Create(&cat).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		cats = append(cats, cat)
	}
	return tx.Model(&Repack{ID: rec.ID}).Association("Categories").Replace(cats)
}

// categoryNames splits a "Genres/Tags" value into individual labels.
func categoryNames(genresTags string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(genresTags, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Search returns repacks whose title or clean name contains the query,
// most recently updated first.
func (d *Database) Search(query string, limit int) ([]Repack, error) {
	pattern := "%" + query + "%"
	var repacks []Repack
	err := d.gorm.
		Where("title LIKE ? OR clean_name LIKE ?", pattern, pattern).
		Order("updated_at DESC").
		Limit(limit).
		Find(&repacks).Error
	return repacks, err
}

// GetRepack loads one repack with its magnet links and categories.
func (d *Database) GetRepack(id uint) (*Repack, error) {
	var repack Repack
	err := d.gorm.
		Preload("MagnetLinks").
		Preload("Categories").
		First(&repack, id).Error
	if err != nil {
		return nil, err
	}
	return &repack, nil
}

// AllRepacks pages through the catalog, most recently updated first.
func (d *Database) AllRepacks(limit, offset int) ([]Repack, error) {
	var repacks []Repack
	err := d.gorm.
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&repacks).Error
	return repacks, err
}

// URLExists reports whether a repack with this URL is already cataloged.
func (d *Database) URLExists(url string) (bool, error) {
	var count int64
	err := d.gorm.Model(&Repack{}).Where("url = ?", url).Count(&count).Error
	return count > 0, err
}

// CategoriesWithCounts returns every category with its repack count,
// most-used first.
func (d *Database) CategoriesWithCounts() ([]CategoryWithCount, error) {
	var out []CategoryWithCount
	err := d.gorm.
		Table("categories").
		Select("categories.id, categories.name, COUNT(game_categories.repack_id) AS game_count").
		Joins("LEFT JOIN game_categories ON game_categories.category_id = categories.id").
		Group("categories.id").
		Order("game_count DESC, categories.name ASC").
		Scan(&out).Error
	return out, err
}

// GetStats summarizes the catalog: row totals plus the ten most used
// categories.
func (d *Database) GetStats() (Stats, error) {
	var stats Stats
	if err := d.gorm.Model(&Repack{}).Count(&stats.TotalRepacks).Error; err != nil {
		return stats, err
	}
	if err := d.gorm.Model(&MagnetLink{}).Count(&stats.TotalMagnets).Error; err != nil {
		return stats, err
	}
	if err := d.gorm.Model(&Category{}).Count(&stats.TotalCategories).Error; err != nil {
		return stats, err
	}

	categories, err := d.CategoriesWithCounts()
	if err != nil {
		return stats, err
	}
	if len(categories) > 10 {
		categories = categories[:10]
	}
	stats.TopCategories = categories
	return stats, nil
}
