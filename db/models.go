package db

import (
	"time"
)

// Repack is one cataloged game release. URL is the natural key: crawling is
// made idempotent by upserting on it, so a record with no URL is never
// persisted.
type Repack struct {
	ID              uint   `gorm:"primarykey"`
	URL             string `gorm:"uniqueIndex;not null"`
	Site            string `gorm:"index"` // Adapter id the record came from
	Title           string `gorm:"index"`
	CleanName       string `gorm:"index"` // Normalized display title
	GenresTags      string
	Company         string
	Languages       string
	OriginalSize    string
	RepackSize      string
	RepackSizeBytes int64  // Parsed from RepackSize, 0 when unparseable
	PublishedDate   string // As published by the site, ISO-ish
	ImageURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	MagnetLinks []MagnetLink `gorm:"constraint:OnDelete:CASCADE"`
	Categories  []Category   `gorm:"many2many:game_categories;constraint:OnDelete:CASCADE"`
}

// MagnetLink is one download link owned by a Repack. Links are replaced
// wholesale on every upsert since source pages carry no stable identifiers.
type MagnetLink struct {
	ID        uint   `gorm:"primarykey"`
	RepackID  uint   `gorm:"index;not null"`
	Source    string // Label shown next to the link on the page
	Magnet    string
	CreatedAt time.Time
}

// Category is a genre/tag label, created lazily on first sighting and
// deduplicated case-insensitively by name.
type Category struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

// PopularRepack is one ranked row of a trending snapshot. Refreshing a
// period replaces all of its rows; FirstSeenAt survives the replace for URLs
// already present in the prior snapshot so "new since last viewed" can be
// computed.
type PopularRepack struct {
	ID          uint   `gorm:"primarykey"`
	Period      string `gorm:"index:idx_popular_period_rank;uniqueIndex:idx_popular_period_url"`
	Rank        int    `gorm:"index:idx_popular_period_rank"`
	URL         string `gorm:"uniqueIndex:idx_popular_period_url"`
	Title       string
	ImageURL    string
	RepackID    *uint // Linked catalog row, nil when not yet crawled
	FirstSeenAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PopularViewState records when a period's snapshot was last viewed. One row
// per period, written only by an explicit mark-viewed action.
type PopularViewState struct {
	ID           uint   `gorm:"primarykey"`
	Period       string `gorm:"uniqueIndex"`
	LastViewedAt time.Time
}

// Setting is the opaque application settings blob, one logical row keyed by
// settingsKey.
type Setting struct {
	Key       string `gorm:"primaryKey"`
	Value     string // JSON-encoded AppSettings
	UpdatedAt time.Time
}

// CategoryWithCount is a category plus the number of repacks tagged with it.
type CategoryWithCount struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	GameCount int64  `json:"game_count"`
}

// Stats summarizes the catalog.
type Stats struct {
	TotalRepacks    int64               `json:"total_repacks"`
	TotalMagnets    int64               `json:"total_magnets"`
	TotalCategories int64               `json:"total_categories"`
	TopCategories   []CategoryWithCount `json:"top_categories"`
}
