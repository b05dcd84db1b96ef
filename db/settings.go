package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const settingsKey = "app_settings"

// AppSettings is the user-facing configuration persisted as a single JSON
// row. The database is the sole source of truth for these preferences; there
// is no separate config-file store.
type AppSettings struct {
	Theme              string `json:"theme"`
	DownloadDir        string `json:"download_dir"`
	CrawlPages         int    `json:"crawl_pages"`
	AutoRefreshPopular bool   `json:"auto_refresh_popular"`
	PreferredPeriod    string `json:"preferred_period"`
}

// DefaultSettings are returned when no settings row exists yet.
func DefaultSettings() AppSettings {
	return AppSettings{
		Theme:           "dark",
		CrawlPages:      5,
		PreferredPeriod: "month",
	}
}

// GetSettings reads the settings row, returning defaults when none exists.
func (d *Database) GetSettings() (AppSettings, error) {
	var row Setting
	err := d.gorm.Where("key = ?", settingsKey).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return AppSettings{}, err
	}

	var settings AppSettings
	if err := json.Unmarshal([]byte(row.Value), &settings); err != nil {
		return AppSettings{}, fmt.Errorf("corrupt settings row: %w", err)
	}
	return settings, nil
}

// SaveSettings writes the settings row, last write wins.
func (d *Database) SaveSettings(settings AppSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	return d.transaction(func(tx *gorm.DB) error {
		row := Setting{Key: settingsKey, Value: string(raw), UpdatedAt: time.Now()}
		return tx.Save(&row).Error
	})
}
