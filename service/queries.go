package service

import "repack-catalog/db"

// Read-side and settings pass-throughs. They exist so CLI and UI callers
// depend on the engine alone and never reach into the store directly.

func (e *Engine) Search(query string, limit int) ([]db.Repack, error) {
	return e.DB.Search(query, limit)
}

func (e *Engine) AllRepacks(limit, offset int) ([]db.Repack, error) {
	return e.DB.AllRepacks(limit, offset)
}

func (e *Engine) GetRepack(id uint) (*db.Repack, error) {
	return e.DB.GetRepack(id)
}

func (e *Engine) Stats() (db.Stats, error) {
	return e.DB.GetStats()
}

func (e *Engine) MarkPopularViewed(period string) error {
	return e.DB.MarkViewed(period)
}

func (e *Engine) UnseenCount(period string) (int64, error) {
	return e.DB.UnseenCount(period)
}

func (e *Engine) GetSettings() (db.AppSettings, error) {
	return e.DB.GetSettings()
}

func (e *Engine) SaveSettings(settings db.AppSettings) error {
	return e.DB.SaveSettings(settings)
}
