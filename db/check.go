package db

import "fmt"

// CheckResult is the outcome of one integrity check.
type CheckResult struct {
	Name   string
	Passed bool
	Detail string
}

// RunChecks performs the database health checks surfaced by the check
// command: table presence, orphan-row detection, and data-quality spot
// checks. Every check runs even when earlier ones fail.
func (d *Database) RunChecks() []CheckResult {
	var results []CheckResult

	tables := []string{
		"repacks", "magnet_links", "categories",
		"game_categories", "popular_repacks", "settings",
	}
	for _, table := range tables {
		ok := d.gorm.Migrator().HasTable(table)
		detail := "present"
		if !ok {
			detail = "missing"
		}
		results = append(results, CheckResult{
			Name:   fmt.Sprintf("table %s", table),
			Passed: ok,
			Detail: detail,
		})
	}

	results = append(results, d.countCheck(
		"orphaned magnet links",
		`SELECT COUNT(*) FROM magnet_links
		 WHERE repack_id NOT IN (SELECT id FROM repacks)`,
	))
	results = append(results, d.countCheck(
		"orphaned category links",
		`SELECT COUNT(*) FROM game_categories
		 WHERE repack_id NOT IN (SELECT id FROM repacks)
		    OR category_id NOT IN (SELECT id FROM categories)`,
	))
	results = append(results, d.countCheck(
		"repacks without clean names",
		`SELECT COUNT(*) FROM repacks WHERE clean_name IS NULL OR clean_name = ''`,
	))
	results = append(results, d.countCheck(
		"duplicate popular ranks",
		`SELECT COUNT(*) FROM (
			SELECT period, rank FROM popular_repacks
			GROUP BY period, rank HAVING COUNT(*) > 1
		 )`,
	))

	return results
}

// countCheck passes when the query counts zero offending rows.
func (d *Database) countCheck(name, query string) CheckResult {
	var count int64
	if err := d.gorm.Raw(query).Scan(&count).Error; err != nil {
		return CheckResult{Name: name, Passed: false, Detail: err.Error()}
	}
	if count > 0 {
		return CheckResult{Name: name, Passed: false, Detail: fmt.Sprintf("%d found", count)}
	}
	return CheckResult{Name: name, Passed: true, Detail: "none"}
}
