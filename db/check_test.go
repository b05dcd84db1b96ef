package db

import "testing"

func checkByName(t *testing.T, results []CheckResult, name string) CheckResult {
	t.Helper()
	for _, r := range results {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("check %q not found in results", name)
	return CheckResult{}
}

func TestRunChecksFreshDatabase(t *testing.T) {
	d := openTestDB(t)

	for _, r := range d.RunChecks() {
		if !r.Passed {
			t.Errorf("check %q failed on a fresh database: %s", r.Name, r.Detail)
		}
	}
}

func TestRunChecksFlagsMissingCleanNames(t *testing.T) {
	d := openTestDB(t)

	rec := sampleRepack("https://example.com/a/", "Game A")
	rec.CleanName = ""
	if err := d.gorm.Create(&rec).Error; err != nil {
		t.Fatalf("failed to create degraded row: %v", err)
	}

	r := checkByName(t, d.RunChecks(), "repacks without clean names")
	if r.Passed {
		t.Error("check passed despite a repack with no clean name")
	}
}

func TestRunChecksFlagsDuplicateRanks(t *testing.T) {
	d := openTestDB(t)

	rows := []PopularRepack{
		{Period: "month", Rank: 1, URL: "https://example.com/a/"},
		{Period: "month", Rank: 1, URL: "https://example.com/b/"},
	}
	if err := d.gorm.Create(&rows).Error; err != nil {
		t.Fatalf("failed to create degraded rows: %v", err)
	}

	r := checkByName(t, d.RunChecks(), "duplicate popular ranks")
	if r.Passed {
		t.Error("check passed despite duplicate ranks in one period")
	}
}
