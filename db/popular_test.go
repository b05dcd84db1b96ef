package db

import (
	"testing"
	"time"
)

func candidates(urls ...string) []PopularCandidate {
	out := make([]PopularCandidate, len(urls))
	for i, u := range urls {
		out[i] = PopularCandidate{URL: u, Title: "Title " + u}
	}
	return out
}

func TestReplaceSnapshotRanks(t *testing.T) {
	d := openTestDB(t)

	saved, err := d.ReplaceSnapshot("month", candidates(
		"https://example.com/a/", "https://example.com/b/", "https://example.com/c/"))
	if err != nil {
		t.Fatalf("ReplaceSnapshot() error: %v", err)
	}
	if saved != 3 {
		t.Fatalf("ReplaceSnapshot() = %d, want 3", saved)
	}

	rows, err := d.PopularByPeriod("month", 0)
	if err != nil {
		t.Fatalf("PopularByPeriod() error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("PopularByPeriod() = %d rows, want 3", len(rows))
	}
	for i, row := range rows {
		if row.Rank != i+1 {
			t.Errorf("rows[%d].Rank = %d, want %d", i, row.Rank, i+1)
		}
	}
	if rows[0].URL != "https://example.com/a/" {
		t.Errorf("rank 1 URL = %q, want the first candidate", rows[0].URL)
	}
}

func TestReplaceSnapshotPreservesFirstSeen(t *testing.T) {
	d := openTestDB(t)

	if _, err := d.ReplaceSnapshot("month", candidates("https://example.com/a/", "https://example.com/b/")); err != nil {
		t.Fatalf("first ReplaceSnapshot() error: %v", err)
	}
	before, err := d.PopularByPeriod("month", 0)
	if err != nil {
		t.Fatalf("PopularByPeriod() error: %v", err)
	}
	firstSeenA := before[0].FirstSeenAt

	// stored timestamps have sub-second resolution; keep the refresh clearly later
	time.Sleep(50 * time.Millisecond)

	// a/ carries over at a new rank, b/ drops out, c/ is new
	if _, err := d.ReplaceSnapshot("month", candidates("https://example.com/c/", "https://example.com/a/")); err != nil {
		t.Fatalf("second ReplaceSnapshot() error: %v", err)
	}

	after, err := d.PopularByPeriod("month", 0)
	if err != nil {
		t.Fatalf("PopularByPeriod() error: %v", err)
	}
	if len(after) != 2 {
		t.Fatalf("snapshot has %d rows after replace, want 2", len(after))
	}
	if after[0].URL != "https://example.com/c/" || after[1].URL != "https://example.com/a/" {
		t.Errorf("replaced snapshot order = [%s, %s]", after[0].URL, after[1].URL)
	}
	if !after[1].FirstSeenAt.Equal(firstSeenA) {
		t.Errorf("FirstSeenAt for carried-over URL = %v, want preserved %v", after[1].FirstSeenAt, firstSeenA)
	}
	if !after[0].FirstSeenAt.After(firstSeenA) {
		t.Errorf("FirstSeenAt for new URL = %v, want later than %v", after[0].FirstSeenAt, firstSeenA)
	}
}

func TestReplaceSnapshotDeduplicatesURLs(t *testing.T) {
	d := openTestDB(t)

	saved, err := d.ReplaceSnapshot("month", candidates(
		"https://example.com/a/", "https://example.com/b/", "https://example.com/a/"))
	if err != nil {
		t.Fatalf("ReplaceSnapshot() error: %v", err)
	}
	if saved != 2 {
		t.Errorf("ReplaceSnapshot() = %d, want 2 (duplicate URL dropped)", saved)
	}

	rows, err := d.PopularByPeriod("month", 0)
	if err != nil {
		t.Fatalf("PopularByPeriod() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("snapshot rows = %d, want 2", len(rows))
	}
	for i, row := range rows {
		if row.Rank != i+1 {
			t.Errorf("rows[%d].Rank = %d, want contiguous ranks after dedup", i, row.Rank)
		}
	}
	if rows[0].URL != "https://example.com/a/" || rows[1].URL != "https://example.com/b/" {
		t.Errorf("snapshot order = [%s, %s], want first occurrence kept", rows[0].URL, rows[1].URL)
	}
}

func TestReplaceSnapshotEmptyIsNoOp(t *testing.T) {
	d := openTestDB(t)

	if _, err := d.ReplaceSnapshot("week", candidates("https://example.com/a/")); err != nil {
		t.Fatalf("ReplaceSnapshot() error: %v", err)
	}

	saved, err := d.ReplaceSnapshot("week", nil)
	if err != nil {
		t.Fatalf("empty ReplaceSnapshot() error: %v", err)
	}
	if saved != 0 {
		t.Errorf("empty ReplaceSnapshot() = %d, want 0", saved)
	}

	rows, err := d.PopularByPeriod("week", 0)
	if err != nil {
		t.Fatalf("PopularByPeriod() error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("prior snapshot has %d rows after empty refresh, want 1 kept", len(rows))
	}
}

func TestReplaceSnapshotPeriodsIsolated(t *testing.T) {
	d := openTestDB(t)

	if _, err := d.ReplaceSnapshot("month", candidates("https://example.com/m1/", "https://example.com/m2/")); err != nil {
		t.Fatalf("ReplaceSnapshot(month) error: %v", err)
	}
	if _, err := d.ReplaceSnapshot("year", candidates("https://example.com/y1/")); err != nil {
		t.Fatalf("ReplaceSnapshot(year) error: %v", err)
	}

	// refreshing month must not touch year
	if _, err := d.ReplaceSnapshot("month", candidates("https://example.com/m3/")); err != nil {
		t.Fatalf("second ReplaceSnapshot(month) error: %v", err)
	}

	month, err := d.PopularByPeriod("month", 0)
	if err != nil {
		t.Fatalf("PopularByPeriod(month) error: %v", err)
	}
	year, err := d.PopularByPeriod("year", 0)
	if err != nil {
		t.Fatalf("PopularByPeriod(year) error: %v", err)
	}
	if len(month) != 1 || month[0].URL != "https://example.com/m3/" {
		t.Errorf("month snapshot = %+v, want only the refreshed row", month)
	}
	if len(year) != 1 || year[0].URL != "https://example.com/y1/" {
		t.Errorf("year snapshot = %+v, want untouched", year)
	}
}

func TestReplaceSnapshotLinksCatalogRows(t *testing.T) {
	d := openTestDB(t)

	if _, err := d.UpsertBatch([]Repack{sampleRepack("https://example.com/known/", "Known Game")}); err != nil {
		t.Fatalf("UpsertBatch() error: %v", err)
	}

	if _, err := d.ReplaceSnapshot("month", candidates("https://example.com/known/", "https://example.com/unknown/")); err != nil {
		t.Fatalf("ReplaceSnapshot() error: %v", err)
	}

	rows, err := d.PopularByPeriod("month", 0)
	if err != nil {
		t.Fatalf("PopularByPeriod() error: %v", err)
	}
	if rows[0].RepackID == nil {
		t.Error("cataloged URL not linked to its repack row")
	}
	if rows[1].RepackID != nil {
		t.Error("unknown URL linked to a repack row")
	}
}

func TestRelinkPopular(t *testing.T) {
	d := openTestDB(t)

	if _, err := d.ReplaceSnapshot("month", candidates("https://example.com/later/")); err != nil {
		t.Fatalf("ReplaceSnapshot() error: %v", err)
	}

	// catalog row appears after the snapshot was taken
	if _, err := d.UpsertBatch([]Repack{sampleRepack("https://example.com/later/", "Later Game")}); err != nil {
		t.Fatalf("UpsertBatch() error: %v", err)
	}

	linked, err := d.RelinkPopular("month")
	if err != nil {
		t.Fatalf("RelinkPopular() error: %v", err)
	}
	if linked != 1 {
		t.Errorf("RelinkPopular() = %d, want 1", linked)
	}

	rows, err := d.PopularByPeriod("month", 0)
	if err != nil {
		t.Fatalf("PopularByPeriod() error: %v", err)
	}
	if rows[0].RepackID == nil {
		t.Error("snapshot row still unlinked after RelinkPopular")
	}
}

func TestUnseenCount(t *testing.T) {
	d := openTestDB(t)

	if _, err := d.ReplaceSnapshot("month", candidates("https://example.com/a/", "https://example.com/b/")); err != nil {
		t.Fatalf("ReplaceSnapshot() error: %v", err)
	}

	unseen, err := d.UnseenCount("month")
	if err != nil {
		t.Fatalf("UnseenCount() error: %v", err)
	}
	if unseen != 2 {
		t.Errorf("UnseenCount() before viewing = %d, want 2", unseen)
	}

	if err := d.MarkViewed("month"); err != nil {
		t.Fatalf("MarkViewed() error: %v", err)
	}
	unseen, err = d.UnseenCount("month")
	if err != nil {
		t.Fatalf("UnseenCount() error: %v", err)
	}
	if unseen != 0 {
		t.Errorf("UnseenCount() after viewing = %d, want 0", unseen)
	}

	// stored timestamps have sub-second resolution; keep the refresh clearly later
	time.Sleep(50 * time.Millisecond)

	if _, err := d.ReplaceSnapshot("month", candidates(
		"https://example.com/a/", "https://example.com/b/", "https://example.com/c/")); err != nil {
		t.Fatalf("second ReplaceSnapshot() error: %v", err)
	}
	unseen, err = d.UnseenCount("month")
	if err != nil {
		t.Fatalf("UnseenCount() error: %v", err)
	}
	if unseen != 1 {
		t.Errorf("UnseenCount() after refresh = %d, want 1 (only the new entry)", unseen)
	}
}
