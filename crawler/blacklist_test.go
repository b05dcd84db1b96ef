package crawler

import (
	"os"
	"path/filepath"
	"testing"
)

func writeBlacklistFile(t *testing.T, lines string) *Blacklist {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blacklist.txt")
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatalf("failed to write blacklist file: %v", err)
	}
	return NewBlacklist(path)
}

func TestBlacklistPatterns(t *testing.T) {
	bl := writeBlacklistFile(t, "# header comment\n\nUpcoming Repacks\nupcoming repacks\n  digest  \n")

	patterns, err := bl.Patterns()
	if err != nil {
		t.Fatalf("Patterns() error: %v", err)
	}
	if len(patterns) != 2 {
		t.Fatalf("Patterns() = %v, want 2 deduplicated entries", patterns)
	}
	if patterns[0] != "digest" || patterns[1] != "upcoming repacks" {
		t.Errorf("Patterns() = %v, want sorted lowercase [digest, upcoming repacks]", patterns)
	}
}

func TestBlacklistMissingFile(t *testing.T) {
	bl := NewBlacklist(filepath.Join(t.TempDir(), "nope.txt"))

	patterns, err := bl.Patterns()
	if err != nil {
		t.Fatalf("Patterns() on missing file: %v", err)
	}
	if patterns != nil {
		t.Errorf("Patterns() on missing file = %v, want nil", patterns)
	}
	blocked, err := bl.IsBlacklisted("https://example.com/game/", "Game")
	if err != nil {
		t.Fatalf("IsBlacklisted() on missing file: %v", err)
	}
	if blocked {
		t.Error("IsBlacklisted should be false with no blacklist file")
	}
}

func TestBlacklistUnreadable(t *testing.T) {
	// a directory at the blacklist path fails on read, not on open
	bl := NewBlacklist(t.TempDir())

	if _, err := bl.Patterns(); err == nil {
		t.Error("Patterns() = nil error for an unreadable blacklist")
	}
	blocked, err := bl.IsBlacklisted("https://example.com/blocked/", "Blocked Game")
	if err == nil {
		t.Error("IsBlacklisted() = nil error for an unreadable blacklist")
	}
	if blocked {
		t.Error("IsBlacklisted() = true, want false with the error")
	}
}

func TestIsBlacklisted(t *testing.T) {
	bl := writeBlacklistFile(t, "upcoming repacks\n/digest/\n")

	tests := []struct {
		name     string
		url      string
		title    string
		expected bool
	}{
		{"title substring match", "https://example.com/a1/", "Upcoming Repacks #42", true},
		{"case insensitive title", "https://example.com/a2/", "UPCOMING REPACKS", true},
		{"url substring match", "https://example.com/digest/2025/", "Weekly Post", true},
		{"clean entry", "https://example.com/some-game/", "Some Game", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bl.IsBlacklisted(tt.url, tt.title)
			if err != nil {
				t.Fatalf("IsBlacklisted(%q, %q) error: %v", tt.url, tt.title, err)
			}
			if got != tt.expected {
				t.Errorf("IsBlacklisted(%q, %q) = %v, want %v", tt.url, tt.title, got, tt.expected)
			}
		})
	}
}

func TestBlacklistHotReload(t *testing.T) {
	bl := writeBlacklistFile(t, "")

	blocked, err := bl.IsBlacklisted("https://example.com/game/", "Some Game")
	if err != nil {
		t.Fatalf("IsBlacklisted() error: %v", err)
	}
	if blocked {
		t.Fatal("empty blacklist should not match")
	}

	// edits to the file take effect on the next check, no reload step
	if err := os.WriteFile(bl.Path(), []byte("some game\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite blacklist: %v", err)
	}
	blocked, err = bl.IsBlacklisted("https://example.com/game/", "Some Game")
	if err != nil {
		t.Fatalf("IsBlacklisted() after rewrite error: %v", err)
	}
	if !blocked {
		t.Error("pattern added on disk was not picked up")
	}
}

func TestBlacklistAddRemoveClear(t *testing.T) {
	bl := NewBlacklist(filepath.Join(t.TempDir(), "blacklist.txt"))

	if err := bl.Add("  Soundtrack  "); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := bl.Add("soundtrack"); err != nil {
		t.Fatalf("Add() duplicate error: %v", err)
	}
	if err := bl.Add("# not a pattern"); err != nil {
		t.Fatalf("Add() comment error: %v", err)
	}
	if err := bl.Add("bundle"); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	patterns, err := bl.Patterns()
	if err != nil {
		t.Fatalf("Patterns() error: %v", err)
	}
	if len(patterns) != 2 {
		t.Fatalf("after adds Patterns() = %v, want [bundle, soundtrack]", patterns)
	}

	removed, err := bl.Remove("SoundTrack")
	if err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if !removed {
		t.Error("Remove() = false for present pattern")
	}
	removed, err = bl.Remove("soundtrack")
	if err != nil {
		t.Fatalf("Remove() second call error: %v", err)
	}
	if removed {
		t.Error("Remove() = true for absent pattern")
	}

	if err := bl.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	patterns, err = bl.Patterns()
	if err != nil {
		t.Fatalf("Patterns() after Clear error: %v", err)
	}
	if len(patterns) != 0 {
		t.Errorf("Patterns() after Clear = %v, want empty", patterns)
	}
}
