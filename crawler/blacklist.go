package crawler

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Blacklist is a file-backed set of lowercase substring patterns used to
// drop unwanted listing entries. The file is re-read on every check, so
// edits take effect without restarting a crawl in progress. One pattern per
// line; blank lines and lines starting with '#' are ignored.
type Blacklist struct {
	path string
}

func NewBlacklist(path string) *Blacklist {
	return &Blacklist{path: path}
}

func (b *Blacklist) Path() string {
	return b.path
}

// Patterns loads the current pattern set from disk. A missing file is an
// empty blacklist, not an error.
func (b *Blacklist) Patterns() ([]string, error) {
	f, err := os.Open(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read blacklist %q: %w", b.path, err)
	}
	defer f.Close()

	seen := make(map[string]struct{})
	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.ToLower(line)
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read blacklist %q: %w", b.path, err)
	}
	sort.Strings(patterns)
	return patterns, nil
}

// IsBlacklisted reports whether any pattern is a case-insensitive substring
// of the candidate URL or title. A blacklist that exists but cannot be read
// is an error: treating it as empty would let blocked entries through.
func (b *Blacklist) IsBlacklisted(url, title string) (bool, error) {
	patterns, err := b.Patterns()
	if err != nil {
		return false, err
	}

	urlLower := strings.ToLower(url)
	titleLower := strings.ToLower(title)
	for _, p := range patterns {
		if strings.Contains(urlLower, p) || strings.Contains(titleLower, p) {
			return true, nil
		}
	}
	return false, nil
}

// Add appends a pattern and rewrites the file. No-op for empty or comment
// input and for patterns already present.
func (b *Blacklist) Add(pattern string) error {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" || strings.HasPrefix(pattern, "#") {
		return nil
	}

	patterns, err := b.Patterns()
	if err != nil {
		return err
	}
	for _, p := range patterns {
		if p == pattern {
			return nil
		}
	}
	return b.save(append(patterns, pattern))
}

// Remove deletes a pattern and rewrites the file. Returns true when the
// pattern was present.
func (b *Blacklist) Remove(pattern string) (bool, error) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	patterns, err := b.Patterns()
	if err != nil {
		return false, err
	}

	kept := patterns[:0]
	found := false
	for _, p := range patterns {
		if p == pattern {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return false, nil
	}
	return true, b.save(kept)
}

// Clear removes all patterns, keeping the file with only its header.
func (b *Blacklist) Clear() error {
	return b.save(nil)
}

func (b *Blacklist) save(patterns []string) error {
	sort.Strings(patterns)

	var sb strings.Builder
	sb.WriteString("# Blacklist for pages to skip during crawling\n")
	sb.WriteString("# Add one URL pattern or title per line\n")
	sb.WriteString("# Lines starting with # are comments\n\n")
	for _, p := range patterns {
		sb.WriteString(p)
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(b.path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write blacklist %q: %w", b.path, err)
	}
	return nil
}
