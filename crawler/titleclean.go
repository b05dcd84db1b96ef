package crawler

import (
	"regexp"
	"strings"
)

// Stripping rules applied in order. Order matters: the broad "+ everything
// after" rule must run after the comma-version rules so a title like
// "Game, v1.2 + 4 DLCs" loses the whole suffix in one pass.
var cleanRules = []*regexp.Regexp{
	// Everything after the first slash ("v20220613/Build 8796429")
	regexp.MustCompile(`/.*`),
	// Comma followed by a version (", v1.5.1 (26.09.25)")
	regexp.MustCompile(`,\s*v\d+.*`),
	// Comma followed by a build number
	regexp.MustCompile(`,\s*Build\s+\d+.*`),
	// Dashed version tokens (- v1.0.1)
	regexp.MustCompile(`\s*[–—-]\s*v\d+(?:\.\d+)*`),
	// Dashed build numbers (- Build 12345)
	regexp.MustCompile(`\s*[–—-]\s*[Bb]uild\s+\d+`),
	// Revision tokens (- r34045, .r49909, standalone r34045)
	regexp.MustCompile(`\s*[–—-]\s*r\d+`),
	regexp.MustCompile(`\.r\d+`),
	regexp.MustCompile(`\s+r\d+\b`),
	// Dashed date stamps (- 26.09.2025, - 20250831_2044-123)
	regexp.MustCompile(`\s*[–—-]\s*\d{1,2}\.\d{1,2}\.\d{4}`),
	regexp.MustCompile(`\s*[–—-]\s*\d{8}_\d{4}-\d+`),
	// Edition suffixes after a dash, colon, or comma
	regexp.MustCompile(`\s*[–—:-]\s*(?:Digital\s+)?(?:Deluxe|Premium|Ultimate|Gold|Special|Collector'?s?|Game\s+of\s+[Tt]he\s+Year)\s+Edition`),
	regexp.MustCompile(`,\s*(?:Digital\s+)?(?:Deluxe|Premium|Ultimate|Gold|Special|Collector'?s?|Game\s+of\s+[Tt]he\s+Year)\s+Edition`),
	// DLC counts and everything following them ("+ 5 DLCs", "+ Bonus OST")
	regexp.MustCompile(`\s*\+.*`),
	// Parenthetical and bracketed annotations (Denuvoless), [FitGirl]
	regexp.MustCompile(`\s*\([^)]*\)`),
	regexp.MustCompile(`\s*\[[^\]]*\]`),
	// Platform indicators
	regexp.MustCompile(`\s*[–—-]\s*(?:GOG|Steam|GOG/Steam|MS|Epic|Origin|Uplay|Battle\.net)\b`),
	regexp.MustCompile(`\s+(?:GOG|Steam|MS|Epic|Origin|Uplay|Battle\.net)$`),
	// Trailing build numbers after a version ("v1.2 build 456")
	regexp.MustCompile(`\s+build\s+\d+`),
	// Hotfix suffixes
	regexp.MustCompile(`\s*[–—-]\s*Hotfix\s+\d+`),
	// Standalone "Release" at the end
	regexp.MustCompile(`\s*[–—-]?\s*Release$`),
	// "Data Pack 1.2" suffixes
	regexp.MustCompile(`\s*Data\s+Pack\s+\d+\.\d+$`),
	// Repack-group branding suffixes
	regexp.MustCompile(`\s*[–—-]\s*(?:Monkey|Turtle|Compressed|BetterRepack|FitGirl|DODI).*$`),
	// Remaining edition variants
	regexp.MustCompile(`\s*[–—-]\s*(?:Jackdaw|Supporter|Anniversary|Limited|Enhanced|Definitive|Remastered|Director'?s?\s+Cut|Master\s+Crafted)\s+Edition`),
}

var (
	spaceRun     = regexp.MustCompile(`\s+`)
	trailingJunk = regexp.MustCompile(`[,:–—\s-]+$`)
	leadingJunk  = regexp.MustCompile(`^[,:–—\s-]+`)
)

// CleanGameTitle derives the canonical display name from a raw scraped
// title: branding, version/build tokens, DLC and size annotations are
// stripped, whitespace collapsed. Deterministic, and never returns an empty
// string — when stripping would empty the title the raw input is returned.
func CleanGameTitle(title string) string {
	cleaned := title
	for _, re := range cleanRules {
		cleaned = re.ReplaceAllString(cleaned, "")
	}

	cleaned = strings.TrimSpace(cleaned)
	cleaned = spaceRun.ReplaceAllString(cleaned, " ")
	cleaned = trailingJunk.ReplaceAllString(cleaned, "")
	cleaned = leadingJunk.ReplaceAllString(cleaned, "")

	if cleaned == "" {
		return strings.TrimSpace(title)
	}
	return cleaned
}
