package crawler

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Sidebar widget headings the today/week feeds live under.
const (
	sidebarTitleToday = "Today's Most Popular Repacks"
	sidebarTitleWeek  = "Most Popular Repacks of the Week"
)

// parsePopularGrid parses the month/year popularity pages: a grid of cover
// tiles inside the main article body. Rank is implied by document order.
func parsePopularGrid(doc *goquery.Document) ([]PopularEntry, error) {
	content := doc.Find("article .entry-content").First()
	if content.Length() == 0 {
		return nil, fmt.Errorf("popular page: %w", ErrNoEntries)
	}

	var entries []PopularEntry
	content.Find("div.widget-grid-view-image").Each(func(_ int, tile *goquery.Selection) {
		if entry, ok := gridEntry(tile); ok {
			entries = append(entries, entry)
		}
	})
	return entries, nil
}

// parseAwardList parses the curated award page, a plain category list with
// no cover images.
func parseAwardList(doc *goquery.Document) ([]PopularEntry, error) {
	list := doc.Find("article .entry-content ul.lcp_catlist").First()
	if list.Length() == 0 {
		return nil, fmt.Errorf("award page: %w", ErrNoEntries)
	}

	var entries []PopularEntry
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		link := li.Find("a").First()
		if link.Length() == 0 {
			return
		}
		url, _ := link.Attr("href")
		title := strings.TrimSpace(link.Text())
		if url == "" || title == "" {
			return
		}
		entries = append(entries, PopularEntry{URL: url, Title: title})
	})
	return entries, nil
}

// parseSidebarPopular finds the sidebar widget whose heading contains
// sectionTitle and extracts its grid tiles. The today and week feeds only
// exist as sidebar widgets, so a missing section is an extraction error.
func parseSidebarPopular(doc *goquery.Document, sectionTitle string) ([]PopularEntry, error) {
	var entries []PopularEntry

	doc.Find("div.jetpack_top_posts_widget").EachWithBreak(func(_ int, widget *goquery.Selection) bool {
		heading := widget.Find("h2.widgettitle").First()
		if heading.Length() == 0 || !strings.Contains(heading.Text(), sectionTitle) {
			return true
		}

		widget.Find("div.widget-grid-view-image").Each(func(_ int, tile *goquery.Selection) {
			if entry, ok := gridEntry(tile); ok {
				entries = append(entries, entry)
			}
		})
		return false
	})

	if len(entries) == 0 {
		return nil, fmt.Errorf("sidebar section %q: %w", sectionTitle, ErrNoEntries)
	}
	return entries, nil
}

// gridEntry extracts one cover tile. The title lives in the anchor's title
// attribute, not its text.
func gridEntry(tile *goquery.Selection) (PopularEntry, bool) {
	link := tile.Find("a").First()
	if link.Length() == 0 {
		return PopularEntry{}, false
	}

	url, _ := link.Attr("href")
	title, _ := link.Attr("title")
	if url == "" || title == "" {
		return PopularEntry{}, false
	}

	imageURL, _ := tile.Find("img").First().Attr("src")
	return PopularEntry{URL: url, Title: title, ImageURL: imageURL}, true
}
