package crawler

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const listingEntryHTML = `
<article>
  <h1 class="entry-title"><a href="https://example.com/some-game/">Some Game – v1.0 + 2 DLCs</a></h1>
  <time class="entry-date" datetime="2025-08-12T10:00:00+00:00">August 12, 2025</time>
  <div class="entry-content">
    <p><img src="https://example.com/covers/some-game.jpg"></p>
    <h3>Some Game – v1.0</h3>
    <p>Genres/Tags: Action, RPG, Open world
    Companies: Studio X, Publisher Y
    Languages: ENG/RUS/MULTI12
    Original Size: 70.4 GB
    Repack Size: from 30.2 GB</p>
    <p>Download Mirrors (Direct Links)</p>
    <ul>
      <li>Filehoster: DataNodes | <a href="magnet:?xt=urn:btih:abc">magnet</a></li>
      <li><a href="magnet:?xt=urn:btih:def">.torrent file only</a></li>
    </ul>
  </div>
</article>`

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body>" + html + "</body></html>"))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

func TestExtractEntries(t *testing.T) {
	promo := `
<article>
  <div class="entry-content"><p>Site news, nothing to see here.</p></div>
</article>`
	doc := parseDoc(t, listingEntryHTML+promo)

	entries := extractEntries(doc)
	if len(entries) != 1 {
		t.Fatalf("extractEntries() returned %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.Title != "Some Game – v1.0 + 2 DLCs" {
		t.Errorf("Title = %q", e.Title)
	}
	if e.URL != "https://example.com/some-game/" {
		t.Errorf("URL = %q", e.URL)
	}
	if e.Date != "2025-08-12T10:00:00+00:00" {
		t.Errorf("Date = %q, want datetime attribute value", e.Date)
	}
	if e.GenresTags != "Action, RPG, Open world" {
		t.Errorf("GenresTags = %q", e.GenresTags)
	}
	if e.Company != "Studio X, Publisher Y" {
		t.Errorf("Company = %q", e.Company)
	}
	if e.Languages != "ENG/RUS/MULTI12" {
		t.Errorf("Languages = %q", e.Languages)
	}
	if e.OriginalSize != "70.4 GB" {
		t.Errorf("OriginalSize = %q", e.OriginalSize)
	}
	if e.RepackSize != "from 30.2 GB" {
		t.Errorf("RepackSize = %q", e.RepackSize)
	}
	if e.ImageURL != "https://example.com/covers/some-game.jpg" {
		t.Errorf("ImageURL = %q", e.ImageURL)
	}
}

func TestExtractEntryRequiresTitleAndURL(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"no title heading", `<article><div class="entry-content"><p>ad</p></div></article>`},
		{"empty link text", `<article><h1 class="entry-title"><a href="https://example.com/x/"> </a></h1></article>`},
		{"heading without link and no page url", `<article><h1 class="entry-title">Plain Heading</h1></article>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.html)
			if got := extractEntry(doc.Find("article").First(), ""); got != nil {
				t.Errorf("extractEntry() = %+v, want nil", got)
			}
		})
	}
}

func TestExtractEntryDetailPage(t *testing.T) {
	html := `<article><h1 class="entry-title">Detail Game – v2.0</h1></article>`
	doc := parseDoc(t, html)

	got := extractEntry(doc.Find("article").First(), "https://example.com/detail-game/")
	if got == nil {
		t.Fatal("extractEntry() = nil on detail page with page URL")
	}
	if got.URL != "https://example.com/detail-game/" {
		t.Errorf("URL = %q, want the page URL", got.URL)
	}
	if got.Title != "Detail Game – v2.0" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestExtractMagnetLinks(t *testing.T) {
	doc := parseDoc(t, listingEntryHTML)
	links := extractMagnetLinks(doc.Find("div.entry-content").First())

	if len(links) != 2 {
		t.Fatalf("extractMagnetLinks() returned %d links, want 2", len(links))
	}
	if links[0].Source != "Filehoster: DataNodes" {
		t.Errorf("links[0].Source = %q, want list item text before the separator", links[0].Source)
	}
	if links[0].Magnet != "magnet:?xt=urn:btih:abc" {
		t.Errorf("links[0].Magnet = %q", links[0].Magnet)
	}
	if links[1].Source != ".torrent file only" {
		t.Errorf("links[1].Source = %q", links[1].Source)
	}
}

func TestExtractMagnetLinkDefaultSource(t *testing.T) {
	html := `<article><div class="entry-content"><p><a href="magnet:?xt=urn:btih:zzz">dl</a></p></div></article>`
	doc := parseDoc(t, html)

	links := extractMagnetLinks(doc.Find("div.entry-content").First())
	if len(links) != 1 {
		t.Fatalf("extractMagnetLinks() returned %d links, want 1", len(links))
	}
	if links[0].Source != "magnet" {
		t.Errorf("Source = %q, want fallback label when no list item wraps the anchor", links[0].Source)
	}
}

func TestLabeledFieldMissingLabel(t *testing.T) {
	if got := labeledField("no labels here", []string{"Genres/Tags:"}, nil); got != "" {
		t.Errorf("labeledField() = %q, want empty for missing label", got)
	}
}

func TestLabeledFieldCapsRunawayText(t *testing.T) {
	text := "Original Size: " + strings.Repeat("x", 500)
	got := labeledField(text, []string{"Original Size:"}, []string{"Repack Size:"})
	if len(got) > 200 {
		t.Errorf("labeledField() returned %d chars, want at most 200 without a stop marker", len(got))
	}
}
