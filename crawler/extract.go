package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractEntries pulls every candidate record out of a listing document.
// Blocks that are not game entries (ads, digests without a titled link) are
// dropped silently.
func extractEntries(doc *goquery.Document) []GameRepack {
	var repacks []GameRepack
	doc.Find("article").Each(func(_ int, article *goquery.Selection) {
		if repack := extractEntry(article, ""); repack != nil {
			repacks = append(repacks, *repack)
		}
	})
	return repacks
}

// extractEntry parses one article block. pageURL is used as the record URL
// on detail pages, where the title heading carries no link. Returns nil when
// the block lacks the minimum required fields (title and url).
func extractEntry(article *goquery.Selection, pageURL string) *GameRepack {
	titleElem := article.Find("h1.entry-title, h2.entry-title").First()
	if titleElem.Length() == 0 {
		return nil
	}

	var title, url string
	if link := titleElem.Find("a").First(); link.Length() > 0 {
		title = strings.TrimSpace(link.Text())
		url, _ = link.Attr("href")
	} else {
		title = strings.TrimSpace(titleElem.Text())
		url = pageURL
	}
	if title == "" || url == "" {
		return nil
	}

	repack := &GameRepack{Title: title, URL: url}

	if date := article.Find("time.entry-date").First(); date.Length() > 0 {
		if dt, ok := date.Attr("datetime"); ok && dt != "" {
			repack.Date = dt
		} else {
			repack.Date = strings.TrimSpace(date.Text())
		}
	}

	content := article.Find("div.entry-content").First()
	if content.Length() > 0 {
		details := extractDetails(content)
		repack.GenresTags = details.GenresTags
		repack.Company = details.Company
		repack.Languages = details.Languages
		repack.OriginalSize = details.OriginalSize
		repack.RepackSize = details.RepackSize
		repack.ImageURL = extractCoverImage(content)
		repack.MagnetLinks = extractMagnetLinks(content)
	}

	return repack
}

// extractDetails pulls the labeled description lines out of an entry body.
// The info section starts at the first h3 heading; all sibling text up to
// the next h3 is joined and sliced by label. A missing label means a missing
// field, never a parse failure.
func extractDetails(content *goquery.Selection) gameDetails {
	var details gameDetails

	info := content.Find("h3").First()
	if info.Length() == 0 {
		return details
	}

	var parts []string
	info.NextUntil("h3").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	fullText := strings.Join(parts, " ")

	details.GenresTags = labeledField(fullText,
		[]string{"Genres/Tags:"},
		[]string{"Companies:", "Company:", "Languages:", "Language:"})
	details.Company = labeledField(fullText,
		[]string{"Companies:", "Company:"},
		[]string{"Languages:", "Language:"})
	details.Languages = labeledField(fullText,
		[]string{"Languages:", "Language:"},
		[]string{"Original Size:", "This game"})
	details.OriginalSize = labeledField(fullText,
		[]string{"Original Size:"},
		[]string{"Repack Size:"})
	details.RepackSize = labeledField(fullText,
		[]string{"Repack Size:"},
		[]string{"Download"})

	return details
}

// labeledField finds the first matching label and returns the text between
// it and the nearest stop marker, whitespace-collapsed. Size-like fields are
// capped so a missing stop marker cannot swallow the rest of the body.
func labeledField(text string, labels, stops []string) string {
	for _, label := range labels {
		idx := strings.Index(text, label)
		if idx < 0 {
			continue
		}
		after := text[idx+len(label):]
		end := len(after)
		for _, stop := range stops {
			if i := strings.Index(after, stop); i >= 0 && i < end {
				end = i
			}
		}
		if end > 200 {
			end = 200
		}
		return strings.TrimSpace(spaceRun.ReplaceAllString(after[:end], " "))
	}
	return ""
}

// extractMagnetLinks collects magnet anchors from an entry body. The source
// label is the parent list item's text before the first '|' or '[' marker.
func extractMagnetLinks(content *goquery.Selection) []MagnetLink {
	var links []MagnetLink
	content.Find(`a[href^="magnet:"]`).Each(func(_ int, a *goquery.Selection) {
		magnet, ok := a.Attr("href")
		if !ok || magnet == "" {
			return
		}

		source := "magnet"
		if li := a.Closest("li"); li.Length() > 0 {
			text := strings.TrimSpace(li.Text())
			text = strings.SplitN(text, "|", 2)[0]
			text = strings.SplitN(text, "[", 2)[0]
			if text = strings.TrimSpace(text); text != "" {
				source = text
			}
		}

		links = append(links, MagnetLink{Source: source, Magnet: magnet})
	})
	return links
}

// extractCoverImage returns the first image in the entry body, which on the
// supported sites is the cover art.
func extractCoverImage(content *goquery.Selection) string {
	src, _ := content.Find("img").First().Attr("src")
	return src
}
