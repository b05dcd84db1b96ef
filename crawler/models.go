package crawler

// GameRepack is one parsed listing entry. Title and URL are the only
// required fields; everything else is best-effort and may be empty.
type GameRepack struct {
	Title        string
	GenresTags   string
	Company      string
	Languages    string
	OriginalSize string
	RepackSize   string
	URL          string
	Date         string
	ImageURL     string
	MagnetLinks  []MagnetLink
}

// MagnetLink is one download link extracted from an entry, labeled with the
// source name shown next to it on the page.
type MagnetLink struct {
	Source string
	Magnet string
}

// PopularEntry is one row of a ranked "trending" snapshot. Rank is assigned
// by the caller from the page order, not parsed from the markup.
type PopularEntry struct {
	URL      string
	Title    string
	ImageURL string
}

// gameDetails holds the labeled-line fields pulled from an entry body.
type gameDetails struct {
	GenresTags   string
	Company      string
	Languages    string
	OriginalSize string
	RepackSize   string
}
