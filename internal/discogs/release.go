// Package discogs imports releases from a Discogs XML data dump.
package discogs

type Release struct {
	ID          int      `xml:"id,attr"`
	Status      string   `xml:"status,attr"`
	Title       string   `xml:"title"`
	Country     *string  `xml:"country"`
	Released    *string  `xml:"released"`
	DataQuality string   `xml:"data_quality"`
	Artists     []Artist `xml:"artists>artist"`
	Labels      []Label  `xml:"labels>label"`
	Formats     []Format `xml:"formats>format"`
	Genres      []string `xml:"genres>genre"`
	Styles      []string `xml:"styles>style"`
	Tracklist   []Track  `xml:"tracklist>track"`
	Videos      []Video  `xml:"videos>video"`
}

type Artist struct {
	ID   int    `xml:"id"`
	Name string `xml:"name"`
}

type Label struct {
	ID    int    `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	CatNo string `xml:"catno,attr"`
}

type Format struct {
	Name string `xml:"name,attr"`
	Qty  int    `xml:"qty,attr"`
}

type Track struct {
	Position string `xml:"position"`
	Title    string `xml:"title"`
	Duration string `xml:"duration"`
}

type Video struct {
	Src      string `xml:"src,attr"`
	Duration int    `xml:"duration,attr"`
	Title    string `xml:"title"`
}
