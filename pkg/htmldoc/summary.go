// Package htmldoc inspects submitted HTML before it reaches the browser.
package htmldoc

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// mapEmbedSelector matches the embeds the stabilizer waits on.
const mapEmbedSelector = `iframe[src*="google.com/maps"], iframe[src*="maps.google.com"]`

// Summary describes the parts of a document that influence rendering time.
type Summary struct {
	Title     string
	Sections  int
	Iframes   int
	MapEmbeds int
	Images    int
	Scripts   int
}

// Summarize parses the document and counts the elements of interest.
func Summarize(html string) (Summary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Title:     strings.TrimSpace(doc.Find("title").First().Text()),
		Sections:  doc.Find("section").Length(),
		Iframes:   doc.Find("iframe").Length(),
		MapEmbeds: doc.Find(mapEmbedSelector).Length(),
		Images:    doc.Find("img").Length(),
		Scripts:   doc.Find("script").Length(),
	}, nil
}
