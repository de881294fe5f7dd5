package crawler

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/telscan/internal/model"
	"github.com/nao1215/telscan/internal/phone"
	"golang.org/x/net/html"
)

// Extractor finds phone links in page markup.
type Extractor struct {
	prefix string
}

// NewExtractor creates an Extractor for tel: anchors.
func NewExtractor() *Extractor {
	return &Extractor{prefix: phone.TelPrefix}
}

// Extract returns a RawLink for every anchor whose href starts with tel:,
// in document order.
func (e *Extractor) Extract(markup string) ([]model.RawLink, error) {
	return e.ExtractReader(strings.NewReader(markup))
}

// ExtractReader is Extract for an io.Reader.
func (e *Extractor) ExtractReader(r io.Reader) ([]model.RawLink, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	links := make([]model.RawLink, 0)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || !strings.HasPrefix(href, e.prefix) {
			return
		}

		snippet, err := goquery.OuterHtml(s)
		if err != nil {
			snippet = ""
		}

		links = append(links, model.RawLink{
			DisplayedText:  strippedText(s),
			DialableTarget: href,
			MarkupSnippet:  snippet,
		})
	})

	return links, nil
}

// strippedText concatenates the descendant text nodes of s, each trimmed,
// with no separator. "お電話は<br> TEL：01-2345-6789 " becomes
// "お電話はTEL：01-2345-6789".
func strippedText(s *goquery.Selection) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				b.WriteString(t)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range s.Nodes {
		walk(n)
	}
	return b.String()
}
