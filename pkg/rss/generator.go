// Package rss renders the top articles of a project as an RSS 2.0 feed.
package rss

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/umputun/wikifeedia/pkg/domain"
)

// Generator creates RSS feeds from articles
type Generator struct {
	baseURL string
	ttl     time.Duration
}

// NewGenerator creates a new feed generator, ttl hints readers how often to refresh
func NewGenerator(baseURL string, ttl time.Duration) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     ttl,
	}
}

// GenerateRSS creates an RSS 2.0 feed of project articles, updated is the snapshot publish time
func (g *Generator) GenerateRSS(project string, articles []domain.Article, updated time.Time) (string, error) {
	selfLink := fmt.Sprintf("%s/rss/%s", g.baseURL, project)

	rssItems := make([]*RSSItem, 0, len(articles))
	for _, a := range articles {
		rssItems = append(rssItems, g.convertToRSSItem(a))
	}

	if updated.IsZero() {
		updated = time.Now()
	}
	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         fmt.Sprintf("Wikifeedia - %s.wikipedia.org", project),
			Link:          fmt.Sprintf("https://%s.wikipedia.org/", project),
			Description:   fmt.Sprintf("Most viewed articles of %s.wikipedia.org", project),
			Language:      project,
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: updated.UTC().Format(time.RFC1123Z),
			TTL:           int(g.ttl.Minutes()),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

// convertToRSSItem converts an article to an RSS item, the image becomes an enclosure
func (g *Generator) convertToRSSItem(a domain.Article) *RSSItem {
	desc := a.Abstract
	if a.DailyViews > 0 {
		desc += fmt.Sprintf("\n\nDaily views: %d", a.DailyViews)
	}

	item := &RSSItem{
		Title:       a.Title,
		Link:        a.ArticleURL,
		GUID:        &GUID{Value: a.Project + ":" + a.Article},
		Description: desc,
		Categories:  []string{a.Project},
	}
	if !a.Retrieved.IsZero() {
		item.PubDate = a.Retrieved.UTC().Format(time.RFC1123Z)
	}

	image := a.ImageURL
	if image == "" {
		image = a.ThumbnailURL
	}
	if image != "" {
		item.Enclosure = &Enclosure{URL: image, Type: imageType(image)}
	}
	return item
}

// imageType guesses mime type of an image by its extension
func imageType(u string) string {
	switch strings.ToLower(path.Ext(u)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// GenerateOPML creates an OPML file with RSS subscriptions of the given projects
func (g *Generator) GenerateOPML(projects []string) (string, error) {
	type outline struct {
		XMLName xml.Name `xml:"outline"`
		Text    string   `xml:"text,attr"`
		Title   string   `xml:"title,attr"`
		Type    string   `xml:"type,attr"`
		XMLUrl  string   `xml:"xmlUrl,attr"`
		HTMLUrl string   `xml:"htmlUrl,attr,omitempty"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(projects))
	for _, p := range projects {
		if !domain.IsProject(p) {
			continue
		}
		title := fmt.Sprintf("Wikifeedia - %s.wikipedia.org", p)
		outlines = append(outlines, outline{
			Text:    title,
			Title:   title,
			Type:    "rss",
			XMLUrl:  fmt.Sprintf("%s/rss/%s", g.baseURL, p),
			HTMLUrl: fmt.Sprintf("https://%s.wikipedia.org/", p),
		})
	}

	doc := opml{
		Version: "2.0",
		Head: head{
			Title:       "Wikifeedia Subscriptions",
			DateCreated: time.Now().Format(time.RFC1123Z),
		},
		Body: body{
			Outlines: outlines,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}

	return xml.Header + string(output), nil
}
