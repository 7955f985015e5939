package main

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Generator   string    `xml:"generator"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
}

// RenderRSS writes /rss.xml with every post, newest first.
func (s *Site) RenderRSS() error {
	items := make([]rssItem, 0, len(s.posts))
	for _, p := range s.posts {
		postURL := s.absURL(p.Slug)
		item := rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.view().Summary(),
			PubDate:     p.Date.Format(time.RFC1123Z),
			GUID:        postURL,
		}
		for _, t := range p.Tags {
			item.Categories = append(item.Categories, t.String())
		}
		items = append(items, item)
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       s.conf.Site.Title,
			Link:        s.conf.Site.BaseUrl,
			Description: s.conf.Site.Description,
			Generator:   "blog",
			Items:       items,
		},
	}
	return writeXML(filepath.Join(s.conf.OutDir, "rss.xml"), feed)
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// RenderSitemap writes /sitemap.xml listing every generated page.
func (s *Site) RenderSitemap() error {
	lastMod := ""
	if latest := s.posts.latestDate(); !latest.IsZero() {
		lastMod = latest.Format("2006-01-02")
	}
	urls := []sitemapURL{
		{Loc: s.absURL("/"), LastMod: lastMod},
		{Loc: s.absURL("/posts/"), LastMod: lastMod},
		{Loc: s.absURL("/about/")},
		{Loc: s.absURL("/" + tagsDir + "/"), LastMod: lastMod},
	}
	for _, p := range s.posts {
		urls = append(urls, sitemapURL{
			Loc:     s.absURL(p.Slug),
			LastMod: p.Date.Format("2006-01-02"),
		})
	}
	for _, t := range groupByTag(s.posts) {
		urls = append(urls, sitemapURL{
			Loc:     s.absURL(s.tagPath(t.Tag) + "/"),
			LastMod: t.Posts.latestDate().Format("2006-01-02"),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	return writeXML(filepath.Join(s.conf.OutDir, "sitemap.xml"), sitemap)
}

func writeXML(filePath string, v any) error {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	enc := xml.NewEncoder(&b)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	b.WriteByte('\n')
	return os.WriteFile(filePath, b.Bytes(), 0o664)
}
