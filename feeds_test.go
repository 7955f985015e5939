package main

import (
	"encoding/json"
	"encoding/xml"
	"path/filepath"
	"strings"
	"testing"
)

func renderTestSite(t *testing.T) (*Site, *SiteConf) {
	t.Helper()
	conf := newTestConf(t)
	site, err := ReadSite(conf, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := site.RenderAll(); err != nil {
		t.Fatal(err)
	}
	return site, conf
}

func TestRenderRSS(t *testing.T) {
	_, conf := renderTestSite(t)

	var feed rssXML
	if err := xml.Unmarshal([]byte(readTestFile(t, filepath.Join(conf.OutDir, "rss.xml"))), &feed); err != nil {
		t.Fatal(err)
	}
	if feed.Version != "2.0" || feed.Channel.Title != "Test Blog" {
		t.Errorf("channel = %+v", feed.Channel)
	}
	if len(feed.Channel.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(feed.Channel.Items))
	}
	first := feed.Channel.Items[0]
	if first.Title != "Second" || first.Link != "https://example.com/second/" {
		t.Errorf("first item = %+v", first)
	}
	if !strings.HasPrefix(first.PubDate, "Fri, 01 Feb 2019") {
		t.Errorf("PubDate = %q", first.PubDate)
	}
	if second := feed.Channel.Items[1]; second.Description != "The first post." || len(second.Categories) != 2 {
		t.Errorf("second item = %+v", second)
	}
}

func TestRenderSitemap(t *testing.T) {
	_, conf := renderTestSite(t)

	var sitemap sitemapURLSet
	if err := xml.Unmarshal([]byte(readTestFile(t, filepath.Join(conf.OutDir, "sitemap.xml"))), &sitemap); err != nil {
		t.Fatal(err)
	}
	locs := make(map[string]string)
	for _, u := range sitemap.URLs {
		locs[u.Loc] = u.LastMod
	}
	for loc, lastMod := range map[string]string{
		"https://example.com/":                  "2019-02-01",
		"https://example.com/about/":            "",
		"https://example.com/2019-01-01-first/": "2019-01-01",
		"https://example.com/tags/go/":          "2019-02-01",
		"https://example.com/tags/web/":         "2019-01-01",
	} {
		got, ok := locs[loc]
		if !ok {
			t.Errorf("sitemap lacks %v", loc)
			continue
		}
		if got != lastMod {
			t.Errorf("lastmod of %v = %q, want %q", loc, got, lastMod)
		}
	}
}

func TestRenderAtom(t *testing.T) {
	_, conf := renderTestSite(t)

	index := readTestFile(t, filepath.Join(conf.OutDir, "index.xml"))
	for _, want := range []string{"Test Blog", "https://example.com/second/", "https://example.com/2019-01-01-first/"} {
		if !strings.Contains(index, want) {
			t.Errorf("index.xml lacks %q", want)
		}
	}

	web := readTestFile(t, filepath.Join(conf.OutDir, "tags", "web.xml"))
	if !strings.Contains(web, `Topic &#34;Web&#34;`) && !strings.Contains(web, `Topic &quot;Web&quot;`) && !strings.Contains(web, `Topic "Web"`) {
		t.Errorf("tag feed title missing: %s", web)
	}
	if strings.Contains(web, "https://example.com/second/") {
		t.Errorf("web feed contains an untagged post: %s", web)
	}
}

func TestRenderManifest(t *testing.T) {
	_, conf := renderTestSite(t)

	var m webManifest
	if err := json.Unmarshal([]byte(readTestFile(t, filepath.Join(conf.OutDir, "manifest.webmanifest"))), &m); err != nil {
		t.Fatal(err)
	}
	if m.Name != "Test Blog" || m.ShortName != "Test Blog" || m.StartURL != "/" || m.Display != "minimal-ui" {
		t.Errorf("manifest = %+v", m)
	}
	if len(m.Icons) != 1 || m.Icons[0].Type != "image/svg+xml" {
		t.Errorf("icons = %+v", m.Icons)
	}
}

func TestWriteAssets(t *testing.T) {
	_, conf := renderTestSite(t)

	js := readTestFile(t, filepath.Join(conf.OutDir, "header.js"))
	for _, want := range []string{"header-expanded", "pointerdown", "aria-expanded"} {
		if !strings.Contains(js, want) {
			t.Errorf("header.js lacks %q", want)
		}
	}
	if css := readTestFile(t, filepath.Join(conf.OutDir, "site.css")); !strings.Contains(css, ".dropdown-expanded") {
		t.Error("site.css lacks the expanded dropdown rule")
	}
}
