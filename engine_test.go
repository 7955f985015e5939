package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfYAML = `site:
  title: Test Blog
  author: Tester
  description: A blog for tests.
  base_url: https://example.com
  logo: /logo.svg
  links:
    - name: Github
      url: https://github.com/example
      icon: github
bio:
  headline: Hi there.
  text: I write tests.
`

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o775); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o664); err != nil {
		t.Fatal(err)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// newTestConf writes a config and three posts below a temp dir:
// "first" (Jan, from the file name), "second" (Feb, with its own
// directory) and "third" (Mar, a draft).
func newTestConf(t *testing.T) *SiteConf {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "blog.yaml"), testConfYAML)

	content := filepath.Join(dir, "content", "blog")
	writeTestFile(t, filepath.Join(content, "2019-01-01-first.md"), `---
title: First
description: The first post.
tags: [Go, Web]
---
Hello **world**.
`)
	writeTestFile(t, filepath.Join(content, "second", "index.md"), `---
title: Second
date: 2019-02-01
tags: [Go]
---
The second post has no description, so its excerpt is used.
`)
	writeTestFile(t, filepath.Join(content, "second", "notes.txt"), "attached")
	writeTestFile(t, filepath.Join(content, "third.md"), `---
title: Third
date: 2019-03-01
draft: true
---
Not ready.
`)

	conf, err := readConf(filepath.Join(dir, "blog.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	return conf
}

func TestReadSiteOrdersPostsNewestFirst(t *testing.T) {
	conf := newTestConf(t)

	site, err := ReadSite(conf, false)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, p := range site.posts {
		got = append(got, p.Title)
	}
	if strings.Join(got, ",") != "Second,First" {
		t.Errorf("posts = %v, want [Second First]", got)
	}

	withDrafts, err := ReadSite(conf, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(withDrafts.posts) != 3 || withDrafts.posts[0].Title != "Third" {
		t.Errorf("drafts not included: %v", withDrafts.posts)
	}
}

func TestReadSiteRejectsReservedSlug(t *testing.T) {
	conf := newTestConf(t)
	writeTestFile(t, filepath.Join(conf.ContentDir, "about.md"), "---\ntitle: About\ndate: 2020-01-01\n---\n")

	if _, err := ReadSite(conf, false); err == nil {
		t.Error("expected an error for a post at /about/")
	}
}

func TestReadSiteRejectsDuplicateSlug(t *testing.T) {
	conf := newTestConf(t)
	writeTestFile(t, filepath.Join(conf.ContentDir, "second.md"), "---\ntitle: Again\ndate: 2020-01-01\n---\n")

	_, err := ReadSite(conf, false)
	if err == nil || !strings.Contains(err.Error(), "/second/") {
		t.Errorf("expected a duplicate slug error, got %v", err)
	}
}

func TestRenderAll(t *testing.T) {
	conf := newTestConf(t)
	site, err := ReadSite(conf, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := site.RenderAll(); err != nil {
		t.Fatal(err)
	}

	for _, f := range []string{
		"index.html",
		"about/index.html",
		"posts/index.html",
		"2019-01-01-first/index.html",
		"second/index.html",
		"tags/index.html",
		"tags/go/index.html",
		"tags/web/index.html",
		"tags/go.xml",
		"404.html",
		"index.xml",
		"rss.xml",
		"sitemap.xml",
		"manifest.webmanifest",
		"sw.js",
		"site.css",
		"header.js",
	} {
		if _, err := os.Stat(filepath.Join(conf.OutDir, f)); err != nil {
			t.Errorf("missing %v: %v", f, err)
		}
	}
	if _, err := os.Stat(filepath.Join(conf.OutDir, "third")); err == nil {
		t.Error("draft was rendered")
	}

	second := readTestFile(t, filepath.Join(conf.OutDir, "second", "index.html"))
	if !strings.Contains(second, `href="/2019-01-01-first/" rel="prev"`) {
		t.Errorf("newest post should link to the older one: %s", second)
	}
	if strings.Contains(second, `rel="next"`) {
		t.Errorf("newest post has a next link: %s", second)
	}
	if !strings.Contains(second, `data-menu="collapsed"`) {
		t.Errorf("header should start collapsed: %s", second)
	}

	first := readTestFile(t, filepath.Join(conf.OutDir, "2019-01-01-first", "index.html"))
	if !strings.Contains(first, `href="/second/" rel="next"`) {
		t.Errorf("oldest post should link to the newer one: %s", first)
	}
	if !strings.Contains(first, "<strong>world</strong>") {
		t.Errorf("markdown not rendered: %s", first)
	}

	posts := readTestFile(t, filepath.Join(conf.OutDir, "posts", "index.html"))
	if strings.Index(posts, "Second") > strings.Index(posts, "First") {
		t.Errorf("posts page not newest first: %s", posts)
	}
	if !strings.Contains(posts, "The second post has no description") {
		t.Errorf("excerpt missing from posts page: %s", posts)
	}

	about := readTestFile(t, filepath.Join(conf.OutDir, "about", "index.html"))
	if !strings.Contains(about, "I write tests.") {
		t.Errorf("bio missing: %s", about)
	}

	sw := readTestFile(t, filepath.Join(conf.OutDir, "sw.js"))
	if !strings.Contains(sw, site.buildID) {
		t.Errorf("service worker cache not tied to the build: %s", sw)
	}
}

func TestCopyStaticFiles(t *testing.T) {
	conf := newTestConf(t)
	writeTestFile(t, filepath.Join(conf.StaticFilesDir, "logo.svg"), "<svg/>")
	site, err := ReadSite(conf, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := site.CopyStaticFiles(); err != nil {
		t.Fatal(err)
	}
	if got := readTestFile(t, filepath.Join(conf.OutDir, "logo.svg")); got != "<svg/>" {
		t.Errorf("logo.svg = %q", got)
	}
}

func TestRenderSiteWithoutPosts(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "blog.yaml"), testConfYAML)
	conf, err := readConf(filepath.Join(dir, "blog.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(conf.ContentDir, 0o775); err != nil {
		t.Fatal(err)
	}
	if err := renderSite(conf, false); err != nil {
		t.Fatal(err)
	}
	posts := readTestFile(t, filepath.Join(conf.OutDir, "posts", "index.html"))
	if !strings.Contains(posts, "No posts yet.") {
		t.Errorf("empty posts page: %s", posts)
	}
}
