// Command blog is the static generator behind a personal blog: Markdown
// posts with YAML frontmatter go in, a directory of static pages, feeds and
// images comes out.
//
// Run "blog build" to write the site and "blog serve --watch" while writing.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/otiai10/copy"

	"github.com/t0lya/blog/components"
)

type Site struct {
	posts posts
	conf  *SiteConf

	toHtml     renderer
	buildID    string
	liveReload bool
	progress   io.Writer
}

type siteOption func(*Site)

// withLiveReload makes every page connect to the dev server's reload socket.
func withLiveReload() siteOption {
	return func(s *Site) { s.liveReload = true }
}

// withProgress reports long-running steps to w.
func withProgress(w io.Writer) siteOption {
	return func(s *Site) { s.progress = w }
}

func ReadSite(conf *SiteConf, drafts bool, opts ...siteOption) (*Site, error) {
	toHtml, err := newMarkdownRenderer(conf.Markdown)
	if err != nil {
		return nil, err
	}

	thisSite := Site{
		posts:    make(posts, 0, 100),
		conf:     conf,
		toHtml:   toHtml,
		buildID:  uuid.NewString(),
		progress: io.Discard,
	}
	for _, opt := range opts {
		opt(&thisSite)
	}

	files, err := findPostFiles(conf.ContentDir, conf.ContentPatterns)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(files))
	for _, f := range files {
		p, err := readPostFromFile(conf.ContentDir, f, conf.DateStampFormat)
		if err != nil {
			return nil, err
		}
		if p.Draft && !drafts {
			continue
		}
		if verbose {
			log.Println(p)
		}
		if thisSite.reservedPath(p.Slug) {
			return nil, fmt.Errorf("post %v: path %v is used by a generated page", p.SourcePath, p.Slug)
		}
		if other, ok := seen[p.Slug]; ok {
			return nil, fmt.Errorf("posts %v and %v both map to %v", other, p.SourcePath, p.Slug)
		}
		seen[p.Slug] = p.SourcePath
		thisSite.posts = append(thisSite.posts, p)
	}

	// Order posts by date, newest first.
	sort.Stable(thisSite.posts)

	return &thisSite, nil
}

func (s *Site) pageWriter() pageWriter {
	return pageWriter{outDir: s.conf.OutDir, site: s.conf.componentSite(s.liveReload)}
}

// renderBodies converts every post's Markdown to HTML and derives its excerpt.
func (s *Site) renderBodies() error {
	for _, p := range s.posts {
		out, err := s.toHtml.render(p.Body)
		if err != nil {
			return fmt.Errorf("rendering %v: %w", p.SourcePath, err)
		}
		p.HTML = out
		p.Excerpt = excerpt(out, excerptLength)
	}
	return nil
}

func (s *Site) RenderHtml() error {
	if err := s.renderBodies(); err != nil {
		return err
	}
	pw := s.pageWriter()

	// Render the posts.
	for i, p := range s.posts {
		previous, next := s.posts.neighbours(i)
		meta := components.PageMeta{
			Title:       p.Title,
			Description: p.view().Summary(),
			Path:        p.Slug,
			OGType:      "article",
		}
		if err := pw.writePage(meta, components.BlogPost(p.view(), previous.link(), next.link())); err != nil {
			return err
		}
		if verbose {
			log.Println("Rendered", p.Slug)
		}
	}

	// Render the tag pages and the topics overview.
	byTag := groupByTag(s.posts)
	if verbose {
		log.Print("Tags:\n", byTag)
	}
	for _, t := range byTag {
		meta := components.PageMeta{
			Title: t.Tag.String(),
			Path:  s.tagPath(t.Tag) + "/",
		}
		view := components.Tag{Name: t.Tag.String(), ID: t.Tag.Id()}
		if err := pw.writePage(meta, components.TagList(view, t.Posts.views())); err != nil {
			return err
		}
	}
	topics := components.PageMeta{Title: "Topics", Path: "/" + tagsDir + "/"}
	if err := pw.writePage(topics, components.Topics(byTag.summaries())); err != nil {
		return err
	}

	pages := []struct {
		meta components.PageMeta
		body templ.Component
	}{
		{components.PageMeta{Title: "Home page", Path: "/"}, components.Home()},
		{components.PageMeta{Title: "About", Path: "/about/"}, components.Bio(components.BioData(s.conf.Bio))},
		{components.PageMeta{Title: "Posts", Path: "/posts/"}, components.PostList("Posts", s.posts.views())},
	}
	for _, page := range pages {
		if err := pw.writePage(page.meta, page.body); err != nil {
			return err
		}
	}

	notFound := components.PageMeta{Title: "404: Not found"}
	return pw.writeFile(filepath.Join(s.conf.OutDir, "404.html"), components.Layout(pw.site, notFound, components.NotFound()))
}

func (s *Site) reservedPath(slug string) bool {
	switch slug {
	case "/", "/about/", "/posts/":
		return true
	}
	return strings.HasPrefix(slug, "/"+tagsDir+"/")
}

// tagPath is the site path of a tag's page, without a trailing slash.
func (s *Site) tagPath(t tag) string {
	return path.Join("/", tagsDir, t.Id())
}

func (s *Site) RenderAll() error {
	if err := os.MkdirAll(s.conf.OutDir, 0o775); err != nil {
		return err
	}
	steps := []func() error{
		s.RenderHtml,
		s.RenderAtom,
		s.RenderRSS,
		s.RenderSitemap,
		s.RenderManifest,
		s.RenderServiceWorker,
		s.WriteAssets,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Site) CopyStaticFiles() error {
	srcDir := s.conf.StaticFilesDir
	if !dirExists(srcDir) {
		return nil
	}
	log.Println("Recursively copying", srcDir, "to", s.conf.OutDir)
	return copy.Copy(srcDir, s.conf.OutDir)
}
