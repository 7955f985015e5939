package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	atom "github.com/thomas11/atomgenerator"
)

func (s *Site) RenderAtom() error {
	filePath := filepath.Join(s.conf.OutDir, "index.xml")
	err := s.renderAndSaveFeed(s.conf.Site.Title, "", filePath, s.posts)
	if err != nil {
		return err
	}

	return s.renderAndSaveTagsAtom()
}

// absURL joins a site path onto the configured base URL.
func (s *Site) absURL(relUrl string) string {
	return s.conf.Site.BaseUrl + strings.TrimPrefix(relUrl, "/")
}

func (s *Site) renderFeed(title, relUrl string, ps posts) ([]byte, error) {
	updated := ps.latestDate()
	if updated.IsZero() {
		updated = time.Now()
	}
	feed := atom.Feed{
		Title:   title,
		Link:    s.absURL(relUrl),
		PubDate: updated,
	}
	feed.AddAuthor(atom.Author{
		Name: s.conf.Site.Author,
		Uri:  s.conf.Site.BaseUrl,
	})

	for _, p := range ps {
		feed.AddEntry(s.entryForPost(p))
	}

	errs := feed.Validate()
	if len(errs) > 0 {
		log.Println("Atom feed is not valid!")
		for _, e := range errs {
			log.Println(e.Error())
		}
		return nil, errs[0]
	}

	return feed.GenXml()
}

func (s *Site) entryForPost(p *post) *atom.Entry {
	e := &atom.Entry{
		Title:       p.Title,
		Description: p.view().Summary(),
		Link:        s.absURL(p.Slug),
		PubDate:     p.Date,
		Content:     p.HTML,
	}

	for _, t := range p.Tags {
		e.AddCategory(atom.Category{Term: t.String()})
	}

	return e
}

func (s *Site) renderAndSaveFeed(title, relUrl, filePath string, ps posts) error {
	atomXml, err := s.renderFeed(title, relUrl, ps)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o775); err != nil {
		return err
	}
	return os.WriteFile(filePath, atomXml, 0o664)
}

func (s *Site) renderAndSaveTagsAtom() error {
	for _, tagPosts := range groupByTag(s.posts) {
		t := tagPosts.Tag
		title := s.conf.Site.Title + ` Topic "` + t.String() + `"`
		urlPath := s.tagPath(t) + "/"
		filePath := filepath.Join(s.conf.OutDir, tagsDir, t.Id()+".xml")

		err := s.renderAndSaveFeed(title, urlPath, filePath, tagPosts.Posts)
		if err != nil {
			return err
		}
	}
	return nil
}
