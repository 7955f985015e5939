package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/t0lya/blog/components"
)

type post struct {
	Title, Description string
	Slug               string // "/hello-world/"
	SourcePath         string
	// AssetDir holds files that belong to the post, e.g. its images.
	// Empty for single-file posts.
	AssetDir string
	Date     time.Time
	Body     []byte
	Tags     []tag
	Draft    bool

	HTML    string
	Excerpt string
}

// FormatDate is the date as shown on post pages.
func (p *post) FormatDate() string {
	return formatDate(p.Date)
}

func (p *post) link() *components.PostLink {
	if p == nil {
		return nil
	}
	return &components.PostLink{Slug: p.Slug, Title: p.Title}
}

func (p *post) view() components.Post {
	tags := make([]components.Tag, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = components.Tag{Name: t.String(), ID: t.Id()}
	}
	return components.Post{
		Slug:        p.Slug,
		Title:       p.Title,
		Date:        p.FormatDate(),
		HTML:        p.HTML,
		Description: p.Description,
		Excerpt:     p.Excerpt,
		Tags:        tags,
	}
}

func (p *post) String() string {
	b := new(bytes.Buffer)
	b.WriteString("title: ")
	b.WriteString(p.Title)
	b.WriteString("\nslug: ")
	b.WriteString(p.Slug)
	b.WriteString("\ndate: ")
	b.WriteString(p.Date.String())
	b.WriteString("\ndescription: ")
	b.WriteString(p.Description)
	b.WriteString("\ntags: ")
	fmt.Fprintln(b, p.Tags)

	body := p.Body
	if len(body) > 200 {
		body = append(body[:200:200], '.', '.', '.')
	}
	b.WriteString("\nbody: ")
	b.Write(body)

	return b.String()
}

// posts are kept newest first.
type posts []*post

func (ps posts) Len() int           { return len(ps) }
func (ps posts) Swap(i, j int)      { ps[i], ps[j] = ps[j], ps[i] }
func (ps posts) Less(i, j int) bool { return ps[i].Date.After(ps[j].Date) }

func (ps posts) earliestDate() time.Time {
	var t time.Time
	for _, a := range ps {
		if t.IsZero() || a.Date.Before(t) {
			t = a.Date
		}
	}
	return t
}

func (ps posts) latestDate() time.Time {
	var t time.Time
	for _, a := range ps {
		if a.Date.After(t) {
			t = a.Date
		}
	}
	return t
}

// neighbours returns the post before (older) and after (newer) ps[i].
// Either is nil at the ends of the list.
func (ps posts) neighbours(i int) (previous, next *post) {
	if i+1 < len(ps) {
		previous = ps[i+1]
	}
	if i > 0 {
		next = ps[i-1]
	}
	return previous, next
}

func (ps posts) views() []components.Post {
	out := make([]components.Post, len(ps))
	for i, p := range ps {
		out[i] = p.view()
	}
	return out
}
