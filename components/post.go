package components

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
)

// Pagination links to the neighbouring posts. A missing neighbour leaves
// its list item empty.
func Pagination(previous, next *PostLink) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		m.raw(`<ul class="pagination"><li>`)
		if previous != nil && previous.Slug != "" {
			m.raw("<a")
			m.href(previous.Slug)
			m.raw(` rel="prev">← `)
			m.text(previous.Title)
			m.raw("</a>")
		}
		m.raw("</li><li>")
		if next != nil && next.Slug != "" {
			m.raw("<a")
			m.href(next.Slug)
			m.raw(` rel="next">`)
			m.text(next.Title)
			m.raw(" →</a>")
		}
		m.raw("</li></ul>")
	})
}

// BlogPost renders a post's title, date and body followed by pagination.
// The body is trusted HTML produced by the Markdown renderer.
func BlogPost(p Post, previous, next *PostLink) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		m.raw(`<article class="post"><h1 class="title">`)
		m.text(p.Title)
		m.raw(`</h1>`)
		if p.Date != "" {
			m.raw(`<p class="date">`)
			m.text(p.Date)
			m.raw("</p>")
		}
		if len(p.Tags) > 0 {
			m.raw(`<ul class="tags">`)
			for _, t := range p.Tags {
				m.raw("<li><a")
				m.href("/tags/" + t.ID + "/")
				m.raw(">")
				m.text(t.Name)
				m.raw("</a></li>")
			}
			m.raw("</ul>")
		}
		m.raw(`<div class="content">`, p.HTML, `</div></article>`)
		m.render(ctx, Pagination(previous, next))
	})
}

// Bio is the author blurb on the about page.
func Bio(b BioData) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		m.raw(`<div class="bio">`)
		if b.Headline != "" {
			m.raw("<p><strong>")
			m.text(b.Headline)
			m.raw("</strong></p>")
		}
		if b.Text != "" {
			m.raw("<p>")
			m.text(b.Text)
			m.raw("</p>")
		}
		m.raw("</div>")
	})
}

// Home links to the posts list and the about page.
func Home() templ.Component {
	return component(func(ctx context.Context, m *markup) {
		m.raw(`<ul class="home">`)
		m.raw(`<li><h2><a href="/posts/">Posts</a></h2></li>`)
		m.raw(`<li><h2><a href="/about/">About</a></h2></li>`)
		m.raw("</ul>")
	})
}

// PostList lists posts, newest first, under heading.
func PostList(heading string, posts []Post) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		if heading != "" {
			m.raw(`<h1 class="title">`)
			m.text(heading)
			m.raw("</h1>")
		}
		if len(posts) == 0 {
			m.raw(`<p class="empty">No posts yet.</p>`)
			return
		}
		m.raw(`<ul class="post-list">`)
		for _, p := range posts {
			m.raw("<li><h3><a")
			m.href(p.Slug)
			m.raw(">")
			m.text(p.Title)
			m.raw("</a></h3>")
			if p.Date != "" {
				m.raw(`<small class="date">`)
				m.text(p.Date)
				m.raw("</small>")
			}
			if s := p.Summary(); s != "" {
				m.raw("<p>")
				m.text(s)
				m.raw("</p>")
			}
			m.raw("</li>")
		}
		m.raw("</ul>")
	})
}

// TagList lists the posts filed under one tag.
func TagList(t Tag, posts []Post) templ.Component {
	return PostList(`Posts tagged "`+t.Name+`"`, posts)
}

// Topics lists tags ordered as given, with post counts and date ranges.
func Topics(tags []TagSummary) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		m.raw(`<h1 class="title">Topics</h1><ul class="topics">`)
		for _, t := range tags {
			m.raw("<li><a")
			m.href("/tags/" + t.ID + "/")
			m.raw(">")
			m.text(t.Name)
			m.raw("</a> <small>")
			m.text(strconv.Itoa(t.Count))
			if t.Count == 1 {
				m.raw(" post")
			} else {
				m.raw(" posts")
			}
			if t.Earliest != "" {
				m.raw(", ")
				m.text(t.Earliest)
				if t.Latest != t.Earliest {
					m.raw(" – ")
					m.text(t.Latest)
				}
			}
			m.raw("</small></li>")
		}
		m.raw("</ul>")
	})
}

func NotFound() templ.Component {
	return component(func(ctx context.Context, m *markup) {
		m.raw(`<h1 class="title">NOT FOUND</h1><p>You just hit a route that doesn't exist.</p>`)
	})
}
