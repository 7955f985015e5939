package components

// SocialLink is an external profile link shown in the header dropdown.
type SocialLink struct {
	Name string // label, e.g. "Github"
	URL  string
	Icon string // icon class suffix, e.g. "github"
}

// External links open in a new tab; mailto links don't.
func (l SocialLink) External() bool {
	return len(l.URL) < 7 || l.URL[:7] != "mailto:"
}

// HeaderProps is everything the header renders besides its state.
type HeaderProps struct {
	Title string
	Logo  string
	Links []SocialLink
}

// Site carries the site-wide metadata every page needs.
type Site struct {
	Title       string
	Author      string
	Description string
	URL         string
	Logo        string
	Twitter     string
	ThemeColor  string
	Links       []SocialLink
	AnalyticsID string
	LiveReload  bool
}

func (s Site) Header() HeaderProps {
	return HeaderProps{Title: s.Title, Logo: s.Logo, Links: s.Links}
}

// PageMeta is the per-page SEO data.
type PageMeta struct {
	Title       string
	Description string
	Path        string // site-relative, e.g. "/hello/"
	OGType      string // "website" or "article"
}

// PostLink references a neighbouring post.
type PostLink struct {
	Slug  string
	Title string
}

// Post is a post with its body already rendered to HTML.
type Post struct {
	Slug        string
	Title       string
	Date        string // formatted for display
	HTML        string
	Description string
	Excerpt     string
	Tags        []Tag
}

// Summary is the description, or the excerpt when there is none.
func (p Post) Summary() string {
	if p.Description != "" {
		return p.Description
	}
	return p.Excerpt
}

type Tag struct {
	Name string
	ID   string
}

// TagSummary describes one tag on the topics page.
type TagSummary struct {
	Tag
	Count    int
	Earliest string
	Latest   string
}

type BioData struct {
	Headline string
	Text     string
}
