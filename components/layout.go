package components

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/a-h/templ"

	"github.com/t0lya/blog/menu"
)

// Layout is the page shell: document head, header and a main region
// holding children.
func Layout(site Site, meta PageMeta, children templ.Component) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		m.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		m.raw(`<meta name="viewport" content="width=device-width, initial-scale=1, shrink-to-fit=no">`)
		m.render(ctx, SEO(site, meta))
		if site.ThemeColor != "" {
			m.raw(`<meta name="theme-color"`)
			m.attr("content", site.ThemeColor)
			m.raw(">")
		}
		m.raw(`<link rel="manifest" href="/manifest.webmanifest">`)
		m.raw(`<link rel="alternate" type="application/rss+xml" href="/rss.xml"`)
		m.attr("title", site.Title)
		m.raw(">")
		m.raw(`<link rel="alternate" type="application/atom+xml" href="/index.xml"`)
		m.attr("title", site.Title)
		m.raw(">")
		m.raw(`<link rel="stylesheet" href="/site.css">`)
		m.render(ctx, Analytics(site.AnalyticsID))
		m.raw("</head><body>")
		m.render(ctx, HeaderView(site.Header(), menu.Collapsed, nil))
		m.raw(`<main class="main">`)
		m.render(ctx, children)
		m.raw("</main>")
		m.raw(`<script src="/header.js" defer></script>`)
		if site.LiveReload {
			m.raw(liveReloadScript)
		}
		m.raw("</body></html>")
	})
}

const liveReloadScript = `<script>(function(){var p=location.protocol==='https:'?'wss://':'ws://';` +
	`var ws=new WebSocket(p+location.host+'/_livereload');ws.onmessage=function(){location.reload();};})();</script>`

// Analytics renders the Google Analytics snippet, or nothing without an id.
func Analytics(trackingID string) templ.Component {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return templ.NopComponent
	}
	return component(func(ctx context.Context, m *markup) {
		id, err := json.Marshal(trackingID)
		if err != nil {
			m.err = err
			return
		}
		m.raw(`<script async src="https://www.google-analytics.com/analytics.js"></script>`)
		m.raw(`<script>window.ga=window.ga||function(){(ga.q=ga.q||[]).push(arguments)};ga.l=+new Date;`)
		m.raw(`ga('create',`, string(id), `,'auto');ga('send','pageview');</script>`)
	})
}

// SEO renders the title and description tags of a page.
func SEO(site Site, meta PageMeta) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		title := site.Title
		if meta.Title != "" && meta.Title != site.Title {
			title = meta.Title + " | " + site.Title
		}
		description := meta.Description
		if description == "" {
			description = site.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		m.raw("<title>")
		m.text(title)
		m.raw("</title>")
		metaTag(m, "name", "description", description)
		metaTag(m, "property", "og:title", title)
		metaTag(m, "property", "og:description", description)
		metaTag(m, "property", "og:type", ogType)
		if site.URL != "" {
			metaTag(m, "property", "og:url", strings.TrimRight(site.URL, "/")+meta.Path)
		}
		metaTag(m, "name", "twitter:card", "summary")
		if site.Twitter != "" {
			metaTag(m, "name", "twitter:creator", site.Twitter)
		}
		metaTag(m, "name", "twitter:title", title)
		metaTag(m, "name", "twitter:description", description)
	})
}

func metaTag(m *markup, key, name, content string) {
	m.raw("<meta")
	m.attr(key, name)
	m.attr("content", content)
	m.raw(">")
}
