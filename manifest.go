package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type webManifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description,omitempty"`
	StartURL        string         `json:"start_url"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Display         string         `json:"display"`
	Icons           []manifestIcon `json:"icons,omitempty"`
}

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type,omitempty"`
}

// RenderManifest writes the web app manifest.
func (s *Site) RenderManifest() error {
	m := webManifest{
		Name:            s.conf.Site.Title,
		ShortName:       s.conf.Site.ShortName,
		Description:     s.conf.Site.Description,
		StartURL:        "/",
		BackgroundColor: s.conf.Site.BackgroundColor,
		ThemeColor:      s.conf.Site.ThemeColor,
		Display:         "minimal-ui",
	}
	if logo := s.conf.Site.Logo; logo != "" {
		icon := manifestIcon{Src: logo, Sizes: "any"}
		if strings.HasSuffix(logo, ".svg") {
			icon.Type = "image/svg+xml"
		}
		m.Icons = append(m.Icons, icon)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.conf.OutDir, "manifest.webmanifest"), data, 0o664)
}

// RenderServiceWorker writes /sw.js, which precaches the site's pages so
// they stay readable offline. Each build gets its own cache.
func (s *Site) RenderServiceWorker() error {
	urls := []string{"/", "/posts/", "/about/", "/site.css", "/header.js"}
	for _, p := range s.posts {
		urls = append(urls, p.Slug)
	}
	list, err := json.Marshal(urls)
	if err != nil {
		return err
	}
	cacheName, err := json.Marshal("blog-" + s.buildID)
	if err != nil {
		return err
	}
	js := fmt.Sprintf(serviceWorkerTemplate, cacheName, list)
	return os.WriteFile(filepath.Join(s.conf.OutDir, "sw.js"), []byte(js), 0o664)
}

const serviceWorkerTemplate = `const CACHE = %s;
const PRECACHE = %s;

self.addEventListener('install', (event) => {
  event.waitUntil(caches.open(CACHE).then((c) => c.addAll(PRECACHE)).then(() => self.skipWaiting()));
});

self.addEventListener('activate', (event) => {
  event.waitUntil(
    caches.keys()
      .then((keys) => Promise.all(keys.filter((k) => k !== CACHE).map((k) => caches.delete(k))))
      .then(() => self.clients.claim())
  );
});

self.addEventListener('fetch', (event) => {
  if (event.request.method !== 'GET') return;
  event.respondWith(
    fetch(event.request)
      .then((resp) => {
        const copy = resp.clone();
        caches.open(CACHE).then((c) => c.put(event.request, copy));
        return resp;
      })
      .catch(() => caches.match(event.request))
  );
});
`
