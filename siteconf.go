package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/t0lya/blog/components"
)

const envPrefix = "BLOG_"

type SiteConf struct {
	Site SiteMeta `koanf:"site"`
	Bio  BioConf  `koanf:"bio"`

	ContentDir      string   `koanf:"content_dir"`
	ContentPatterns []string `koanf:"content_patterns"`
	DateStampFormat string   `koanf:"date_stamp_format"`
	AssetsDir       string   `koanf:"assets_dir"`
	StaticFilesDir  string   `koanf:"static_dir"`

	OutDir string `koanf:"out_dir"`

	Markdown MarkdownConf `koanf:"markdown"`
	Images   ImageConf    `koanf:"images"`
}

type SiteMeta struct {
	Title           string       `koanf:"title"`
	ShortName       string       `koanf:"short_name"`
	Author          string       `koanf:"author"`
	Description     string       `koanf:"description"`
	BaseUrl         string       `koanf:"base_url"`
	Logo            string       `koanf:"logo"`
	Twitter         string       `koanf:"twitter"`
	ThemeColor      string       `koanf:"theme_color"`
	BackgroundColor string       `koanf:"background_color"`
	AnalyticsID     string       `koanf:"analytics_id"`
	Links           []SocialLink `koanf:"links"`
}

type SocialLink struct {
	Name string `koanf:"name"`
	URL  string `koanf:"url"`
	Icon string `koanf:"icon"`
}

type BioConf struct {
	Headline string `koanf:"headline"`
	Text     string `koanf:"text"`
}

type MarkdownConf struct {
	Engine         string `koanf:"engine"`
	HighlightStyle string `koanf:"highlight_style"`
}

type ImageConf struct {
	MaxWidth    int `koanf:"max_width"`
	JpegQuality int `koanf:"jpeg_quality"`
}

// tagsDir is where tag pages and tag feeds are written, below the output
// directory. Post pages link to it.
const tagsDir = "tags"

const (
	engineGoldmark    = "goldmark"
	engineBlackfriday = "blackfriday"
)

func defaultConf() *SiteConf {
	return &SiteConf{
		Site: SiteMeta{
			Title:           "Blog",
			BackgroundColor: "#ffffff",
			ThemeColor:      "#663399",
		},
		ContentDir:      "content/blog",
		DateStampFormat: "2006-01-02",
		AssetsDir:       "content/assets",
		StaticFilesDir:  "static",
		OutDir:          "public",
		Markdown: MarkdownConf{
			Engine:         engineGoldmark,
			HighlightStyle: "monokai",
		},
		Images: ImageConf{
			MaxWidth:    590,
			JpegQuality: 80,
		},
	}
}

// readConf loads the YAML file at fileName over the defaults, then applies
// BLOG_* environment overrides. Nested keys use a double underscore:
// BLOG_SITE__TITLE sets site.title.
func readConf(fileName string) (*SiteConf, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(fileName), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", fileName, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	conf := defaultConf()
	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if len(conf.ContentPatterns) == 0 {
		conf.ContentPatterns = []string{"**/*.md"}
	}
	if conf.Site.ShortName == "" {
		conf.Site.ShortName = conf.Site.Title
	}
	if conf.Site.Author == "" {
		conf.Site.Author = conf.Site.Title
	}
	if conf.Site.BaseUrl != "" && !strings.HasSuffix(conf.Site.BaseUrl, "/") {
		conf.Site.BaseUrl += "/"
	}

	// Normalize relative paths because the executable can be called from anywhere
	baseDir := filepath.Dir(fileName)
	conf.ContentDir = normalizePath(conf.ContentDir, baseDir)
	conf.AssetsDir = normalizePath(conf.AssetsDir, baseDir)
	conf.StaticFilesDir = normalizePath(conf.StaticFilesDir, baseDir)
	conf.OutDir = normalizePath(conf.OutDir, baseDir)

	return conf, conf.Validate()
}

func (c *SiteConf) Validate() error {
	if strings.TrimSpace(c.Site.Title) == "" {
		return fmt.Errorf("site.title is required")
	}
	if !strings.HasPrefix(c.Site.BaseUrl, "http://") && !strings.HasPrefix(c.Site.BaseUrl, "https://") {
		return fmt.Errorf("site.base_url must be an absolute http(s) URL, got %q", c.Site.BaseUrl)
	}
	if c.OutDir == "" {
		return fmt.Errorf("out_dir is required")
	}
	switch c.Markdown.Engine {
	case engineGoldmark, engineBlackfriday:
	default:
		return fmt.Errorf("invalid markdown.engine %q: must be one of %s, %s", c.Markdown.Engine, engineGoldmark, engineBlackfriday)
	}
	if c.Images.MaxWidth <= 0 {
		return fmt.Errorf("images.max_width must be positive")
	}
	if c.Images.JpegQuality < 1 || c.Images.JpegQuality > 100 {
		return fmt.Errorf("images.jpeg_quality must be between 1 and 100")
	}
	for _, l := range c.Site.Links {
		if l.URL == "" {
			return fmt.Errorf("site.links: %q has no url", l.Name)
		}
	}
	return nil
}

// componentSite is the metadata handed to every page.
func (c *SiteConf) componentSite(liveReload bool) components.Site {
	links := make([]components.SocialLink, len(c.Site.Links))
	for i, l := range c.Site.Links {
		links[i] = components.SocialLink{Name: l.Name, URL: l.URL, Icon: l.Icon}
	}
	return components.Site{
		Title:       c.Site.Title,
		Author:      c.Site.Author,
		Description: c.Site.Description,
		URL:         c.Site.BaseUrl,
		Logo:        c.Site.Logo,
		Twitter:     c.Site.Twitter,
		ThemeColor:  c.Site.ThemeColor,
		Links:       links,
		AnalyticsID: c.Site.AnalyticsID,
		LiveReload:  liveReload,
	}
}

func normalizePath(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	absPath := filepath.Join(baseDir, path)
	if verbose {
		log.Println("Normalizing", path, "to", absPath)
	}
	return absPath
}

func dirExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
