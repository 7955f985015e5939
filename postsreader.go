package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

type frontmatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
}

var knownFrontmatterKeys = []string{"title", "date", "description", "tags", "draft"}

var frontmatterFence = []byte("---")

// findPostFiles returns the slash-separated paths, relative to dir, of all
// files matching any of patterns. The result is sorted and has no duplicates.
func findPostFiles(dir string, patterns []string) ([]string, error) {
	fsys := os.DirFS(dir)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("matching %q in %s: %w", pattern, dir, err)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// splitFrontmatter separates the YAML block between the leading "---"
// fences from the Markdown body.
func splitFrontmatter(content []byte) (header, body []byte, err error) {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	first, rest, found := bytes.Cut(content, []byte("\n"))
	if !found || !bytes.Equal(bytes.TrimSpace(first), frontmatterFence) {
		return nil, nil, fmt.Errorf("no frontmatter")
	}
	for off := 0; off <= len(rest); {
		line, _, _ := bytes.Cut(rest[off:], []byte("\n"))
		if bytes.Equal(bytes.TrimSpace(line), frontmatterFence) {
			body := rest[min(off+len(line)+1, len(rest)):]
			return rest[:off], body, nil
		}
		off += len(line) + 1
	}
	return nil, nil, fmt.Errorf("unterminated frontmatter")
}

func readPostFromFile(root, relPath, dateStampFormat string) (*post, error) {
	srcPath := filepath.Join(root, filepath.FromSlash(relPath))
	fileContent, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, err
	}

	header, body, err := splitFrontmatter(fileContent)
	if err != nil {
		return nil, fmt.Errorf("post %v: %w", srcPath, err)
	}

	var fm frontmatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return nil, fmt.Errorf("post %v: invalid frontmatter: %w", srcPath, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(header, &raw); err == nil {
		for key := range raw {
			if !slices.Contains(knownFrontmatterKeys, key) {
				log.Printf("  Skipping unknown frontmatter field %s in post %v\n", key, relPath)
			}
		}
	}

	if strings.TrimSpace(fm.Title) == "" {
		return nil, fmt.Errorf("post %v: title is required", srcPath)
	}

	p := &post{
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Slug:        slugForPath(relPath),
		SourcePath:  srcPath,
		Body:        body,
		Draft:       fm.Draft,
	}
	if path.Base(strings.TrimSuffix(relPath, path.Ext(relPath))) == "index" {
		p.AssetDir = filepath.Dir(srcPath)
	}

	for _, t := range fm.Tags {
		t = strings.TrimSpace(t)
		if tag(t).Id() == "" {
			continue
		}
		p.Tags = append(p.Tags, tag(t))
	}

	if fm.Date != "" {
		d, err := parseDate(fm.Date)
		if err != nil {
			return nil, fmt.Errorf("post %v: %w", srcPath, err)
		}
		p.Date = d
	} else {
		d, err := extractDateFromFilename(nameForDate(relPath), dateStampFormat)
		if err != nil {
			return nil, fmt.Errorf("post %v has no date: %w", srcPath, err)
		}
		p.Date = *d
	}

	return p, nil
}

// slugForPath maps a content path to its URL: "2019/hello.md" and
// "2019/hello/index.md" both become "/2019/hello/".
func slugForPath(relPath string) string {
	p := strings.TrimSuffix(relPath, path.Ext(relPath))
	if path.Base(p) == "index" {
		p = path.Dir(p)
	}
	if p == "." || p == "" {
		return "/"
	}
	return "/" + strings.Trim(p, "/") + "/"
}

// nameForDate is the name a date stamp prefix is looked for in: the file
// name, or the directory name for index files.
func nameForDate(relPath string) string {
	name := path.Base(strings.TrimSuffix(relPath, path.Ext(relPath)))
	if name == "index" {
		name = path.Base(path.Dir(relPath))
	}
	return name
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000Z",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func extractDateFromFilename(filename string, dateStampFormat string) (*time.Time, error) {
	if len(filename) < len(dateStampFormat) {
		return nil, fmt.Errorf("name %v too short for a date stamp", filename)
	}

	dateStr := filename[:len(dateStampFormat)]
	date, err := time.Parse(dateStampFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date stamp in %v, expected format %v", filename, dateStampFormat)
	}
	return &date, nil
}

// walkFiles calls fn for every regular file below dir with its path
// relative to dir.
func walkFiles(dir string, fn func(path, rel string) error) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		return fn(p, rel)
	})
}
