package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/t0lya/blog/components"
)

func formatDate(d time.Time) string {
	return d.Format("January 02, 2006")
}

func formatDateShort(d time.Time) string {
	return d.Format("Jan 2, 2006")
}

// pageWriter renders pages inside the site layout and writes them below
// outDir.
type pageWriter struct {
	outDir string
	site   components.Site
}

// outPath maps a site path such as "/about/" to the file serving it.
func (pw pageWriter) outPath(urlPath string) string {
	p := path.Clean("/" + urlPath)
	if strings.HasSuffix(urlPath, "/") || p == "/" {
		p = path.Join(p, "index.html")
	}
	return filepath.Join(pw.outDir, filepath.FromSlash(p))
}

func (pw pageWriter) writePage(meta components.PageMeta, body templ.Component) error {
	return pw.writeFile(pw.outPath(meta.Path), components.Layout(pw.site, meta, body))
}

func (pw pageWriter) writeFile(filePath string, c templ.Component) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o775); err != nil {
		return err
	}
	f, err := os.Create(filePath)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := c.Render(context.Background(), w); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", filePath, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
