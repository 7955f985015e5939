package main

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

// siteAssets are written to the root of every build: site.css and
// header.js, the browser half of the collapsible header.
//
//go:embed assets/*
var siteAssets embed.FS

func (s *Site) WriteAssets() error {
	return fs.WalkDir(siteAssets, "assets", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := siteAssets.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel("assets", filepath.FromSlash(p))
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(s.conf.OutDir, rel), data, 0o664)
	})
}
