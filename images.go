package main

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/image/draw"
)

type assetJob struct {
	src, dst string
}

// ProcessImages copies the shared assets directory to the site root and
// every post's own files next to its page. JPEG and PNG images wider than
// images.max_width are scaled down on the way.
func (s *Site) ProcessImages() error {
	var jobs []assetJob
	collect := func(srcDir, dstDir string) error {
		if srcDir == "" || !dirExists(srcDir) {
			return nil
		}
		return walkFiles(srcDir, func(p, rel string) error {
			if strings.EqualFold(filepath.Ext(p), ".md") {
				return nil
			}
			jobs = append(jobs, assetJob{src: p, dst: filepath.Join(dstDir, rel)})
			return nil
		})
	}

	if err := collect(s.conf.AssetsDir, s.conf.OutDir); err != nil {
		return err
	}
	for _, p := range s.posts {
		if p.AssetDir == "" {
			continue
		}
		if err := collect(p.AssetDir, filepath.Join(s.conf.OutDir, filepath.FromSlash(p.Slug))); err != nil {
			return err
		}
	}
	if len(jobs) == 0 {
		return nil
	}

	bar := progressbar.NewOptions(len(jobs),
		progressbar.OptionSetWriter(s.progress),
		progressbar.OptionSetDescription("Processing images"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)
	for _, j := range jobs {
		if err := s.processAsset(j); err != nil {
			return fmt.Errorf("processing %v: %w", j.src, err)
		}
		_ = bar.Add(1)
	}
	return bar.Finish()
}

func (s *Site) processAsset(j assetJob) error {
	switch strings.ToLower(filepath.Ext(j.src)) {
	case ".jpg", ".jpeg", ".png":
	default:
		return copy.Copy(j.src, j.dst)
	}

	data, err := os.ReadFile(j.src)
	if err != nil {
		return err
	}
	out, resized, err := resizeImage(data, s.conf.Images.MaxWidth, s.conf.Images.JpegQuality)
	if err != nil {
		return err
	}
	if !resized {
		return copy.Copy(j.src, j.dst)
	}
	if verbose {
		log.Println("Resized", j.src)
	}
	if err := os.MkdirAll(filepath.Dir(j.dst), 0o775); err != nil {
		return err
	}
	return os.WriteFile(j.dst, out, 0o664)
}

// resizeImage scales the image in data down to maxWidth, keeping the aspect
// ratio and the encoding. It reports false if the image was narrow enough
// already.
func resizeImage(data []byte, maxWidth, quality int) ([]byte, bool, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxWidth {
		return nil, false, nil
	}

	newH := max(1, h*maxWidth/w)
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, dst)
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, false, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), true, nil
}
