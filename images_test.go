package main

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodeTestImage(t *testing.T, w, h int, format string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	var buf bytes.Buffer
	var err error
	if format == "png" {
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, nil)
	}
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decodeConfig(t *testing.T, path string) (image.Config, string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	return cfg, format
}

func TestResizeImage(t *testing.T) {
	out, resized, err := resizeImage(encodeTestImage(t, 1000, 500, "png"), 590, 80)
	if err != nil {
		t.Fatal(err)
	}
	if !resized {
		t.Fatal("wide image was not resized")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" || cfg.Width != 590 || cfg.Height != 295 {
		t.Errorf("got %s %dx%d, want png 590x295", format, cfg.Width, cfg.Height)
	}

	if _, resized, err := resizeImage(encodeTestImage(t, 300, 200, "jpeg"), 590, 80); err != nil || resized {
		t.Errorf("narrow image: resized = %v, err = %v", resized, err)
	}

	if _, _, err := resizeImage([]byte("not an image"), 590, 80); err == nil {
		t.Error("expected a decode error")
	}
}

func TestProcessImages(t *testing.T) {
	conf := newTestConf(t)
	writeTestFile(t, filepath.Join(conf.ContentDir, "second", "wide.jpg"), string(encodeTestImage(t, 1200, 600, "jpeg")))
	writeTestFile(t, filepath.Join(conf.ContentDir, "second", "small.png"), string(encodeTestImage(t, 100, 50, "png")))
	writeTestFile(t, filepath.Join(conf.AssetsDir, "img", "banner.png"), string(encodeTestImage(t, 800, 100, "png")))

	var progress bytes.Buffer
	site, err := ReadSite(conf, false, withProgress(&progress))
	if err != nil {
		t.Fatal(err)
	}
	if err := site.ProcessImages(); err != nil {
		t.Fatal(err)
	}

	postDir := filepath.Join(conf.OutDir, "second")
	if cfg, format := decodeConfig(t, filepath.Join(postDir, "wide.jpg")); format != "jpeg" || cfg.Width != 590 || cfg.Height != 295 {
		t.Errorf("wide.jpg: %s %dx%d", format, cfg.Width, cfg.Height)
	}
	if cfg, _ := decodeConfig(t, filepath.Join(postDir, "small.png")); cfg.Width != 100 {
		t.Errorf("small.png width = %d, want it untouched", cfg.Width)
	}
	if got := readTestFile(t, filepath.Join(postDir, "notes.txt")); got != "attached" {
		t.Errorf("notes.txt = %q", got)
	}
	if _, err := os.Stat(filepath.Join(postDir, "index.md")); err == nil {
		t.Error("post source was copied to the output")
	}
	if cfg, _ := decodeConfig(t, filepath.Join(conf.OutDir, "img", "banner.png")); cfg.Width != 590 {
		t.Errorf("banner.png width = %d, want 590", cfg.Width)
	}
	if progress.Len() == 0 {
		t.Error("no progress reported")
	}
}
