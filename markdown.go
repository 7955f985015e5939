package main

import (
	"bytes"
	"fmt"

	"github.com/russross/blackfriday/v2"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

type renderer interface {
	render(in []byte) (string, error)
}

func newMarkdownRenderer(conf MarkdownConf) (renderer, error) {
	switch conf.Engine {
	case engineGoldmark, "":
		return newGoldmarkRenderer(conf.HighlightStyle), nil
	case engineBlackfriday:
		return newBlackfridayRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown markdown engine %q", conf.Engine)
	}
}

type goldmarkRenderer struct {
	md goldmark.Markdown
}

func newGoldmarkRenderer(style string) *goldmarkRenderer {
	exts := []goldmark.Extender{
		extension.GFM,
		extension.Typographer,
	}
	if style != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(style),
		))
	}
	return &goldmarkRenderer{md: goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// Posts embed iframes and raw HTML.
			html.WithUnsafe(),
		),
	)}
}

func (g *goldmarkRenderer) render(in []byte) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(in, &buf); err != nil {
		return "", err
	}
	return postProcessHTML(buf.String())
}

const blackfridayFlags = blackfriday.UseXHTML |
	blackfriday.Smartypants |
	blackfriday.SmartypantsFractions |
	blackfriday.SmartypantsLatexDashes

const blackfridayExtensions = blackfriday.NoIntraEmphasis |
	blackfriday.Tables |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.HeadingIDs |
	blackfriday.AutoHeadingIDs

type blackfridayRenderer struct{}

func newBlackfridayRenderer() *blackfridayRenderer { return &blackfridayRenderer{} }

func (b *blackfridayRenderer) render(in []byte) (string, error) {
	// HTMLRenderer keeps per-document state, so it is not shared.
	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: blackfridayFlags})
	out := blackfriday.Run(in, blackfriday.WithRenderer(r), blackfriday.WithExtensions(blackfridayExtensions))
	return postProcessHTML(string(out))
}
