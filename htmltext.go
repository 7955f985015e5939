package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const excerptLength = 160

const iframeWrapperStyle = "margin-bottom: 1.0725rem"

// postProcessHTML applies the rewrites every rendered post body gets.
func postProcessHTML(s string) (string, error) {
	if !strings.Contains(s, "<iframe") {
		return s, nil
	}
	return wrapIframes(s)
}

// wrapIframes puts every iframe with a numeric width and height into a
// container that keeps its aspect ratio at any width.
func wrapIframes(fragment string) (string, error) {
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return "", fmt.Errorf("parsing post html: %w", err)
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	var iframes []*html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Iframe {
			iframes = append(iframes, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(container)

	for _, n := range iframes {
		w, errW := strconv.ParseFloat(attr(n, "width"), 64)
		h, errH := strconv.ParseFloat(attr(n, "height"), 64)
		if errW != nil || errH != nil || w <= 0 || h <= 0 {
			continue
		}
		wrapper := &html.Node{
			Type:     html.ElementNode,
			Data:     "div",
			DataAtom: atom.Div,
			Attr: []html.Attribute{
				{Key: "class", Val: "responsive-iframe"},
				{Key: "style", Val: fmt.Sprintf(
					"padding-bottom: %s%%; position: relative; height: 0; overflow: hidden; %s",
					strconv.FormatFloat(h/w*100, 'f', -1, 64), iframeWrapperStyle)},
			},
		}
		parent := n.Parent
		parent.InsertBefore(wrapper, n)
		parent.RemoveChild(n)
		wrapper.AppendChild(n)

		removeAttr(n, "width")
		removeAttr(n, "height")
		setAttr(n, "style", "position: absolute; top: 0; left: 0; width: 100%; height: 100%")
	}

	var b strings.Builder
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			out = append(out, a)
		}
	}
	n.Attr = out
}

func setAttr(n *html.Node, key, val string) {
	removeAttr(n, key)
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// plainText extracts the visible text of an HTML fragment with runs of
// whitespace collapsed to single spaces.
func plainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Script, atom.Style:
				skip++
			case atom.P, atom.Br, atom.Li, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Pre:
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Script, atom.Style:
				if skip > 0 {
					skip--
				}
			case atom.P, atom.Li, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Pre:
				b.WriteByte(' ')
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// excerpt prunes the text of a rendered post to at most n characters,
// cutting on a word boundary and marking the cut with an ellipsis.
func excerpt(fragment string, n int) string {
	text := []rune(plainText(fragment))
	if len(text) <= n {
		return string(text)
	}
	cut := text[:n]
	if !unicode.IsSpace(text[n]) {
		if i := lastSpace(cut); i > 0 {
			cut = cut[:i]
		}
	}
	s := strings.TrimRightFunc(string(cut), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	return s + "…"
}

func lastSpace(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if unicode.IsSpace(rs[i]) {
			return i
		}
	}
	return -1
}
