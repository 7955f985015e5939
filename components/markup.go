// Package components renders the blog's pages. Every component is a pure
// function of its arguments: the same input always produces the same bytes.
package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// markup writes HTML and remembers the first error.
type markup struct {
	w   io.Writer
	err error
}

func (m *markup) raw(ss ...string) {
	for _, s := range ss {
		if m.err != nil {
			return
		}
		_, m.err = io.WriteString(m.w, s)
	}
}

func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

func (m *markup) attr(name, value string) {
	m.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (m *markup) href(u string) {
	m.attr("href", string(templ.URL(u)))
}

func (m *markup) render(ctx context.Context, c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(ctx, m.w)
}

func component(f func(ctx context.Context, m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		f(ctx, m)
		return m.err
	})
}
