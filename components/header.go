package components

import (
	"context"
	"sync"

	"github.com/a-h/templ"

	"github.com/t0lya/blog/menu"
)

var glyphs = map[menu.Glyph]string{
	menu.GlyphOpen:  "☰",
	menu.GlyphClose: "✕",
}

// HeaderView renders the collapsible navigation header in the given state.
// children, if any, are rendered inside the dropdown after the links.
func HeaderView(p HeaderProps, state menu.State, children templ.Component) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		expanded := state == menu.Expanded
		headerClass, dropdownClass := "header", "dropdown"
		if expanded {
			headerClass += " header-expanded"
			dropdownClass += " dropdown-expanded"
		}

		m.raw("<header")
		m.attr("class", headerClass)
		m.attr("data-menu", state.String())
		m.raw(`><div class="top-bar"><a class="logo" href="/">`)
		if p.Logo != "" {
			m.raw("<img")
			m.attr("src", p.Logo)
			m.raw(` alt="">`)
		}
		m.raw("<span>")
		m.text(p.Title)
		m.raw("</span></a>")

		glyph := menu.IconFor(state)
		m.raw(`<button class="hamburger" type="button" aria-label="Navigation Menu"`)
		if expanded {
			m.attr("aria-expanded", "true")
		} else {
			m.attr("aria-expanded", "false")
		}
		m.raw("><span")
		m.attr("class", "icon icon-"+string(glyph))
		m.raw(` aria-hidden="true">`, glyphs[glyph], "</span></button></div>")

		m.raw("<div")
		m.attr("class", dropdownClass)
		m.raw(`><ul class="menu">`)
		for _, l := range p.Links {
			m.raw("<li><a")
			m.href(l.URL)
			if l.External() {
				m.raw(` target="_blank" rel="noopener noreferrer"`)
			}
			m.raw("><span")
			m.attr("class", "icon icon-"+l.Icon)
			m.raw(` aria-hidden="true"></span><span>`)
			m.text(l.Name)
			m.raw("</span></a></li>")
		}
		m.raw("</ul>")
		m.render(ctx, children)
		m.raw("</div></header>")
	})
}

// Header is a mounted header instance: it owns the menu state and the
// boundary used to tell inside interactions from outside ones.
type Header struct {
	props HeaderProps

	mu      sync.Mutex
	menu    menu.Menu
	root    *menu.Node
	toggle  *menu.Node
	release []func()
}

// NewHeader creates a header whose root node is a child of parent.
// parent may be nil.
func NewHeader(p HeaderProps, parent *menu.Node) *Header {
	var root *menu.Node
	if parent != nil {
		root = parent.Append("header")
	} else {
		root = menu.NewNode("header")
	}
	return &Header{
		props:  p,
		root:   root,
		toggle: root.Append("button.hamburger"),
	}
}

// Root is the header's boundary node.
func (h *Header) Root() *menu.Node { return h.root }

// ToggleControl is the node of the hamburger button.
func (h *Header) ToggleControl() *menu.Node { return h.toggle }

// Mount starts listening on s in the collapsed state. Mounting an already
// mounted header remounts it.
func (h *Header) Mount(s menu.Surface) {
	h.Unmount()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.menu.Reset()
	h.release = []func(){
		s.Listen(h.onActivate),
		menu.Watch(s, h.root, h.dismiss),
	}
}

// Unmount stops listening. The state is discarded on the next Mount.
func (h *Header) Unmount() {
	h.mu.Lock()
	release := h.release
	h.release = nil
	h.mu.Unlock()

	for _, r := range release {
		r()
	}
}

func (h *Header) onActivate(in menu.Interaction) {
	if in.Kind != menu.Activate || !h.toggle.Contains(in.Target) {
		return
	}
	h.Activate()
}

// Activate toggles the menu, as a click on the hamburger button does.
func (h *Header) Activate() {
	h.mu.Lock()
	h.menu.Toggle()
	h.mu.Unlock()
}

func (h *Header) dismiss() {
	h.mu.Lock()
	h.menu.Dismiss()
	h.mu.Unlock()
}

func (h *Header) State() menu.State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.menu.State()
}

// View renders the header as it currently is.
func (h *Header) View(children templ.Component) templ.Component {
	return HeaderView(h.props, h.State(), children)
}
