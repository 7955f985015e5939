// Package menu holds the expand/collapse state of the site header and the
// outside-interaction detection that dismisses it.
package menu

// State is the header's menu state. The zero value is Collapsed.
type State uint8

const (
	Collapsed State = iota
	Expanded
)

func (s State) String() string {
	if s == Expanded {
		return "expanded"
	}
	return "collapsed"
}

// Glyph names the icon shown on the toggle control.
type Glyph string

const (
	GlyphOpen  Glyph = "bars"
	GlyphClose Glyph = "times"
)

// Menu is the finite-state value owned by one header instance.
type Menu struct {
	state State
}

func (m *Menu) State() State { return m.state }

func (m *Menu) Expanded() bool { return m.state == Expanded }

// Toggle flips the state.
func (m *Menu) Toggle() {
	if m.state == Expanded {
		m.state = Collapsed
	} else {
		m.state = Expanded
	}
}

// Dismiss forces the menu closed and reports whether that changed anything.
func (m *Menu) Dismiss() bool {
	if m.state == Collapsed {
		return false
	}
	m.state = Collapsed
	return true
}

// Reset returns the menu to its initial state.
func (m *Menu) Reset() { m.state = Collapsed }

// Icon is the glyph for the current state.
func (m *Menu) Icon() Glyph { return IconFor(m.state) }

func IconFor(s State) Glyph {
	if s == Expanded {
		return GlyphClose
	}
	return GlyphOpen
}
