package menu

import (
	"sync"
	"testing"
)

func TestToggleSymmetry(t *testing.T) {
	var m Menu
	if m.State() != Collapsed {
		t.Fatalf("initial state = %v, want collapsed", m.State())
	}
	m.Toggle()
	if m.State() != Expanded || !m.Expanded() {
		t.Errorf("after one toggle = %v, want expanded", m.State())
	}
	m.Toggle()
	if m.State() != Collapsed {
		t.Errorf("after two toggles = %v, want collapsed", m.State())
	}
}

func TestDismissIdempotent(t *testing.T) {
	var m Menu
	m.Toggle()
	if !m.Dismiss() {
		t.Error("dismiss from expanded reported no change")
	}
	if m.State() != Collapsed {
		t.Errorf("state = %v, want collapsed", m.State())
	}
	if m.Dismiss() {
		t.Error("dismiss from collapsed reported a change")
	}
	if m.State() != Collapsed {
		t.Errorf("state = %v, want collapsed", m.State())
	}
}

func TestIconReflectsState(t *testing.T) {
	var m Menu
	if m.Icon() != GlyphOpen {
		t.Errorf("collapsed icon = %q, want %q", m.Icon(), GlyphOpen)
	}
	m.Toggle()
	if m.Icon() != GlyphClose {
		t.Errorf("expanded icon = %q, want %q", m.Icon(), GlyphClose)
	}
}

func TestNodeContains(t *testing.T) {
	root := NewNode("body")
	header := root.Append("header")
	button := header.Append("button")
	main := root.Append("main")
	if button.Parent() != header || root.Parent() != nil {
		t.Fatal("Append did not link parents")
	}

	tests := []struct {
		name   string
		n      *Node
		target *Node
		want   bool
	}{
		{"self", header, header, true},
		{"child", header, button, true},
		{"sibling", header, main, false},
		{"ancestor", header, root, false},
		{"nil target", header, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.Contains(tt.target); got != tt.want {
				t.Errorf("Contains = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWatchFiresOncePerOutsideInteraction(t *testing.T) {
	d := NewDispatcher()
	root := NewNode("body")
	header := root.Append("header")
	inside := header.Append("a")
	outside := root.Append("main")

	calls := 0
	release := Watch(d, header, func() { calls++ })
	defer release()

	d.Dispatch(Interaction{Kind: PointerDown, Target: inside})
	if calls != 0 {
		t.Fatalf("inside pointer-down fired %d times", calls)
	}
	d.Dispatch(Interaction{Kind: Activate, Target: outside})
	if calls != 0 {
		t.Fatalf("outside activation fired %d times", calls)
	}
	d.Dispatch(Interaction{Kind: PointerDown, Target: outside})
	if calls != 1 {
		t.Fatalf("outside pointer-down fired %d times, want 1", calls)
	}
	d.Dispatch(Interaction{Kind: PointerDown, Target: outside})
	if calls != 2 {
		t.Fatalf("second outside pointer-down: calls = %d, want 2", calls)
	}
}

func TestReleaseDeregisters(t *testing.T) {
	d := NewDispatcher()
	header := NewNode("header")
	calls := 0
	release := Watch(d, header, func() { calls++ })
	if d.Len() != 1 {
		t.Fatalf("Len = %d, want 1", d.Len())
	}
	release()
	release()
	if d.Len() != 0 {
		t.Fatalf("Len after release = %d, want 0", d.Len())
	}
	d.Dispatch(Interaction{Kind: PointerDown, Target: NewNode("elsewhere")})
	if calls != 0 {
		t.Errorf("released listener called %d times", calls)
	}
}

func TestReleaseDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	var second func()
	var secondCalls int
	first := d.Listen(func(Interaction) { second() })
	second = d.Listen(func(Interaction) { secondCalls++ })
	defer first()

	d.Dispatch(Interaction{Kind: PointerDown})
	if secondCalls != 0 {
		t.Errorf("listener released mid-dispatch was called %d times", secondCalls)
	}
}

func TestDispatchSerialised(t *testing.T) {
	d := NewDispatcher()
	var m Menu
	header := NewNode("header")
	button := header.Append("button")
	outside := NewNode("main")

	release := d.Listen(func(in Interaction) {
		switch {
		case in.Kind == Activate && button.Contains(in.Target):
			m.Toggle()
		case in.Kind == PointerDown && !header.Contains(in.Target):
			m.Dismiss()
		}
	})
	defer release()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.Dispatch(Interaction{Kind: Activate, Target: button})
		}()
		go func() {
			defer wg.Done()
			d.Dispatch(Interaction{Kind: PointerDown, Target: outside})
		}()
	}
	wg.Wait()

	if s := m.State(); s != Collapsed && s != Expanded {
		t.Fatalf("unreachable state %d", s)
	}
}
