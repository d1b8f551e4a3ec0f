package console

import (
	"rico-32/internal/canvas"
	"rico-32/internal/input"
	"rico-32/internal/palette"
)

// NavBar is the tab strip along the top of the console.
type NavBar struct {
	canvas   *canvas.Canvas
	tabs     []string
	selected int
}

// NewNavBar returns a bar with the first tab selected.
func NewNavBar(tabs ...string) *NavBar {
	return &NavBar{
		canvas: canvas.New(Width, NavHeight, palette.Gray),
		tabs:   tabs,
	}
}

func tabWidth(label string) int {
	return len(label)*4 + 5
}

// Update draws the bar and reports whether a click changed the selection.
func (n *NavBar) Update(in input.Snapshot) bool {
	n.canvas.Clear(palette.Gray)
	switched := false
	x := 1
	for i, label := range n.tabs {
		w := tabWidth(label)
		p := in.Pointer
		if p.JustPressed && p.X != -1 && p.X >= x && p.X <= x+w && i != n.selected {
			n.selected = i
			switched = true
		}
		ink := palette.Black
		if i == n.selected {
			n.canvas.FillRect(x, 0, w, NavHeight, palette.Black)
			ink = palette.White
		}
		n.canvas.PrintMid(x+2, 2, ink, label)
		x += w
	}
	return switched
}

// Selected returns the selected tab index.
func (n *NavBar) Selected() int { return n.selected }

// Canvas returns the bar's pixels.
func (n *NavBar) Canvas() *canvas.Canvas { return n.canvas }
