package console

import (
	"time"

	"rico-32/internal/api"
	"rico-32/internal/canvas"
	"rico-32/internal/input"
	"rico-32/internal/palette"
)

// PanelLines is how many log lines the panel shows.
const PanelLines = 19

// Halt and restart button boxes on the log panel.
var (
	haltButton    = input.Rect{X: 50, Y: 2, W: 13, H: 9}
	restartButton = input.Rect{X: 66, Y: 2, W: 13, H: 9}
)

var restartIcon = func() [][]palette.Color {
	rows := []string{
		"..gggg.",
		".gg.ggg",
		"gg...g.",
		"g......",
		"gg....g",
		".gg..gg",
		"..gggg.",
	}
	out := make([][]palette.Color, len(rows))
	for i, row := range rows {
		out[i] = make([]palette.Color, len(row))
		for j := range row {
			if row[j] == 'g' {
				out[i][j] = palette.Gray
			}
		}
	}
	return out
}()

// Game runs a script on the game canvas above a log panel.
type Game struct {
	newScript func() api.Script
	load      api.SpriteLoader

	host   *api.Host
	script api.Script
	panel  *canvas.Canvas

	halted bool
}

// NewGame boots a script. newScript is called again on every restart.
func NewGame(newScript func() api.Script, load api.SpriteLoader) *Game {
	g := &Game{
		newScript: newScript,
		load:      load,
		panel:     canvas.New(Width, api.ScreenSize, palette.Gray),
	}
	g.boot()
	return g
}

// boot starts a fresh mutator and script. Start failures are already in the log.
func (g *Game) boot() {
	m := api.NewMutator(g.load)
	g.host = api.NewHost(m)
	g.script = g.newScript()
	g.host.Start(g.script)
}

// Host returns the script host.
func (g *Game) Host() *api.Host { return g.host }

// Halted reports whether the script is paused.
func (g *Game) Halted() bool { return g.halted }

// Update runs one frame: the script (unless halted) with view input, then the
// log panel with panel input.
func (g *Game) Update(view, panel input.Snapshot, dt time.Duration) {
	if !g.halted {
		g.host.With(func(m *api.Mutator) error {
			m.SetInput(view)
			return nil
		})
		g.host.Update(g.script, dt)
	}
	g.updatePanel(panel)
}

func clicked(p input.Pointer, r input.Rect) bool {
	// The control boxes include their far edges.
	return p.ClickedIn(r.X, r.Y, r.W+1, r.H+1)
}

func (g *Game) updatePanel(in input.Snapshot) {
	g.panel.Clear(palette.Gray)

	g.panel.FillRect(haltButton.X, haltButton.Y, haltButton.W, haltButton.H, palette.Silver)
	if g.halted {
		g.panel.Circle(56, 6, 2, palette.Green)
	} else {
		g.panel.FillRect(54, 4, 5, 5, palette.Red)
	}
	g.panel.FillRect(restartButton.X, restartButton.Y, restartButton.W, restartButton.H, palette.Silver)
	g.panel.BlitGrid(restartButton.X+3, restartButton.Y+1, restartIcon)

	if clicked(in.Pointer, haltButton) {
		g.halted = !g.halted
	}
	if clicked(in.Pointer, restartButton) {
		g.halted = false
		g.boot()
	}

	var logs []api.LogLine
	g.host.With(func(m *api.Mutator) error {
		logs = m.Logs(PanelLines)
		return nil
	})
	for i, l := range logs {
		ink := palette.Black
		if l.Kind == api.LogError {
			ink = palette.Maroon
		}
		g.panel.PrintMid(1, 6*i+2+3*6, ink, l.Text)
	}
}
