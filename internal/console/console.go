// Package console assembles the RICO-32 screens into one frame: a nav bar on
// top and either the game view with its log panel or the sprite editor below.
package console

import (
	"time"

	"rico-32/internal/api"
	"rico-32/internal/canvas"
	"rico-32/internal/compose"
	"rico-32/internal/editor"
	"rico-32/internal/input"
	"rico-32/internal/sheet"
)

// Frame geometry in console pixels.
const (
	Width        = 128
	NavHeight    = 8
	RegionHeight = 256
	Height       = NavHeight + RegionHeight
	// Scale is the upscale used by windowed hosts.
	Scale = 4
)

// Screen selects what fills the region under the nav bar.
type Screen int

const (
	ScreenGame Screen = iota
	ScreenSprite
)

func (s Screen) String() string {
	switch s {
	case ScreenGame:
		return "Game"
	case ScreenSprite:
		return "Sprite"
	}
	return "Screen(?)"
}

var (
	navRegion    = input.Rect{X: 0, Y: 0, W: Width, H: NavHeight}
	viewRegion   = input.Rect{X: 0, Y: NavHeight, W: Width, H: api.ScreenSize}
	panelRegion  = input.Rect{X: 0, Y: NavHeight + api.ScreenSize, W: Width, H: api.ScreenSize}
	editorRegion = input.Rect{X: 0, Y: NavHeight, W: Width, H: RegionHeight}
)

// Config wires a console to its sheet and script.
type Config struct {
	Sheet *sheet.Sheet
	// Save persists the sheet; nil keeps it in memory only.
	Save editor.SaveFunc
	// Sprites backs the script's sprite drawing. Usually api.FileSprites on
	// the same file Save writes.
	Sprites api.SpriteLoader
	// Script builds the game program; nil runs api.Hello.
	Script func() api.Script
	Editor editor.Options
	// Scale is the output upscale factor; 0 means 1.
	Scale int
	// Workers splits compositing across goroutines when above 1.
	Workers int
}

// Console owns every screen and the output frame. It is confined to the
// host's frame loop.
type Console struct {
	nav     *NavBar
	screen  Screen
	game    *Game
	editor  *editor.Editor
	frame   *compose.Frame
	scale   int
	workers int
}

// New builds a console.
func New(cfg Config) *Console {
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	script := cfg.Script
	if script == nil {
		script = func() api.Script { return api.Hello{} }
	}

	c := &Console{
		nav:     NewNavBar(ScreenGame.String(), ScreenSprite.String()),
		screen:  ScreenGame,
		game:    NewGame(script, cfg.Sprites),
		frame:   compose.NewFrame(Width*scale, Height*scale),
		scale:   scale,
		workers: cfg.Workers,
	}
	c.editor = editor.New(cfg.Sheet, c.saver(cfg.Save), cfg.Editor)
	return c
}

// saver wraps save so a successful save makes the game reread its sprites.
func (c *Console) saver(save editor.SaveFunc) editor.SaveFunc {
	if save == nil {
		return nil
	}
	return func(s *sheet.Sheet) error {
		if err := save(s); err != nil {
			return err
		}
		c.game.Host().With(func(m *api.Mutator) error {
			m.ForgetSprites()
			return nil
		})
		return nil
	}
}

// Update runs one frame. in is in console pixels; each screen receives its
// own localized copy.
func (c *Console) Update(in input.Snapshot, dt time.Duration) {
	c.nav.Update(input.Localize(in, navRegion))
	c.screen = Screen(c.nav.Selected())

	c.draw(c.nav.Canvas(), navRegion)
	switch c.screen {
	case ScreenGame:
		c.game.Update(input.Localize(in, viewRegion), input.Localize(in, panelRegion), dt)
		c.game.Host().With(func(m *api.Mutator) error {
			c.draw(m.Canvas(), viewRegion)
			return nil
		})
		c.draw(c.game.panel, panelRegion)
	case ScreenSprite:
		c.editor.Update(input.Localize(in, editorRegion))
		c.draw(c.editor.Screen(), editorRegion)
	}
}

func (c *Console) draw(cv *canvas.Canvas, r input.Rect) {
	if c.workers > 1 {
		compose.ComposeParallel(c.frame.Pix, c.frame.Width, cv, c.scale, r.X*c.scale, r.Y*c.scale, c.workers)
		return
	}
	c.frame.Draw(cv, c.scale, r.X*c.scale, r.Y*c.scale)
}

// Frame returns the composed output.
func (c *Console) Frame() *compose.Frame { return c.frame }

// Screen returns the visible screen.
func (c *Console) Screen() Screen { return c.screen }

// Editor returns the sprite editor.
func (c *Console) Editor() *editor.Editor { return c.editor }

// Game returns the game screen.
func (c *Console) Game() *Game { return c.game }

// FrameRate returns the rate the running script asked for.
func (c *Console) FrameRate() int {
	fps := api.DefaultFrameRate
	c.game.Host().With(func(m *api.Mutator) error {
		fps = m.FrameRate()
		return nil
	})
	return fps
}
