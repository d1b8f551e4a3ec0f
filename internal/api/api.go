// Package api is the drawing surface handed to game scripts. Colors and keys
// are passed by name, as a script would; a Mutator is only reachable through
// Host.With, so one caller at a time owns the canvas.
package api

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"rico-32/internal/canvas"
	"rico-32/internal/input"
	"rico-32/internal/palette"
	"rico-32/internal/sheet"
)

const (
	// ScreenSize is the edge of the square game canvas.
	ScreenSize = 128
	// LogChunk is the widest log line the console panel shows.
	LogChunk = 30
	// MaxLogs bounds the retained log history.
	MaxLogs = 256
	// DefaultFrameRate is the script frame rate until the script sets one.
	DefaultFrameRate = 60
)

// ErrInvalidKey is returned for key names ParseKey does not know.
var ErrInvalidKey = errors.New("invalid key name")

// LogKind separates script output from script failures.
type LogKind int

const (
	LogInfo LogKind = iota
	LogError
)

// LogLine is one displayed console line.
type LogLine struct {
	Kind LogKind
	Text string
}

// SpriteLoader fetches one sprite by sheet index.
type SpriteLoader func(idx int) (*canvas.Canvas, error)

// FileSprites reads single sprites from a sheet file on demand.
func FileSprites(path string, size int) SpriteLoader {
	return func(idx int) (*canvas.Canvas, error) {
		return sheet.OpenSprite(path, size, idx)
	}
}

// ReaderSprites reads single sprites from an encoded sheet.
func ReaderSprites(r io.ReaderAt, size int) SpriteLoader {
	return func(idx int) (*canvas.Canvas, error) {
		return sheet.ReadSprite(r, size, idx)
	}
}

// Mutator wraps the game canvas plus the per-frame state a script may read.
type Mutator struct {
	canvas    *canvas.Canvas
	load      SpriteLoader
	sprites   map[int]*canvas.Canvas
	logs      []LogLine
	in        input.Snapshot
	frameRate int
}

// NewMutator returns a mutator over a fresh black game canvas.
func NewMutator(load SpriteLoader) *Mutator {
	return &Mutator{
		canvas:    canvas.New(ScreenSize, ScreenSize, palette.Black),
		load:      load,
		sprites:   make(map[int]*canvas.Canvas),
		in:        input.Snapshot{Pointer: input.Outside},
		frameRate: DefaultFrameRate,
	}
}

// Canvas returns the game canvas for compositing.
func (m *Mutator) Canvas() *canvas.Canvas { return m.canvas }

// SetPix paints one pixel.
func (m *Mutator) SetPix(x, y int, name string) error {
	c, err := palette.Parse(name)
	if err != nil {
		return err
	}
	m.canvas.SetPixel(y, x, c)
	return nil
}

// GetPix returns the color name at (x, y).
func (m *Mutator) GetPix(x, y int) (string, error) {
	c, err := m.canvas.At(y, x)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// RectFill paints a filled rectangle.
func (m *Mutator) RectFill(x, y, w, h int, name string) error {
	c, err := palette.Parse(name)
	if err != nil {
		return err
	}
	m.canvas.FillRect(x, y, w, h, c)
	return nil
}

// Rect draws a rectangle outline.
func (m *Mutator) Rect(x, y, w, h int, name string) error {
	c, err := palette.Parse(name)
	if err != nil {
		return err
	}
	m.canvas.Rect(x, y, w, h, c)
	return nil
}

// Circle paints a filled circle.
func (m *Mutator) Circle(x, y, r int, name string) error {
	c, err := palette.Parse(name)
	if err != nil {
		return err
	}
	m.canvas.Circle(x, y, r, c)
	return nil
}

// Clear paints the whole canvas.
func (m *Mutator) Clear(name string) error {
	c, err := palette.Parse(name)
	if err != nil {
		return err
	}
	m.canvas.Clear(c)
	return nil
}

func (m *Mutator) text(f *canvas.Font, x, y int, name, msg string) error {
	c, err := palette.Parse(name)
	if err != nil {
		return err
	}
	m.canvas.Text(f, x, y, c, msg)
	return nil
}

// Print draws text in the large font.
func (m *Mutator) Print(x, y int, name, msg string) error {
	return m.text(canvas.Large, x, y, name, msg)
}

// PrintMid draws text in the 4px font.
func (m *Mutator) PrintMid(x, y int, name, msg string) error {
	return m.text(canvas.Mid, x, y, name, msg)
}

// PrintMini draws text in the packed 3px font.
func (m *Mutator) PrintMini(x, y int, name, msg string) error {
	return m.text(canvas.Mini, x, y, name, msg)
}

// Draw blits sprite idx at (x, y). Each sprite is read from the sheet once
// and cached.
func (m *Mutator) Draw(x, y, idx int) error {
	sp, ok := m.sprites[idx]
	if !ok {
		if m.load == nil {
			return fmt.Errorf("sprite %d: no sheet: %w", idx, canvas.ErrOutOfBounds)
		}
		var err error
		sp, err = m.load(idx)
		if err != nil {
			return fmt.Errorf("draw sprite %d: %w", idx, err)
		}
		m.sprites[idx] = sp
	}
	m.canvas.Blit(x, y, sp)
	return nil
}

// ForgetSprites drops the sprite cache so edited sprites are read again.
func (m *Mutator) ForgetSprites() {
	clear(m.sprites)
}

// Log appends a script message.
func (m *Mutator) Log(msg string) {
	m.addLog(LogInfo, "[Log] "+msg)
}

// LogError appends a failure message.
func (m *Mutator) LogError(err error) {
	m.addLog(LogError, err.Error())
	m.addLog(LogError, " ")
}

// addLog splits msg into panel-width chunks. A chunk never ends inside a
// multi-byte rune.
func (m *Mutator) addLog(kind LogKind, msg string) {
	for len(msg) > LogChunk {
		cut := LogChunk
		for cut > 1 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		m.logs = append(m.logs, LogLine{Kind: kind, Text: msg[:cut]})
		msg = msg[cut:]
	}
	m.logs = append(m.logs, LogLine{Kind: kind, Text: msg})
	if over := len(m.logs) - MaxLogs; over > 0 {
		m.logs = append(m.logs[:0], m.logs[over:]...)
	}
}

// Logs returns the last n log lines, oldest first.
func (m *Mutator) Logs(n int) []LogLine {
	if n > len(m.logs) {
		n = len(m.logs)
	}
	out := make([]LogLine, n)
	copy(out, m.logs[len(m.logs)-n:])
	return out
}

// SetInput installs this frame's game-region input.
func (m *Mutator) SetInput(in input.Snapshot) { m.in = in }

// Mouse returns the pointer over the game canvas. Outside the canvas it
// reports no button state.
func (m *Mutator) Mouse() input.Pointer {
	p := m.in.Pointer
	if p.X == -1 {
		return input.Outside
	}
	return p
}

// KeyPressed reports whether the named key is held.
func (m *Mutator) KeyPressed(name string) (bool, error) {
	k, ok := input.ParseKey(name)
	if !ok {
		return false, fmt.Errorf("%q: %w", name, ErrInvalidKey)
	}
	return m.in.Held.Has(k), nil
}

// KeyJustPressed reports whether the named key was pressed this frame.
func (m *Mutator) KeyJustPressed(name string) (bool, error) {
	k, ok := input.ParseKey(name)
	if !ok {
		return false, fmt.Errorf("%q: %w", name, ErrInvalidKey)
	}
	return m.in.Just.Has(k), nil
}

// SetFrameRate changes the script's target rate.
func (m *Mutator) SetFrameRate(fps int) {
	if fps > 0 {
		m.frameRate = fps
	}
}

// FrameRate returns the script's target rate.
func (m *Mutator) FrameRate() int { return m.frameRate }

// Host serializes access to a Mutator.
type Host struct {
	mu sync.Mutex
	m  *Mutator
}

// NewHost wraps m. m must not be used directly afterwards.
func NewHost(m *Mutator) *Host {
	return &Host{m: m}
}

// With runs fn with exclusive use of the mutator. fn must not retain it.
func (h *Host) With(fn func(*Mutator) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.m)
}
