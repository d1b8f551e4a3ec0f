// Package editor implements the sprite editor screen: a palette, a tool bar,
// a zoomed editing canvas with selection and clipboard, per-sprite undo/redo,
// and a scrollable browser over the whole sheet.
//
// An Editor is not safe for concurrent use; the host confines it to its frame loop.
package editor

import (
	"strconv"

	"rico-32/internal/canvas"
	"rico-32/internal/history"
	"rico-32/internal/input"
	"rico-32/internal/palette"
	"rico-32/internal/sheet"
)

// SaveFunc persists the sheet. It is called synchronously from Update when
// the user saves or grows the sheet.
type SaveFunc func(*sheet.Sheet) error

// Options tunes editor timings. Zero fields take the defaults.
type Options struct {
	RepeatDelay int
	RepeatEvery int
	BatchSize   int
}

// DefaultOptions returns the reference tuning.
func DefaultOptions() Options {
	return Options{
		RepeatDelay: history.RepeatDelay,
		RepeatEvery: history.RepeatEvery,
		BatchSize:   sheet.BatchSize,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.RepeatDelay <= 0 {
		o.RepeatDelay = d.RepeatDelay
	}
	if o.RepeatEvery <= 0 {
		o.RepeatEvery = d.RepeatEvery
	}
	if o.BatchSize <= 0 {
		o.BatchSize = d.BatchSize
	}
	return o
}

// Editor owns one sheet and everything needed to edit it.
type Editor struct {
	screen *canvas.Canvas
	sheet  *sheet.Sheet
	save   SaveFunc
	opts   Options
	cell   int

	tool  Tool
	color palette.Color
	idx   int

	sel       selection
	clipboard *canvas.Canvas

	hists  map[int]*history.History
	repeat *history.Repeat

	unsaved  bool
	startRow int

	// LastSaveError holds the result of the most recent save attempt.
	LastSaveError error
}

// New returns an editor over s. save may be nil for a sheet that is never
// persisted. An empty sheet is grown by one batch so there is always a sprite
// to edit.
func New(s *sheet.Sheet, save SaveFunc, opts Options) *Editor {
	opts = opts.withDefaults()
	grown := s.Len() == 0
	if grown {
		s.Grow(opts.BatchSize)
	}
	cell := canvasSpan / s.Size
	if cell < 1 {
		cell = 1
	}
	return &Editor{
		screen: canvas.New(Width, Height, palette.Black),
		sheet:  s,
		save:   save,
		opts:   opts,
		cell:   cell,
		tool:   Pencil,
		color:  palette.Black,
		hists:  make(map[int]*history.History),
		repeat: &history.Repeat{Delay: opts.RepeatDelay, Every: opts.RepeatEvery},

		unsaved: grown,
	}
}

// Update runs one frame. in is in region pixels and is only read.
func (e *Editor) Update(in input.Snapshot) {
	e.screen.Clear(palette.Black)
	e.drawChrome(in)
	e.drawCanvas()
	e.dispatch(in)
	e.handleClipboard(in)
	e.handleUndoRedo(in)
	e.drawBrowser(in)
	// Edge flags live in the snapshot and are cleared by the host at end of frame.
	e.commit()
}

// commit closes the frame's edit batch on the active sprite.
func (e *Editor) commit() {
	if e.history().Commit() {
		e.unsaved = true
	}
}

func (e *Editor) history() *history.History {
	h, ok := e.hists[e.idx]
	if !ok {
		h = history.New()
		e.hists[e.idx] = h
	}
	return h
}

// sprite returns the active sprite.
func (e *Editor) sprite() *canvas.Canvas {
	return e.sheet.Sprites[e.idx]
}

// set is the single tracked write path into the active sprite. Unlike
// Canvas.SetPixel it writes Blank, which is how erasing and lifting work.
func (e *Editor) set(row, col int, c palette.Color) {
	sp := e.sprite()
	if !sp.InBounds(row, col) {
		return
	}
	prior := sp.Get(row, col)
	if prior == c {
		return
	}
	e.history().Record(row, col, prior)
	sp.Put(row, col, c)
}

func (e *Editor) drawChrome(in input.Snapshot) {
	p := in.Pointer
	for _, c := range palette.All[1:] {
		b := ColorButton(int(c))
		e.screen.FillRect(b.X+1, b.Y+1, ButtonWidth-1, ButtonWidth-1, c)
		if p.ClickedIn(b.X, b.Y, ButtonWidth, ButtonWidth) {
			e.color = c
		}
		e.screen.Rect(b.X, b.Y, ButtonWidth-1, ButtonWidth-1, palette.Gray)
		if e.color == c {
			e.screen.Rect(b.X, b.Y, ButtonWidth-1, ButtonWidth-1, palette.White)
		}
	}

	for _, t := range Tools {
		b := ToolButton(t)
		e.screen.BlitGrid(b.X+1, b.Y+1, toolIcons[t])
		if p.ClickedIn(b.X, b.Y, ButtonWidth, ButtonWidth) {
			e.SetTool(t)
		}
		if e.tool == t {
			e.screen.Rect(b.X, b.Y, ButtonWidth-1, ButtonWidth-1, palette.White)
		}
	}

	for _, u := range Utilities {
		b := UtilityButton(u)
		e.screen.BlitGrid(b.X+1, b.Y+1, utilityIcons[u])
		if p.ClickedIn(b.X, b.Y, ButtonWidth, ButtonWidth) {
			e.Apply(u)
		}
	}

	header := "Editing sprite " + strconv.Itoa(e.idx)
	if e.unsaved {
		header += "*"
	}
	e.screen.PrintMid(CanvasX, DrawY-8, palette.Gray, header)
	if e.LastSaveError != nil {
		e.screen.PrintMini(CanvasX, DrawY-15, palette.Red, "SAVE FAILED")
	}
}

// checker is the backdrop shown through Blank cells.
func checker(row, col int) palette.Color {
	if (row+col)%2 == 0 {
		return palette.Silver
	}
	return palette.White
}

func (e *Editor) drawCell(row, col int, c palette.Color) {
	if c == palette.Blank {
		c = checker(row, col)
	}
	e.screen.FillRect(CanvasX+col*e.cell, DrawY+row*e.cell, e.cell, e.cell, c)
}

func (e *Editor) drawCanvas() {
	sp := e.sprite()
	for r := 0; r < sp.Height(); r++ {
		for c := 0; c < sp.Width(); c++ {
			e.drawCell(r, c, sp.Get(r, c))
		}
	}
}

// grid converts a region pixel to a sprite cell, clamped to the sprite. on
// reports whether the pixel lies over the editing canvas.
func (e *Editor) grid(p input.Pointer) (x, y int, on bool) {
	if p.X == -1 {
		return 0, 0, false
	}
	span := e.sheet.Size * e.cell
	on = p.X >= CanvasX && p.X < CanvasX+span && p.Y >= DrawY && p.Y < DrawY+span
	x = clamp((p.X-CanvasX)/e.cell, 0, e.sheet.Size-1)
	y = clamp((p.Y-DrawY)/e.cell, 0, e.sheet.Size-1)
	return x, y, on
}

// CanvasPoint returns the region pixel at the centre of sprite cell (x, y).
func (e *Editor) CanvasPoint(x, y int) Point {
	return Point{X: CanvasX + x*e.cell + e.cell/2, Y: DrawY + y*e.cell + e.cell/2}
}

func (e *Editor) dispatch(in input.Snapshot) {
	if e.tool == Select {
		e.updateSelection(in)
		e.drawSelection()
		return
	}
	if x, y, on := e.grid(in.Pointer); on && in.Pointer.Pressed {
		switch e.tool {
		case Pencil:
			e.set(y, x, e.color)
		case Eraser:
			e.set(y, x, palette.Blank)
		case Fill:
			e.fill(y, x, e.color)
		}
	}
	// Content pasted outside Select mode lands on the next frame.
	e.dropSelection()
}

func (e *Editor) handleUndoRedo(in input.Snapshot) {
	undo := in.Chord(input.KeyZ)
	redo := !undo && in.Chord(input.KeyR)
	// A fresh press always acts, even inside another chord's repeat window.
	if (undo && in.Just.Has(input.KeyZ)) || (redo && in.Just.Has(input.KeyR)) {
		e.repeat.Reset()
	}
	if !e.repeat.Step(undo || redo) {
		return
	}
	// Close this frame's edits first so undo sees them as the newest entry.
	e.commit()
	h := e.history()
	var done bool
	if undo {
		done = h.Undo(e.sprite())
	} else {
		done = h.Redo(e.sprite())
	}
	if done {
		e.sel = selection{}
		e.unsaved = true
	}
}

// SetTool switches tools. Leaving Select stamps any floating content and
// drops the selection.
func (e *Editor) SetTool(t Tool) {
	if e.tool == Select && t != Select {
		e.dropSelection()
	}
	e.tool = t
}

// Apply runs a utility action.
func (e *Editor) Apply(u Utility) {
	switch u {
	case FlipHorizontal:
		e.flip(true)
	case FlipVertical:
		e.flip(false)
	case ClearSprite:
		e.clearContent()
	case SaveSheet:
		// The outcome is kept in LastSaveError and shown in the header.
		_ = e.Save()
	}
}

func (e *Editor) flip(horizontal bool) {
	if f := e.sel.floating; f != nil {
		if horizontal {
			f.FlipH()
		} else {
			f.FlipV()
		}
		return
	}
	if !e.sel.active {
		return
	}
	r := e.sel.rect
	src := e.sprite().Crop(r.X1, r.Y1, r.W(), r.H())
	if horizontal {
		src.FlipH()
	} else {
		src.FlipV()
	}
	e.paint(r.X1, r.Y1, src)
}

func (e *Editor) clearContent() {
	switch {
	case e.sel.floating != nil:
		e.sel.floating.Fill(palette.Blank)
	case e.sel.active:
		r := e.sel.rect
		for y := r.Y1; y <= r.Y2; y++ {
			for x := r.X1; x <= r.X2; x++ {
				e.set(y, x, palette.Blank)
			}
		}
	default:
		sp := e.sprite()
		for y := 0; y < sp.Height(); y++ {
			for x := 0; x < sp.Width(); x++ {
				e.set(y, x, palette.Blank)
			}
		}
	}
}

// paint copies src into the active sprite at (x, y), Blank cells included,
// clipping to the sprite.
func (e *Editor) paint(x, y int, src *canvas.Canvas) {
	for r := 0; r < src.Height(); r++ {
		for c := 0; c < src.Width(); c++ {
			e.set(y+r, x+c, src.Get(r, c))
		}
	}
}

// Save invokes the save callback and records its outcome.
func (e *Editor) Save() error {
	if e.save == nil {
		e.unsaved = false
		return nil
	}
	err := e.save(e.sheet)
	e.LastSaveError = err
	if err == nil {
		e.unsaved = false
	}
	return err
}

// Screen returns the editor's framebuffer for compositing.
func (e *Editor) Screen() *canvas.Canvas { return e.screen }

// Sheet returns the edited sheet.
func (e *Editor) Sheet() *sheet.Sheet { return e.sheet }

// Active returns the index of the sprite being edited.
func (e *Editor) Active() int { return e.idx }

// Sprite returns the sprite being edited.
func (e *Editor) Sprite() *canvas.Canvas { return e.sprite() }

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// Color returns the active paint color.
func (e *Editor) Color() palette.Color { return e.color }

// SetColor selects the paint color. Blank is rejected; the eraser covers it.
func (e *Editor) SetColor(c palette.Color) {
	if c.Opaque() {
		e.color = c
	}
}

// Unsaved reports whether edits happened since the last successful save.
func (e *Editor) Unsaved() bool { return e.unsaved }

// StartRow returns the first browser row shown.
func (e *Editor) StartRow() int { return e.startRow }

// UndoLen returns the active sprite's undo depth.
func (e *Editor) UndoLen() int { return e.history().UndoLen() }

// RedoLen returns the active sprite's redo depth.
func (e *Editor) RedoLen() int { return e.history().RedoLen() }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
