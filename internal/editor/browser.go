package editor

import (
	"rico-32/internal/input"
	"rico-32/internal/palette"
)

// totalRows is the number of browser rows the sheet occupies.
func (e *Editor) totalRows() int {
	return (e.sheet.Len() + sheetCols - 1) / sheetCols
}

func (e *Editor) maxStartRow() int {
	return max(0, e.totalRows()-sheetRows)
}

// Scroll moves the browser window; positive delta scrolls up.
func (e *Editor) Scroll(delta int) {
	switch {
	case delta > 0:
		e.startRow--
	case delta < 0:
		e.startRow++
	}
	e.startRow = clamp(e.startRow, 0, e.maxStartRow())
}

// SelectSprite makes idx the active sprite. Floating content is stamped
// onto the sprite it came from first, and the frame's edits to that sprite
// are committed to its own history.
func (e *Editor) SelectSprite(idx int) {
	if idx < 0 || idx >= e.sheet.Len() {
		return
	}
	e.dropSelection()
	e.commit()
	e.idx = idx
}

// Grow appends a batch of blank sprites and saves the sheet.
func (e *Editor) Grow() error {
	e.sheet.Grow(e.opts.BatchSize)
	e.unsaved = true
	return e.Save()
}

func (e *Editor) drawBrowser(in input.Snapshot) {
	p := in.Pointer
	if in.Wheel != 0 && inBrowser(p.X, p.Y) {
		e.Scroll(in.Wheel)
	}

	first := e.startRow * sheetCols
	shown := min(sheetCols*sheetRows, e.sheet.Len()-first)
	for i := 0; i < shown; i++ {
		idx := first + i
		at := PreviewSlot(i)
		e.drawPreview(at, idx)
		e.screen.Rect(at.X, at.Y, previewSize, previewSize, palette.Gray)
		if p.ClickedIn(at.X, at.Y, previewSize, previewSize) {
			e.SelectSprite(idx)
		}
	}
	if e.idx >= first && e.idx < first+shown {
		at := PreviewSlot(e.idx - first)
		e.screen.Rect(at.X, at.Y, previewSize, previewSize, palette.White)
	}

	if n := e.sheet.Len(); n > 0 {
		height := previewSize * sheetRows
		top := height * first / n
		bottom := height * (first + shown) / n
		e.screen.FillRect(CanvasX+previewSize*sheetCols, sheetY+top, scrollbarW, bottom-top, palette.White)
	}

	add := AddButton()
	e.screen.FillRect(add.X, add.Y, addButtonSize, addButtonSize, palette.Gray)
	for i := 2; i < 7; i++ {
		e.screen.SetPixel(add.Y+i, add.X+4, palette.Black)
		e.screen.SetPixel(add.Y+4, add.X+i, palette.Black)
	}
	if p.ClickedIn(add.X, add.Y, addButtonSize, addButtonSize) {
		_ = e.Grow()
	}
}

// drawPreview samples the sprite with a fixed stride down to the preview size.
func (e *Editor) drawPreview(at Point, idx int) {
	sp := e.sheet.Sprites[idx]
	size := e.sheet.Size
	for i := 0; i < previewSize; i++ {
		for j := 0; j < previewSize; j++ {
			e.screen.SetPixel(at.Y+i, at.X+j, sp.Get(i*size/previewSize, j*size/previewSize))
		}
	}
}
