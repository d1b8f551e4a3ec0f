package editor

// Screen geometry of the editor in region pixels.
const (
	Width  = 128
	Height = 256

	ButtonWidth   = 12
	CanvasX       = 16
	DrawY         = 52
	canvasSpan    = 96
	colorsPerRow  = 8
	paletteY      = 10
	toolsX        = 4
	toolsY        = 154
	utilsX        = 64
	saveX         = 112
	sheetY        = 174
	sheetCols     = 6
	sheetRows     = 4
	previewSize   = 16
	scrollbarW    = 3
	addButtonY    = 242
	addButtonSize = 9
)

// Tool is the active pointer mode.
type Tool int

const (
	Pencil Tool = iota
	Eraser
	Fill
	Select
)

var toolNames = [...]string{"Pencil", "Eraser", "Fill", "Select"}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return "Tool(?)"
	}
	return toolNames[t]
}

// Tools lists the tools in toolbar order.
var Tools = []Tool{Pencil, Eraser, Fill, Select}

// Utility is a one-shot toolbar action.
type Utility int

const (
	FlipHorizontal Utility = iota
	FlipVertical
	ClearSprite
	SaveSheet
)

// Utilities lists the utility buttons in toolbar order.
var Utilities = []Utility{FlipHorizontal, FlipVertical, ClearSprite, SaveSheet}

// Point is a position in region pixels.
type Point struct{ X, Y int }

// ToolButton returns the top-left corner of t's button.
func ToolButton(t Tool) Point {
	return Point{X: toolsX + int(t)*ButtonWidth, Y: toolsY}
}

// UtilityButton returns the top-left corner of u's button. Save sits apart
// from the others at the right edge.
func UtilityButton(u Utility) Point {
	if u == SaveSheet {
		return Point{X: saveX, Y: toolsY}
	}
	return Point{X: utilsX + int(u)*ButtonWidth, Y: toolsY}
}

// ColorButton returns the top-left corner of the swatch for palette index
// idx (1-based; Blank has no swatch).
func ColorButton(idx int) Point {
	i := idx - 1
	y := paletteY
	if i >= colorsPerRow {
		y += ButtonWidth
	}
	return Point{X: CanvasX + (i%colorsPerRow)*ButtonWidth, Y: y}
}

// PreviewSlot returns the top-left corner of browser slot i (0..rows*cols-1).
func PreviewSlot(i int) Point {
	return Point{
		X: CanvasX + (i%sheetCols)*previewSize,
		Y: sheetY + (i/sheetCols)*previewSize,
	}
}

// AddButton returns the top-left corner of the add-batch button.
func AddButton() Point {
	return Point{X: CanvasX + previewSize*(sheetCols-1) + 8, Y: addButtonY}
}

func inBrowser(x, y int) bool {
	return x >= CanvasX && x < CanvasX+previewSize*sheetCols &&
		y >= sheetY && y < sheetY+previewSize*sheetRows
}
