package editor

import "rico-32/internal/palette"

// Icons are 10x10 and drawn inside a button's 1px border.
var iconInk = map[byte]palette.Color{
	'.': palette.Blank,
	'y': palette.Yellow,
	'b': palette.Brown,
	'r': palette.Red,
	'p': palette.Pink,
	'B': palette.Blue,
	's': palette.Silver,
	'g': palette.Gray,
	'G': palette.Green,
}

var toolIcons = map[Tool][][]palette.Color{
	Pencil: icon(
		"..........",
		"......ybb.",
		".....yyyb.",
		"....yyyyy.",
		"...yyyyy..",
		"..yyyyy...",
		"..ryyy....",
		".rrry.....",
		".rr.......",
		"..........",
	),
	Fill: icon(
		"....sgg...",
		"...ssgg...",
		".BBsgggs..",
		"BBssggsss.",
		"Bsssggssss",
		"Bssgggssss",
		"Bsssssssss",
		"B.ssssssss",
		"B..sssssss",
		".....ssss.",
	),
	Eraser: icon(
		"..........",
		".....rr...",
		"....rprr..",
		"...rrrprr.",
		"..rrrrrpr.",
		".rprrrrr..",
		".rrprrr...",
		"..rrpr....",
		"...rr.....",
		"..........",
	),
	Select: icon(
		"..........",
		".ss.ss.ss.",
		".s......s.",
		"..........",
		".s......s.",
		".s......s.",
		"..........",
		".s......s.",
		".ss.ss.ss.",
		"..........",
	),
}

var utilityIcons = map[Utility][][]palette.Color{
	FlipHorizontal: icon(
		"..........",
		"..........",
		"...g..g...",
		"..gg..gg..",
		".gggggggg.",
		".gggggggg.",
		"..gg..gg..",
		"...g..g...",
		"..........",
		"..........",
	),
	FlipVertical: icon(
		"..........",
		"....gg....",
		"...gggg...",
		"..gggggg..",
		"....gg....",
		"....gg....",
		"..gggggg..",
		"...gggg...",
		"....gg....",
		"..........",
	),
	ClearSprite: icon(
		"..........",
		".rr....rr.",
		".rrr..rrr.",
		"..rrrrrr..",
		"...rrrr...",
		"...rrrr...",
		"..rrrrrr..",
		".rrr..rrr.",
		".rr....rr.",
		"..........",
	),
	SaveSheet: icon(
		"..........",
		"........G.",
		".......GG.",
		"......GG..",
		".....GG...",
		"..G.GG....",
		".GGGG.....",
		"..GG......",
		"..........",
		"..........",
	),
}

func icon(rows ...string) [][]palette.Color {
	out := make([][]palette.Color, len(rows))
	for i, row := range rows {
		out[i] = make([]palette.Color, len(row))
		for j := 0; j < len(row); j++ {
			out[i][j] = iconInk[row[j]]
		}
	}
	return out
}
