package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"rico-32/internal/canvas"
	"rico-32/internal/compose"
	"rico-32/internal/palette"
	"rico-32/internal/render"
	"rico-32/internal/sheet"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "new":
		if len(args) < 1 || len(args) > 2 {
			fmt.Fprintln(os.Stderr, "Usage: sheettool new <sheet> [count]")
			os.Exit(1)
		}
		count := sheet.InitialSprites
		if len(args) == 2 {
			count = intArg(args[1])
		}
		os.Exit(runNew(args[0], count))
	case "info":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: sheettool info <sheet>")
			os.Exit(1)
		}
		os.Exit(runInfo(args[0]))
	case "validate":
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "Usage: sheettool validate <sheet>...")
			os.Exit(1)
		}
		os.Exit(runValidate(args))
	case "export":
		if len(args) < 2 || len(args) > 4 {
			fmt.Fprintln(os.Stderr, "Usage: sheettool export <sheet> <out.png> [cols] [scale]")
			os.Exit(1)
		}
		cols, scale := sheet.BatchSize, 1
		if len(args) > 2 {
			cols = intArg(args[2])
		}
		if len(args) > 3 {
			scale = intArg(args[3])
		}
		os.Exit(runExport(args[0], args[1], cols, scale))
	case "import":
		if len(args) < 2 || len(args) > 3 {
			fmt.Fprintln(os.Stderr, "Usage: sheettool import <png> <sheet> [index]")
			os.Exit(1)
		}
		idx := -1
		if len(args) == 3 {
			idx = intArg(args[2])
		}
		os.Exit(runImport(args[0], args[1], idx))
	case "viz":
		if len(args) < 1 || len(args) > 2 {
			fmt.Fprintln(os.Stderr, "Usage: sheettool viz <sheet> [index]")
			os.Exit(1)
		}
		idx := -1
		if len(args) == 2 {
			idx = intArg(args[1])
		}
		os.Exit(runViz(args[0], idx))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: sheettool <command> <args>

Commands:
  new      <sheet> [count]               Create a blank sheet (default 60 sprites)
  info     <sheet>                       Show sprite count and color usage
  validate <sheet>...                    Check sheet files for corruption
  export   <sheet> <out.png> [cols] [scale]  Write the sheet as a PNG grid
  import   <png> <sheet> [index]         Replace the sheet, or one sprite, from a PNG
  viz      <sheet> [index]               Render the sheet or one sprite in the terminal`)
}

func intArg(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		fmt.Fprintf(os.Stderr, "Error: %q is not a non-negative number\n", s)
		os.Exit(1)
	}
	return n
}

func load(path string) (*sheet.Sheet, bool) {
	s, err := sheet.Load(path, sheet.SpriteSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, false
	}
	return s, true
}

// --- new ---

func runNew(path string, count int) int {
	if count < 1 {
		fmt.Fprintln(os.Stderr, "Error: a sheet needs at least one sprite")
		return 1
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists\n", path)
		return 1
	}
	if err := sheet.Save(path, sheet.New(sheet.SpriteSize, count)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Created %s (%d sprites)\n", path, count)
	return 0
}

// --- info ---

func runInfo(path string) int {
	s, ok := load(path)
	if !ok {
		return 1
	}

	var counts [palette.Count]int
	used := 0
	for _, sp := range s.Sprites {
		empty := true
		for y := 0; y < s.Size; y++ {
			for _, c := range sp.Row(y) {
				counts[c]++
				if c != palette.Blank {
					empty = false
				}
			}
		}
		if !empty {
			used++
		}
	}

	total := s.Len() * s.Size * s.Size
	fmt.Printf("%s: %d sprites of %dx%d, %d drawn on\n\n", path, s.Len(), s.Size, s.Size, used)
	if total == 0 {
		return 0
	}
	for _, c := range palette.All {
		if counts[c] == 0 {
			continue
		}
		pct := float64(counts[c]) / float64(total) * 100
		bar := strings.Repeat("█", int(pct/2))
		fmt.Printf("  %-7s %7d (%5.1f%%) %s\n", c, counts[c], pct, bar)
	}
	return 0
}

// --- validate ---

func runValidate(paths []string) int {
	errors := 0
	for _, path := range paths {
		fmt.Printf("Validating %s...\n", path)
		s, ok := load(path)
		if !ok {
			errors++
			continue
		}
		st, err := os.Stat(path)
		if err != nil {
			fmt.Printf("  ERROR: %v\n", err)
			errors++
			continue
		}
		want := int64(sheet.HeaderSize + s.Len()*s.Size*s.Size)
		if st.Size() != want {
			fmt.Printf("  ERROR: %d trailing bytes after %d sprites\n", st.Size()-want, s.Len())
			errors++
			continue
		}
		fmt.Printf("  OK (%d sprites)\n", s.Len())
	}

	if errors > 0 {
		fmt.Printf("\n%d error(s) found\n", errors)
		return 1
	}
	fmt.Printf("\nAll %d sheets valid\n", len(paths))
	return 0
}

// --- export ---

func runExport(path, out string, cols, scale int) int {
	s, ok := load(path)
	if !ok {
		return 1
	}
	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := render.ExportPNG(f, s, cols, scale); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Wrote %s (%d sprites, %d per row, x%d)\n", out, s.Len(), cols, scale)
	return 0
}

// --- import ---

func runImport(png, path string, idx int) int {
	if idx < 0 {
		f, err := os.Open(png)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		s, err := render.ImportSheetPNG(f, sheet.SpriteSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", png, err)
			return 1
		}
		if err := sheet.Save(path, s); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Wrote %s (%d sprites)\n", path, s.Len())
		return 0
	}

	s, ok := load(path)
	if !ok {
		return 1
	}
	dst, err := s.Sprite(idx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	sp, err := render.LoadSpritePNG(png, s.Size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for y := 0; y < s.Size; y++ {
		copy(dst.Row(y), sp.Row(y))
	}
	if err := sheet.Save(path, s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Replaced sprite %d in %s\n", idx, path)
	return 0
}

// --- viz ---

func runViz(path string, idx int) int {
	s, ok := load(path)
	if !ok {
		return 1
	}

	sprites := s.Sprites
	cols := sheet.BatchSize
	if idx >= 0 {
		sp, err := s.Sprite(idx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		sprites = []*canvas.Canvas{sp}
		cols = 1
	}
	if len(sprites) == 0 {
		fmt.Printf("%s has no sprites\n", path)
		return 0
	}

	// One blank column between sprites.
	step := s.Size + 1
	rows := (len(sprites) + cols - 1) / cols
	f := compose.NewFrame(min(cols, len(sprites))*step, rows*step)
	for i, sp := range sprites {
		f.Draw(sp, 1, (i%cols)*step, (i/cols)*step)
	}

	fmt.Printf("%s (%d sprites)\n", path, s.Len())
	fmt.Print(render.Dump(f))
	return 0
}
