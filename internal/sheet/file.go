package sheet

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"rico-32/internal/canvas"
)

// DefaultPath is where the console keeps its sheet when no path is given.
const DefaultPath = "assets/sheet.sprt"

// Load reads a whole sheet file.
func Load(path string, size int) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()

	s, err := Decode(bufio.NewReader(f), size)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// Save rewrites the whole file. The sheet is written to a temporary file
// next to path and renamed over it, so a failed save leaves the old file intact.
func Save(path string, s *Sheet) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sheet dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".sheet-*")
	if err != nil {
		return fmt.Errorf("create temp sheet: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, s); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp sheet: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// LoadOrCreate loads path, falling back to a blank sheet of count sprites
// when the file is missing or corrupt. The fallback sheet is written back so
// the next load succeeds.
func LoadOrCreate(path string, size, count int) (*Sheet, error) {
	s, err := Load(path, size)
	if err == nil {
		return s, nil
	}
	log.Printf("Could not load sheet %s: %v, starting blank sheet", path, err)

	s = New(size, count)
	if err := Save(path, s); err != nil {
		return s, err
	}
	return s, nil
}

// OpenSprite reads one sprite from a sheet file by index.
func OpenSprite(path string, size, idx int) (*canvas.Canvas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()
	return ReadSprite(f, size, idx)
}

// Saver returns a save callback bound to path.
func Saver(path string) func(*Sheet) error {
	return func(s *Sheet) error {
		return Save(path, s)
	}
}
