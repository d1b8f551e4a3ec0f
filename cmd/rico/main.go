package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"rico-32/internal/api"
	"rico-32/internal/console"
	"rico-32/internal/render"
	"rico-32/internal/session"
	"rico-32/internal/sheet"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	sheetPath := flag.String("sheet", sheet.DefaultPath, "sprite sheet file")
	fps := flag.Int("fps", api.DefaultFrameRate, "frame rate limit")
	workers := flag.Int("workers", 1, "compositing goroutines")
	flag.Parse()

	sh, err := sheet.LoadOrCreate(*sheetPath, sheet.SpriteSize, sheet.InitialSprites)
	if err != nil {
		log.Printf("Sheet %s not saved: %v", *sheetPath, err)
	}

	in, out := os.Stdin, os.Stdout
	cols, rows, err := termSize(out)
	if err != nil {
		log.Fatalf("Terminal size: %v", err)
	}

	restore, err := rawMode(in)
	if err != nil {
		log.Fatalf("Raw mode: %v", err)
	}
	defer restore()

	c := console.New(console.Config{
		Sheet:   sh,
		Save:    sheet.Saver(*sheetPath),
		Sprites: api.FileSprites(*sheetPath, sheet.SpriteSize),
		Workers: *workers,
	})
	sn := session.New(c, out, cols, rows)
	sn.LimitFrameRate(*fps)

	io.WriteString(out, render.Enter())
	defer io.WriteString(out, render.Leave())

	// Goroutine: read input
	go func() {
		defer sn.Stop()
		buf := make([]byte, 256)
		for {
			n, err := in.Read(buf)
			if err != nil {
				return
			}
			sn.Feed(buf[:n])
		}
	}()

	// Goroutine: follow terminal resizes
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)
	go func() {
		for range winch {
			if cols, rows, err := termSize(out); err == nil {
				sn.Resize(cols, rows)
			}
		}
	}()

	if err := sn.Run(); err != nil {
		restore()
		log.Fatalf("Console error: %v", err)
	}
}

// rawMode puts the terminal into raw mode and returns a function that
// restores the previous attributes.
func rawMode(f *os.File) (func(), error) {
	var canAttr unix.Termios
	if err := termios.Tcgetattr(f.Fd(), &canAttr); err != nil {
		return nil, fmt.Errorf("read attributes: %w", err)
	}
	rawAttr := canAttr
	termios.Cfmakeraw(&rawAttr)
	if err := termios.Tcsetattr(f.Fd(), termios.TCIFLUSH, &rawAttr); err != nil {
		return nil, fmt.Errorf("set raw attributes: %w", err)
	}
	return func() {
		termios.Tcsetattr(f.Fd(), termios.TCIFLUSH, &canAttr)
	}, nil
}

func termSize(f *os.File) (cols, rows int, err error) {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}
