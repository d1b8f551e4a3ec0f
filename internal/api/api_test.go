package api

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"rico-32/internal/canvas"
	"rico-32/internal/input"
	"rico-32/internal/palette"
	"rico-32/internal/sheet"
)

func TestColorNames(t *testing.T) {
	m := NewMutator(nil)
	tests := []struct {
		name string
		call func() error
	}{
		{"set_pix", func() error { return m.SetPix(1, 1, "purple") }},
		{"rectfill", func() error { return m.RectFill(0, 0, 2, 2, "Purple") }},
		{"rect", func() error { return m.Rect(0, 0, 2, 2, "PURPLE") }},
		{"circle", func() error { return m.Circle(5, 5, 1, "purple") }},
		{"clear", func() error { return m.Clear("purple") }},
		{"print", func() error { return m.Print(0, 0, "purple", "hi") }},
		{"print_mid", func() error { return m.PrintMid(0, 0, "purple", "hi") }},
		{"print_mini", func() error { return m.PrintMini(0, 0, "purple", "hi") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Errorf("valid name rejected: %v", err)
			}
		})
	}

	before := m.Canvas().Clone()
	for _, bad := range []string{"", "PURPLEISH", "transparent"} {
		if err := m.SetPix(0, 0, bad); !errors.Is(err, palette.ErrInvalidName) {
			t.Errorf("SetPix(%q): expected ErrInvalidName, got %v", bad, err)
		}
		if err := m.Clear(bad); !errors.Is(err, palette.ErrInvalidName) {
			t.Errorf("Clear(%q): expected ErrInvalidName, got %v", bad, err)
		}
	}
	if !m.Canvas().Equal(before) {
		t.Error("an invalid color name modified the canvas")
	}
}

func TestGetPix(t *testing.T) {
	m := NewMutator(nil)
	if err := m.SetPix(3, 4, "gold"); err != nil {
		t.Fatal(err)
	}
	got, err := m.GetPix(3, 4)
	if err != nil || got != "GOLD" {
		t.Errorf("GetPix = %q, %v", got, err)
	}
	if _, err := m.GetPix(ScreenSize, 0); !errors.Is(err, canvas.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := m.GetPix(0, -1); !errors.Is(err, canvas.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestDrawLoadsOnceAndCaches(t *testing.T) {
	s := sheet.New(8, 3)
	s.Sprites[1].Put(0, 0, palette.Red)
	var buf bytes.Buffer
	if err := sheet.Encode(&buf, s); err != nil {
		t.Fatal(err)
	}

	var loads int
	read := ReaderSprites(bytes.NewReader(buf.Bytes()), 8)
	m := NewMutator(func(idx int) (*canvas.Canvas, error) {
		loads++
		return read(idx)
	})

	for i := 0; i < 3; i++ {
		if err := m.Draw(10, 20, 1); err != nil {
			t.Fatalf("Draw: %v", err)
		}
	}
	if loads != 1 {
		t.Errorf("sprite loaded %d times, want 1", loads)
	}
	if got, _ := m.GetPix(10, 20); got != "RED" {
		t.Errorf("drawn pixel = %q", got)
	}
	if got, _ := m.GetPix(11, 20); got != "BLACK" {
		t.Errorf("blank sprite cell overwrote the canvas: %q", got)
	}

	if err := m.Draw(0, 0, 3); !errors.Is(err, canvas.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}

	m.ForgetSprites()
	if err := m.Draw(0, 0, 1); err != nil {
		t.Fatal(err)
	}
	if loads != 3 {
		t.Errorf("loads = %d after forgetting the cache, want 3", loads)
	}
}

func TestLogChunks(t *testing.T) {
	m := NewMutator(nil)
	m.Log(strings.Repeat("x", 40))
	logs := m.Logs(10)
	if len(logs) != 2 {
		t.Fatalf("got %d lines: %+v", len(logs), logs)
	}
	if logs[0].Text != "[Log] "+strings.Repeat("x", 24) || len(logs[1].Text) != 16 {
		t.Errorf("chunks = %q, %q", logs[0].Text, logs[1].Text)
	}

	m.LogError(errors.New("boom"))
	logs = m.Logs(2)
	if logs[0].Kind != LogError || logs[0].Text != "boom" || logs[1].Text != " " {
		t.Errorf("error lines = %+v", logs)
	}
}

func TestLogChunksKeepRunesWhole(t *testing.T) {
	m := NewMutator(nil)
	// "[Log] x" is 7 bytes, so byte 30 falls inside the 12th two-byte rune.
	m.Log("x" + strings.Repeat("é", 20))
	logs := m.Logs(10)
	if len(logs) != 2 {
		t.Fatalf("got %d lines: %+v", len(logs), logs)
	}
	for _, l := range logs {
		if !utf8.ValidString(l.Text) {
			t.Errorf("chunk %q splits a rune", l.Text)
		}
	}
	if logs[0].Text != "[Log] x"+strings.Repeat("é", 11) || logs[1].Text != strings.Repeat("é", 9) {
		t.Errorf("chunks = %q, %q", logs[0].Text, logs[1].Text)
	}
}

func TestLogsBounded(t *testing.T) {
	m := NewMutator(nil)
	for i := 0; i < MaxLogs+50; i++ {
		m.Log("line")
	}
	if got := len(m.Logs(MaxLogs * 2)); got != MaxLogs {
		t.Errorf("retained %d lines, want %d", got, MaxLogs)
	}
}

func TestKeysAndMouse(t *testing.T) {
	m := NewMutator(nil)
	m.SetInput(input.Snapshot{
		Pointer: input.Pointer{X: 4, Y: 5, Pressed: true},
		Held:    input.Of(input.KeyLeft),
		Just:    input.Of(input.KeyLeft),
	})
	if ok, err := m.KeyPressed("Left"); !ok || err != nil {
		t.Errorf("KeyPressed(Left) = %v, %v", ok, err)
	}
	if ok, _ := m.KeyJustPressed("a"); ok {
		t.Error("A reported just pressed")
	}
	if _, err := m.KeyPressed("Hyper"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
	if p := m.Mouse(); p.X != 4 || !p.Pressed {
		t.Errorf("mouse = %+v", p)
	}

	m.SetInput(input.Snapshot{Pointer: input.Pointer{X: -1, Y: -1, Pressed: true}})
	if m.Mouse().Pressed {
		t.Error("pointer outside the canvas reported pressed")
	}
}

func TestHostSerializesCallers(t *testing.T) {
	h := NewHost(NewMutator(nil))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h.With(func(m *Mutator) error {
					m.Log("x")
					return nil
				})
			}
		}()
	}
	wg.Wait()
	h.With(func(m *Mutator) error {
		if got := len(m.Logs(MaxLogs)); got != MaxLogs {
			t.Errorf("logs = %d", got)
		}
		return nil
	})
}

type failing struct{}

func (failing) Start(*Mutator) error                 { return nil }
func (failing) Update(*Mutator, time.Duration) error { return errors.New("attempt to call nil") }

func TestHostLogsScriptErrors(t *testing.T) {
	h := NewHost(NewMutator(nil))
	if err := h.Update(failing{}, time.Millisecond); err == nil {
		t.Fatal("expected script error")
	}
	h.With(func(m *Mutator) error {
		logs := m.Logs(2)
		if len(logs) != 2 || logs[0].Kind != LogError {
			t.Errorf("logs = %+v", logs)
		}
		return nil
	})
}

func TestHelloScript(t *testing.T) {
	h := NewHost(NewMutator(nil))
	if err := h.Start(Hello{}); err != nil {
		t.Fatal(err)
	}
	h.With(func(m *Mutator) error {
		m.SetInput(input.Snapshot{Pointer: input.Pointer{X: 64, Y: 64, Pressed: true}})
		return nil
	})
	if err := h.Update(Hello{}, time.Second/60); err != nil {
		t.Fatal(err)
	}
	h.With(func(m *Mutator) error {
		if got, _ := m.GetPix(64, 64); got != "RED" {
			t.Errorf("pointer circle missing: %q", got)
		}
		if logs := m.Logs(1); len(logs) != 1 || !strings.HasPrefix(logs[0].Text, "[Log] Welcome") {
			t.Errorf("logs = %+v", logs)
		}
		return nil
	})
}
