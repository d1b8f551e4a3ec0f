package console

import (
	"bytes"
	"testing"
	"time"

	"rico-32/internal/api"
	"rico-32/internal/canvas"
	"rico-32/internal/editor"
	"rico-32/internal/input"
	"rico-32/internal/palette"
	"rico-32/internal/sheet"
)

const dt = time.Second / 60

func click(x, y int) input.Snapshot {
	return input.Snapshot{Pointer: input.Pointer{X: x, Y: y, Pressed: true, JustPressed: true}}
}

func idle() input.Snapshot {
	return input.Snapshot{Pointer: input.Outside}
}

func newConsole(cfg Config) *Console {
	if cfg.Sheet == nil {
		cfg.Sheet = sheet.New(sheet.SpriteSize, 6)
	}
	return New(cfg)
}

func TestNavSwitchesScreens(t *testing.T) {
	c := newConsole(Config{})
	c.Update(idle(), dt)
	if c.Screen() != ScreenGame {
		t.Fatalf("initial screen = %v", c.Screen())
	}

	tests := []struct {
		name string
		in   input.Snapshot
		want Screen
	}{
		{"sprite tab", click(30, 3), ScreenSprite},
		{"click below the bar", click(5, NavHeight+1), ScreenSprite},
		{"selected tab again", click(30, 3), ScreenSprite},
		{"game tab", click(5, 3), ScreenGame},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.Update(tt.in, dt)
			if c.Screen() != tt.want {
				t.Errorf("screen = %v, want %v", c.Screen(), tt.want)
			}
		})
	}
}

func TestEditorReceivesLocalInput(t *testing.T) {
	c := newConsole(Config{})
	c.Update(click(30, 3), dt)

	// Editor-local (CanvasX, DrawY) sits NavHeight lower on the console.
	c.Update(click(editor.CanvasX+1, NavHeight+editor.DrawY+1), dt)
	c.Update(idle(), dt)
	if got := c.Editor().Sprite().Get(0, 0); got != palette.Black {
		t.Errorf("sprite(0,0) = %v, want BLACK", got)
	}
	if got := c.Editor().Sprite().Get(1, 1); got != palette.Blank {
		t.Errorf("sprite(1,1) = %v, want BLANK", got)
	}
}

func rgba(c palette.Color) [4]uint8 {
	r, g, b, a := c.RGBA()
	return [4]uint8{r, g, b, a}
}

func TestFrameComposedAtScale(t *testing.T) {
	c := newConsole(Config{Scale: 2})
	c.Update(idle(), dt)

	f := c.Frame()
	if f.Width != Width*2 || f.Height != Height*2 {
		t.Fatalf("frame is %dx%d", f.Width, f.Height)
	}
	tests := []struct {
		name string
		x, y int
		want palette.Color
	}{
		{"nav background", 0, 0, palette.Gray},
		{"selected tab", 3, 1, palette.Black},
		{"game view", 0, 2 * NavHeight, palette.Black},
		{"log panel", 1, 2 * (NavHeight + api.ScreenSize), palette.Gray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := f.At(tt.x, tt.y)
			if got := [4]uint8{r, g, b, a}; got != rgba(tt.want) {
				t.Errorf("pixel = %v, want %v", got, rgba(tt.want))
			}
		})
	}
}

func TestParallelComposeMatches(t *testing.T) {
	serial := newConsole(Config{Scale: 3})
	parallel := newConsole(Config{Scale: 3, Workers: 4})
	for _, in := range []input.Snapshot{idle(), click(64, 70), click(30, 3), click(20, 62)} {
		serial.Update(in, dt)
		parallel.Update(in, dt)
		if !bytes.Equal(serial.Frame().Pix, parallel.Frame().Pix) {
			t.Fatal("parallel frame differs from serial frame")
		}
	}
}

type counter struct{ updates int }

func (s *counter) Start(m *api.Mutator) error {
	m.SetFrameRate(30)
	return nil
}

func (s *counter) Update(m *api.Mutator, _ time.Duration) error {
	s.updates++
	return m.Draw(0, 0, 0)
}

func TestHaltAndRestart(t *testing.T) {
	var scripts []*counter
	c := newConsole(Config{
		Script: func() api.Script {
			s := &counter{}
			scripts = append(scripts, s)
			return s
		},
		Sprites: func(int) (*canvas.Canvas, error) { return canvas.New(4, 4, palette.Blank), nil },
	})
	panelY := NavHeight + api.ScreenSize

	c.Update(idle(), dt)
	if c.FrameRate() != 30 {
		t.Errorf("frame rate = %d, want 30", c.FrameRate())
	}

	c.Update(click(haltButton.X+1, panelY+haltButton.Y+1), dt)
	if !c.Game().Halted() {
		t.Fatal("halt click ignored")
	}
	before := scripts[0].updates
	c.Update(idle(), dt)
	c.Update(idle(), dt)
	if scripts[0].updates != before {
		t.Error("halted script still updating")
	}

	// The far edge of the box still counts.
	c.Update(click(restartButton.X+restartButton.W, panelY+restartButton.Y+restartButton.H), dt)
	if c.Game().Halted() {
		t.Error("restart left the game halted")
	}
	if len(scripts) != 2 {
		t.Fatalf("restart booted %d scripts, want 2", len(scripts))
	}
	c.Update(idle(), dt)
	if scripts[1].updates == 0 {
		t.Error("restarted script never ran")
	}
}

func TestLogPanelShowsErrors(t *testing.T) {
	c := newConsole(Config{
		Script: func() api.Script { return &counter{} },
	})
	// No sprite loader: every Draw fails and lands in the log.
	c.Update(idle(), dt)

	var logs []api.LogLine
	c.Game().Host().With(func(m *api.Mutator) error {
		logs = m.Logs(PanelLines)
		return nil
	})
	if len(logs) == 0 || logs[0].Kind != api.LogError {
		t.Fatalf("logs = %+v", logs)
	}

	found := false
	panel := c.Game().panel
	for row := 20; row < 26 && !found; row++ {
		for col := 0; col < Width; col++ {
			if panel.Get(row, col) == palette.Maroon {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("error line not drawn in maroon")
	}
}

func TestSaveInvalidatesSpriteCache(t *testing.T) {
	var loads, saves int
	c := newConsole(Config{
		Script: func() api.Script { return &counter{} },
		Save: func(*sheet.Sheet) error {
			saves++
			return nil
		},
		Sprites: func(int) (*canvas.Canvas, error) {
			loads++
			return canvas.New(4, 4, palette.Red), nil
		},
	})

	c.Update(idle(), dt)
	c.Update(idle(), dt)
	if loads != 1 {
		t.Fatalf("loads = %d before save, want 1", loads)
	}
	if err := c.Editor().Save(); err != nil {
		t.Fatal(err)
	}
	c.Update(idle(), dt)
	if saves != 1 || loads != 2 {
		t.Errorf("saves = %d, loads = %d; want 1 and 2", saves, loads)
	}
}
