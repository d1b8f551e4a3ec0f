// Package session drives one console on one terminal: it owns the frame
// ticker, folds terminal input into snapshots and writes diffed frames.
package session

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"rico-32/internal/console"
	"rico-32/internal/input"
	"rico-32/internal/render"
)

// InputChanSize bounds pending input events. Events beyond it are dropped.
const InputChanSize = 256

// ErrQuit is returned by Step when the user asked to leave.
var ErrQuit = errors.New("session: quit")

// Session is the frame loop for one connected terminal.
type Session struct {
	console *console.Console
	tracker *input.Tracker
	engine  *render.Engine
	out     io.Writer

	inputCh chan input.Event
	maxFPS  int

	mu            sync.Mutex
	width, height int

	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates a session writing to out, a terminal of width x height cells.
func New(c *console.Console, out io.Writer, width, height int) *Session {
	return &Session{
		console: c,
		tracker: input.NewTracker(),
		engine:  render.NewEngine(width, height),
		out:     out,
		inputCh: make(chan input.Event, InputChanSize),
		maxFPS:  MaxFrameRate,
		width:   width,
		height:  height,
		stopCh:  make(chan struct{}),
	}
}

// Console returns the console this session drives.
func (s *Session) Console() *console.Console { return s.console }

// Feed parses raw terminal bytes and queues the resulting events. Mouse
// positions are converted from cells to console pixels. Safe to call from
// the reader goroutine.
func (s *Session) Feed(data []byte) {
	for _, ev := range input.ParseTerminal(data) {
		if ev.Kind == input.EventMove {
			ev.X, ev.Y = render.CellFor(ev.X, ev.Y)
		}
		s.Send(ev)
	}
}

// Send queues one event without blocking.
func (s *Session) Send(ev input.Event) {
	select {
	case s.inputCh <- ev:
	default:
		// Drop input for a stalled loop
	}
}

// LimitFrameRate caps the rate Run ticks at. Values outside the supported
// range are clamped.
func (s *Session) LimitFrameRate(fps int) {
	s.maxFPS = max(MinFrameRate, min(fps, MaxFrameRate))
}

func (s *Session) frameRate() int {
	return min(s.console.FrameRate(), s.maxFPS)
}

// Resize records a new terminal size; it takes effect on the next frame.
func (s *Session) Resize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
}

// Run ticks frames at the console's frame rate, within the session limit, until Stop is called or the
// user quits. The ticker follows rate changes made by the running script.
func (s *Session) Run() error {
	fps := s.frameRate()
	ticker := time.NewTicker(FrameInterval(fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-s.stopCh:
			return nil
		case now := <-ticker.C:
			err := s.Step(now.Sub(last))
			last = now
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				return err
			}
			if next := s.frameRate(); next != fps {
				fps = next
				ticker.Reset(FrameInterval(fps))
			}
		}
	}
}

// Stop ends Run. It may be called more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Step runs a single frame: drain input, update the console, present.
func (s *Session) Step(dt time.Duration) error {
	for {
		select {
		case ev := <-s.inputCh:
			if ev.Kind == input.EventQuit {
				return ErrQuit
			}
			s.tracker.Apply(ev)
		default:
			goto drained
		}
	}
drained:

	s.mu.Lock()
	w, h := s.width, s.height
	s.mu.Unlock()
	if ew, eh := s.engine.Size(); ew != w || eh != h {
		s.engine.Resize(w, h)
	}

	s.console.Update(s.tracker.Snapshot(), dt)
	s.tracker.EndFrame()

	if out := s.engine.Render(s.console.Frame()); len(out) > 0 {
		if _, err := io.WriteString(s.out, out); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
	}
	return nil
}
