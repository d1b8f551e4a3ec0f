package history

// Reference timings for a held undo/redo chord, in frames.
const (
	RepeatDelay = 25
	RepeatEvery = 2
)

// Repeat gates an action bound to a held chord: it fires on the first held
// frame, stays quiet for Delay frames, then fires every Every frames.
type Repeat struct {
	Delay int
	Every int

	held   bool
	frames int
}

// NewRepeat returns a gate with the reference timings.
func NewRepeat() *Repeat {
	return &Repeat{Delay: RepeatDelay, Every: RepeatEvery}
}

// Reset forgets the held run so the next held frame fires at once.
func (r *Repeat) Reset() {
	r.held = false
	r.frames = 0
}

// Step advances one frame and reports whether the action should fire.
func (r *Repeat) Step(held bool) bool {
	if !held {
		r.Reset()
		return false
	}
	if r.held {
		r.frames++
	} else {
		r.frames = 0
	}
	r.held = true

	if r.frames == 0 {
		return true
	}
	if r.frames < r.Delay {
		return false
	}
	every := r.Every
	if every <= 0 {
		every = 1
	}
	return r.frames%every == 0
}
