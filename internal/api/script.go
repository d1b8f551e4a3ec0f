package api

import "time"

// Script is a game program driven by the console. Both calls receive the
// mutator for their duration only.
type Script interface {
	Start(m *Mutator) error
	Update(m *Mutator, dt time.Duration) error
}

// Hello is the built-in game shown on a fresh console.
type Hello struct{}

func (Hello) Start(m *Mutator) error {
	m.Log("Welcome to RICO-32!")
	m.SetFrameRate(DefaultFrameRate)
	return nil
}

func (Hello) Update(m *Mutator, _ time.Duration) error {
	if err := m.Clear("BLACK"); err != nil {
		return err
	}
	if err := m.Print(10, 10, "WHITE", "Hello, World!"); err != nil {
		return err
	}
	if p := m.Mouse(); p.Pressed {
		return m.Circle(p.X, p.Y, 5, "RED")
	}
	return nil
}

// Start runs s.Start under the host lock. Failures are logged to the console.
func (h *Host) Start(s Script) error {
	return h.With(func(m *Mutator) error {
		if err := s.Start(m); err != nil {
			m.LogError(err)
			return err
		}
		return nil
	})
}

// Update runs one script frame under the host lock.
func (h *Host) Update(s Script, dt time.Duration) error {
	return h.With(func(m *Mutator) error {
		if err := s.Update(m, dt); err != nil {
			m.LogError(err)
			return err
		}
		return nil
	})
}
