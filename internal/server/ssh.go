package server

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/gliderlabs/ssh"

	"rico-32/internal/api"
	"rico-32/internal/console"
	"rico-32/internal/render"
	"rico-32/internal/session"
	"rico-32/internal/sheet"
)

// SSHServer serves one console per SSH session. Each user edits their own
// sprite sheet under sheetDir.
type SSHServer struct {
	addr     string
	hostKey  string
	sheetDir string
	workers  int
	maxFPS   int
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr, hostKey, sheetDir string, workers int) *SSHServer {
	return &SSHServer{
		addr:     addr,
		hostKey:  hostKey,
		sheetDir: sheetDir,
		workers:  workers,
		maxFPS:   session.MaxFrameRate,
	}
}

// LimitFrameRate caps the frame rate of every session.
func (s *SSHServer) LimitFrameRate(fps int) {
	s.maxFPS = fps
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	// Set host key
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

// SheetPath returns the sheet file for a user. Names are reduced to a safe
// file name.
func (s *SSHServer) SheetPath(user string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, user)
	if clean == "" {
		clean = "Anonymous"
	}
	return filepath.Join(s.sheetDir, clean+".sprt")
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	path := s.SheetPath(username)
	sh, err := sheet.LoadOrCreate(path, sheet.SpriteSize, sheet.InitialSprites)
	if err != nil {
		// The blank sheet is still usable; saves will report their own failures.
		log.Printf("Sheet for %s not saved: %v", username, err)
	}

	c := console.New(console.Config{
		Sheet:   sh,
		Save:    sheet.Saver(path),
		Sprites: api.FileSprites(path, sheet.SpriteSize),
		Workers: s.workers,
	})
	sn := session.New(c, sess, ptyReq.Window.Width, ptyReq.Window.Height)
	sn.LimitFrameRate(s.maxFPS)

	log.Printf("Console opened: %s (%s)", username, path)
	defer log.Printf("Console closed: %s", username)

	// Setup terminal
	io.WriteString(sess, render.Enter())
	defer io.WriteString(sess, render.Leave())

	// Goroutine: read input
	go func() {
		defer sn.Stop()
		buf := make([]byte, 256)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			sn.Feed(buf[:n])
		}
	}()

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			sn.Resize(win.Width, win.Height)
		}
	}()

	if err := sn.Run(); err != nil {
		log.Printf("Console for %s ended: %v", username, err)
	}
}
