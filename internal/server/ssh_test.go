package server

import (
	"path/filepath"
	"testing"
)

func TestSheetPath(t *testing.T) {
	s := NewSSHServer(":0", "host_key", "sheets", 1)
	tests := []struct {
		user string
		want string
	}{
		{"alice", "alice.sprt"},
		{"Bob_2", "Bob_2.sprt"},
		{"../etc/passwd", "___etc_passwd.sprt"},
		{"a b", "a_b.sprt"},
		{"", "Anonymous.sprt"},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			if got := s.SheetPath(tt.user); got != filepath.Join("sheets", tt.want) {
				t.Errorf("SheetPath(%q) = %q", tt.user, got)
			}
		})
	}
}
