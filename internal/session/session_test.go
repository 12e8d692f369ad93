package session

import (
	"fmt"
	"path/filepath"
	"testing"
)

func TestLast(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok, err := s.LoadLast(); ok || err != nil {
		t.Fatalf("fresh store: ok=%v err=%v", ok, err)
	}
	if err := s.SaveLast([]byte("T\nX\nY\n")); err != nil {
		t.Fatalf("save: %v", err)
	}
	// a second handle reads from disk, not the cache
	s2, _ := Open(s.Dir())
	data, ok, err := s2.LoadLast()
	if err != nil || !ok || string(data) != "T\nX\nY\n" {
		t.Fatalf("load: %q %v %v", data, ok, err)
	}
	if err := s2.Forget(); err != nil {
		t.Fatalf("forget: %v", err)
	}
	if _, ok, _ := s2.LoadLast(); ok {
		t.Fatal("still present after forget")
	}
}

func TestRecent(t *testing.T) {
	dir := t.TempDir()
	s, _ := Open(dir)
	for i := 0; i < maxRecent+3; i++ {
		if err := s.Touch(filepath.Join(dir, fmt.Sprintf("f%d.s2p", i))); err != nil {
			t.Fatalf("touch: %v", err)
		}
	}
	_ = s.Touch(filepath.Join(dir, "f5.s2p"))
	got := s.Recent()
	if len(got) != maxRecent || got[0] != filepath.Join(dir, "f5.s2p") || got[1] != filepath.Join(dir, "f12.s2p") {
		t.Fatalf("recent: %q", got)
	}
}
