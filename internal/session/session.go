// Package session persists the chart state between runs: the last
// configuration and a list of recently opened files.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"

	"snpview/internal/model"
	"snpview/internal/util/logx"
)

const (
	keyLast   = "last.cfg"
	keyRecent = "recent.json"
	maxRecent = 10
)

// DefaultDir is the session directory when none is configured.
func DefaultDir() string {
	if d, err := os.UserConfigDir(); err == nil {
		return filepath.Join(d, "snpview")
	}
	if h, err := homedir.Dir(); err == nil {
		return filepath.Join(h, ".snpview")
	}
	return filepath.Join(os.TempDir(), "snpview")
}

type Store struct {
	d   *diskv.Diskv
	dir string
}

// Open uses dir, expanding a leading ~. An empty dir means DefaultDir.
func Open(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	dir, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &model.IoError{Path: dir, Err: err}
	}
	return &Store{dir: dir, d: diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    func(string) []string { return nil },
		CacheSizeMax: 256 * 1024,
	})}, nil
}

func (s *Store) Dir() string { return s.dir }

// SaveLast stores an encoded chart configuration.
func (s *Store) SaveLast(data []byte) error {
	if err := s.d.Write(keyLast, data); err != nil {
		return &model.IoError{Path: filepath.Join(s.dir, keyLast), Err: err}
	}
	logx.Debugf("session: saved %d bytes to %s", len(data), s.dir)
	return nil
}

// LoadLast returns the last saved configuration; ok is false when none exists.
func (s *Store) LoadLast() (data []byte, ok bool, err error) {
	if !s.d.Has(keyLast) {
		return nil, false, nil
	}
	data, err = s.d.Read(keyLast)
	if err != nil {
		return nil, false, &model.IoError{Path: filepath.Join(s.dir, keyLast), Err: err}
	}
	return data, true, nil
}

// Forget drops the saved configuration.
func (s *Store) Forget() error {
	if err := s.d.Erase(keyLast); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Recent lists recently opened files, newest first.
func (s *Store) Recent() []string {
	if !s.d.Has(keyRecent) {
		return nil
	}
	val, err := s.d.Read(keyRecent)
	if err != nil {
		return nil
	}
	var list []string
	if err := json.Unmarshal(val, &list); err != nil {
		logx.Warnf("session: ignoring corrupt recent list: %v", err)
		return nil
	}
	return list
}

// Touch moves path to the front of the recent list.
func (s *Store) Touch(path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	list := []string{path}
	for _, p := range s.Recent() {
		if p != path && len(list) < maxRecent {
			list = append(list, p)
		}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.d.Write(keyRecent, b)
}
