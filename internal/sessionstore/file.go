package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var validID = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// File keeps one JSON file per session under a directory. It is the
// default for the CLI when no Redis URL is configured. Records older than
// ttl are treated as missing; zero disables expiry.
type File struct {
	dir string
	ttl time.Duration
}

func NewFile(dir string, ttl time.Duration) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &File{dir: dir, ttl: ttl}, nil
}

// DefaultDir is $XDG_DATA_HOME/studyforge/sessions.
func DefaultDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "studyforge", "sessions"), nil
}

func (f *File) path(id string) (string, error) {
	if !validID.MatchString(id) {
		return "", fmt.Errorf("invalid session id %q", id)
	}
	return filepath.Join(f.dir, id+".json"), nil
}

func (f *File) Load(_ context.Context, id string) (*Record, error) {
	p, err := f.path(id)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", id, err)
	}
	rec, err := decode(id, b)
	if err != nil {
		return nil, err
	}
	if f.ttl > 0 && time.Since(rec.UpdatedAt) > f.ttl {
		_ = os.Remove(p)
		return nil, ErrNotFound
	}
	return rec, nil
}

// Save writes through a temp file so a crash never leaves half a record.
func (f *File) Save(_ context.Context, rec *Record) error {
	b, err := encode(rec)
	if err != nil {
		return err
	}
	p, err := f.path(rec.State.ID)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, ".session-*")
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("save session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (f *File) Delete(_ context.Context, id string) error {
	p, err := f.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
