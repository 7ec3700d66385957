package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const settingsFileName = ".cairc"

// Settings is an ordered KEY=VALUE mapping. Keys keep the position of
// their first insertion.
type Settings struct {
	keys   []string
	values map[string]string
}

func NewSettings() *Settings {
	return &Settings{values: make(map[string]string)}
}

func (s *Settings) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *Settings) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Keys returns the keys in file order.
func (s *Settings) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s *Settings) Len() int {
	return len(s.keys)
}

// Line renders a single entry the way it is stored on disk.
func (s *Settings) Line(key string) string {
	return key + "=" + s.values[key]
}

func (s *Settings) marshal() []byte {
	if len(s.keys) == 0 {
		return nil
	}
	lines := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		lines = append(lines, s.Line(k))
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

func parseSettings(data string) *Settings {
	s := NewSettings()
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSuffix(line, "\r")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		s.Set(key, value)
	}
	return s
}

// Store reads and rewrites the settings file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns ~/.cairc.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, settingsFileName), nil
}

func (st *Store) Path() string {
	return st.path
}

// target is the file the store writes to. A symlinked settings file is
// followed so the link itself survives the rewrite.
func (st *Store) target() string {
	if resolved, err := filepath.EvalSymlinks(st.path); err == nil {
		return resolved
	}
	// dangling link: create the file it points to
	if link, err := os.Readlink(st.path); err == nil {
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(st.path), link)
		}
		return link
	}
	return st.path
}

// Load parses the settings file, creating an empty one when it does not
// exist yet.
func (st *Store) Load() (*Settings, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := writeFile(st.target(), nil, 0o600); err != nil {
				return nil, fmt.Errorf("failed to create settings file %s: %w", st.path, err)
			}
			return NewSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings file %s: %w", st.path, err)
	}
	return parseSettings(string(data)), nil
}

// Set stores key=value and rewrites the whole file.
func (st *Store) Set(key, value string) error {
	if err := validatePair(key, value); err != nil {
		return err
	}

	s, err := st.Load()
	if err != nil {
		return err
	}
	s.Set(key, value)

	if err := writeFile(st.target(), s.marshal(), 0o600); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", st.path, err)
	}
	return nil
}

// List returns every stored entry. Values are not redacted.
func (st *Store) List() (*Settings, error) {
	return st.Load()
}

func validatePair(key, value string) error {
	if key == "" {
		return errors.New("setting key cannot be empty")
	}
	if strings.ContainsAny(key, "= \t\r\n") {
		return fmt.Errorf("invalid setting key %q: must not contain '=' or whitespace", key)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("invalid value for %s: must be a single line", key)
	}
	return nil
}
