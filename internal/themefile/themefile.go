package themefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/AvengeMedia/dankvscode/internal/vscode"
	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
)

var (
	ErrNotFound = errors.New("theme not found")
	ErrParse    = errors.New("theme parse error")
	ErrIO       = errors.New("theme io error")
)

// Store reads and writes theme documents on a filesystem.
type Store struct {
	fs afero.Fs
}

func NewStore(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

func NewOSStore() *Store {
	return NewStore(afero.NewOsFs())
}

func (s *Store) Fs() afero.Fs {
	return s.fs
}

func (s *Store) Load(path string) (vscode.Theme, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return vscode.Theme{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return vscode.Theme{}, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}

	theme, err := Parse(data)
	if err != nil {
		return vscode.Theme{}, fmt.Errorf("%s: %w", path, err)
	}
	return theme, nil
}

// Parse decodes JSON-with-comments text. Comments and trailing commas are
// stripped before decoding.
func Parse(data []byte) (vscode.Theme, error) {
	var theme vscode.Theme
	if err := json.Unmarshal(jsonc.ToJSON(data), &theme); err != nil {
		return vscode.Theme{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return theme, nil
}

// Encode renders a theme as tab-indented JSON with a trailing newline.
func Encode(theme vscode.Theme) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(theme); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Store) Write(path string, theme vscode.Theme) error {
	data, err := Encode(theme)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrIO, path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: create %s: %w", ErrIO, dir, err)
		}
	}

	if err := afero.WriteFile(s.fs, path, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	return nil
}
