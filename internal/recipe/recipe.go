package recipe

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/AvengeMedia/dankvscode/internal/merge"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFile    = "dankvscode.yaml"
	EnvOutputDir   = "DANKVSCODE_OUTPUT_DIR"
	defaultJobs    = 1
	maxJobs        = 64
	ansiColorCount = 16
)

// Variant describes one output theme: a base document, the fragments merged
// onto it in order, and where the result goes.
type Variant struct {
	Name     string         `yaml:"name"`
	Strategy merge.Strategy `yaml:"strategy"`
	Base     string         `yaml:"base"`
	Sources  []string       `yaml:"sources"`
	Output   string         `yaml:"output"`
	ANSI     []string       `yaml:"ansi,omitempty"`
}

type Recipe struct {
	Jobs     int       `yaml:"jobs"`
	Variants []Variant `yaml:"variants"`

	// Dir is the directory relative paths resolve against.
	Dir string `yaml:"-"`
}

// Load reads a recipe, loading a .env file next to it first when present.
// Relative paths are resolved against the recipe's directory.
func Load(fsys afero.Fs, path string) (*Recipe, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := loadEnv(fsys, envPath); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("error reading recipe file: %w", err)
	}

	r, err := Parse(data)
	if err != nil {
		return nil, err
	}
	r.Dir = filepath.Dir(path)
	r.resolve(os.Getenv(EnvOutputDir))

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recipe: %w", err)
	}

	return r, nil
}

func loadEnv(fsys afero.Fs, path string) error {
	f, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	env, err := godotenv.Parse(f)
	if err != nil {
		return err
	}
	for key, value := range env {
		// the process environment wins over the file
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("error parsing recipe file: %w", err)
	}
	if r.Jobs == 0 {
		r.Jobs = defaultJobs
	}
	for i := range r.Variants {
		if s, err := merge.ParseStrategy(string(r.Variants[i].Strategy)); err == nil {
			r.Variants[i].Strategy = s
		}
	}
	return &r, nil
}

func (r *Recipe) resolve(outputDir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(r.Dir, p)
	}

	for i := range r.Variants {
		v := &r.Variants[i]
		v.Base = abs(v.Base)
		for j := range v.Sources {
			v.Sources[j] = abs(v.Sources[j])
		}
		if outputDir != "" && v.Output != "" {
			v.Output = filepath.Join(outputDir, filepath.Base(v.Output))
			continue
		}
		v.Output = abs(v.Output)
	}
}

func (r *Recipe) Validate() error {
	if len(r.Variants) == 0 {
		return fmt.Errorf("at least one variant is required")
	}
	if r.Jobs < 1 || r.Jobs > maxJobs {
		return fmt.Errorf("jobs must be between 1 and %d, got %d", maxJobs, r.Jobs)
	}

	seen := make(map[string]bool, len(r.Variants))
	for i, v := range r.Variants {
		if v.Name == "" {
			return fmt.Errorf("variant %d: name is required", i)
		}
		if seen[v.Name] {
			return fmt.Errorf("variant %s: duplicate name", v.Name)
		}
		seen[v.Name] = true

		if v.Base == "" {
			return fmt.Errorf("variant %s: base is required", v.Name)
		}
		if v.Output == "" {
			return fmt.Errorf("variant %s: output is required", v.Name)
		}
		if _, err := merge.ParseStrategy(string(v.Strategy)); err != nil {
			return fmt.Errorf("variant %s: %w", v.Name, err)
		}
		if len(v.ANSI) != 0 && len(v.ANSI) != ansiColorCount {
			return fmt.Errorf("variant %s: ansi needs %d colors, got %d", v.Name, ansiColorCount, len(v.ANSI))
		}
	}

	return nil
}

// Variant returns the variant with the given name.
func (r *Recipe) Variant(name string) (Variant, bool) {
	for _, v := range r.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}
