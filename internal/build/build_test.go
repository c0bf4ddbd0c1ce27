package build

import (
	"bytes"
	"context"
	"testing"

	"github.com/AvengeMedia/dankvscode/internal/log"
	"github.com/AvengeMedia/dankvscode/internal/merge"
	"github.com/AvengeMedia/dankvscode/internal/recipe"
	"github.com/AvengeMedia/dankvscode/internal/themefile"
	"github.com/AvengeMedia/dankvscode/internal/vscode"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseDark = `{
	"name": "Dank Dark",
	"colors": {
		"editor.background": "#101418",
		"editor.foreground": "#e0e2e8",
	},
	"tokenColors": [
		{ "scope": ["comment", "punctuation.definition.comment"], "settings": { "foreground": "#5c6370", "fontStyle": "italic" } },
		{ "scope": ["keyword", "storage.type"], "settings": { "foreground": "#839fbc" } },
	],
}`

// vendor fragment for Go sources
const vendorGo = `{
	"colors": { "editor.foreground": "#ffffff" },
	"tokenColors": [
		{ "scope": "comment", "settings": { "fontStyle": null } },
		{ "scope": ["storage.type", "entity.name.type.go"], "settings": { "foreground": "#a7d9ff" } },
	],
}`

var ansi = []string{
	"#101418", "#d75a59", "#8ed88c", "#e0d99d",
	"#4087bc", "#839fbc", "#9dcbfb", "#abb2bf",
	"#5c6370", "#e57e7e", "#a2e5a0", "#efe9b3",
	"#a7d9ff", "#3d8197", "#5c7ba3", "#ffffff",
}

func newTestBuilder(t *testing.T) (*Builder, afero.Fs, *bytes.Buffer) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/base-dark.jsonc", []byte(baseDark), 0644))
	require.NoError(t, afero.WriteFile(fs, "/src/vendor-go.jsonc", []byte(vendorGo), 0644))

	var logs bytes.Buffer
	return NewBuilder(themefile.NewStore(fs), log.New(&logs)), fs, &logs
}

func TestBuildVariant_DeepMerge(t *testing.T) {
	b, fs, logs := newTestBuilder(t)

	v := recipe.Variant{
		Name:     "dark",
		Strategy: merge.StrategyDeep,
		Base:     "/src/base-dark.jsonc",
		Sources:  []string{"/src/vendor-go.jsonc"},
		Output:   "/dist/dank-dark.json",
		ANSI:     ansi,
	}

	theme, err := b.BuildVariant(context.Background(), v)
	require.NoError(t, err)

	assert.Equal(t, "#ffffff", theme.Colors["editor.foreground"])
	assert.Equal(t, "#d75a59", theme.Colors["terminal.ansiRed"])

	typ, _ := theme.ExtraString("type")
	assert.Equal(t, "dark", typ)
	schema, _ := theme.ExtraString("$schema")
	assert.Equal(t, vscode.SchemaURL, schema)

	written, err := themefile.NewStore(fs).Load("/dist/dank-dark.json")
	require.NoError(t, err)
	assert.Equal(t, theme, written)

	rs := merge.NewRuleSet(written.TokenColors)
	comment, ok := rs.Lookup("comment")
	require.True(t, ok)
	assert.Equal(t, vscode.Settings{"foreground": "#5c6370"}, comment)
	storage, ok := rs.Lookup("storage.type")
	require.True(t, ok)
	assert.Equal(t, vscode.Settings{"foreground": "#a7d9ff"}, storage)
	keyword, ok := rs.Lookup("keyword")
	require.True(t, ok)
	assert.Equal(t, vscode.Settings{"foreground": "#839fbc"}, keyword)

	assert.Contains(t, logs.String(), "/dist/dank-dark.json")
}

func TestBuildVariant_Overwrite(t *testing.T) {
	b, _, _ := newTestBuilder(t)

	theme, err := b.BuildVariant(context.Background(), recipe.Variant{
		Name:     "flat",
		Strategy: merge.StrategyOverwrite,
		Base:     "/src/base-dark.jsonc",
		Sources:  []string{"/src/vendor-go.jsonc"},
		Output:   "/dist/flat.json",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"editor.foreground": "#ffffff"}, theme.Colors)
	require.Len(t, theme.TokenColors, 2)
	assert.Equal(t, vscode.Scope{"comment"}, theme.TokenColors[0].Scope)
	_, hasType := theme.ExtraString("type")
	assert.False(t, hasType, "no background, no detected type")
}

func TestBuildVariant_OverwriteKeepsColorsWithANSI(t *testing.T) {
	b, _, _ := newTestBuilder(t)

	tests := []struct {
		name       string
		sources    []string
		wantColors int
		wantFg     string
		wantType   string
	}{
		{name: "vendor colors", sources: []string{"/src/vendor-go.jsonc"}, wantColors: 17, wantFg: "#ffffff"},
		{name: "base colors", wantColors: 18, wantFg: "#e0e2e8", wantType: "dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := b.BuildVariant(context.Background(), recipe.Variant{
				Name:     "flat-" + tt.name,
				Strategy: merge.StrategyOverwrite,
				Base:     "/src/base-dark.jsonc",
				Sources:  tt.sources,
				Output:   "/dist/flat.json",
				ANSI:     ansi,
			})
			require.NoError(t, err)

			assert.Len(t, theme.Colors, tt.wantColors)
			assert.Equal(t, tt.wantFg, theme.Colors["editor.foreground"])
			assert.Equal(t, "#d75a59", theme.Colors["terminal.ansiRed"])
			typ, _ := theme.ExtraString("type")
			assert.Equal(t, tt.wantType, typ)
		})
	}
}

func TestBuildVariant_LintWarnings(t *testing.T) {
	b, fs, logs := newTestBuilder(t)
	require.NoError(t, afero.WriteFile(fs, "/src/low-contrast.json", []byte(`{"colors": {"editor.foreground": "#181c20"}}`), 0644))

	_, err := b.BuildVariant(context.Background(), recipe.Variant{
		Name:     "dim",
		Strategy: merge.StrategyDeep,
		Base:     "/src/base-dark.jsonc",
		Sources:  []string{"/src/low-contrast.json"},
		Output:   "/dist/dim.json",
	})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "contrast")
}

func TestBuildVariant_Errors(t *testing.T) {
	b, _, _ := newTestBuilder(t)

	_, err := b.BuildVariant(context.Background(), recipe.Variant{
		Name:    "dark",
		Base:    "/src/base-dark.jsonc",
		Sources: []string{"/src/missing.jsonc"},
		Output:  "/dist/dark.json",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, themefile.ErrNotFound)
	assert.Contains(t, err.Error(), "/src/missing.jsonc")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.BuildVariant(ctx, recipe.Variant{Name: "dark", Base: "/src/base-dark.jsonc", Output: "/dist/dark.json"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildVariant_WriteFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/base-dark.jsonc", []byte(baseDark), 0644))

	var logs bytes.Buffer
	b := NewBuilder(themefile.NewStore(afero.NewReadOnlyFs(fs)), log.New(&logs))

	_, err := b.BuildVariant(context.Background(), recipe.Variant{Name: "dark", Base: "/src/base-dark.jsonc", Output: "/dist/dark.json"})
	require.Error(t, err)
	assert.ErrorIs(t, err, themefile.ErrIO)
}

func TestBuildAll(t *testing.T) {
	b, fs, _ := newTestBuilder(t)

	r := &recipe.Recipe{
		Jobs: 2,
		Variants: []recipe.Variant{
			{Name: "dark", Strategy: merge.StrategyDeep, Base: "/src/base-dark.jsonc", Sources: []string{"/src/vendor-go.jsonc"}, Output: "/dist/dark.json"},
			{Name: "plain", Strategy: merge.StrategyDeep, Base: "/src/base-dark.jsonc", Output: "/dist/plain.json"},
			{Name: "flat", Strategy: merge.StrategyOverwrite, Base: "/src/base-dark.jsonc", Sources: []string{"/src/vendor-go.jsonc"}, Output: "/dist/flat.json"},
		},
	}

	require.NoError(t, b.BuildAll(context.Background(), r))

	for _, path := range []string{"/dist/dark.json", "/dist/plain.json", "/dist/flat.json"} {
		exists, err := afero.Exists(fs, path)
		require.NoError(t, err)
		assert.True(t, exists, path)
	}

	r.Variants = append(r.Variants, recipe.Variant{Name: "broken", Base: "/src/nope.jsonc", Output: "/dist/broken.json"})
	err := b.BuildAll(context.Background(), r)
	require.Error(t, err)
	assert.ErrorIs(t, err, themefile.ErrNotFound)
	assert.Contains(t, err.Error(), "variant broken")
}
