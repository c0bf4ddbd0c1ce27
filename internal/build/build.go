package build

import (
	"context"
	"fmt"

	"github.com/AvengeMedia/dankvscode/internal/log"
	"github.com/AvengeMedia/dankvscode/internal/merge"
	"github.com/AvengeMedia/dankvscode/internal/palette"
	"github.com/AvengeMedia/dankvscode/internal/recipe"
	"github.com/AvengeMedia/dankvscode/internal/themefile"
	"github.com/AvengeMedia/dankvscode/internal/vscode"
	"golang.org/x/sync/errgroup"
)

type Builder struct {
	store  *themefile.Store
	logger *log.Logger
}

func NewBuilder(store *themefile.Store, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.GetLogger()
	}
	return &Builder{store: store, logger: logger}
}

// Compose loads and merges a variant without writing it.
func (b *Builder) Compose(v recipe.Variant) (vscode.Theme, error) {
	strategy, err := merge.ParseStrategy(string(v.Strategy))
	if err != nil {
		return vscode.Theme{}, err
	}

	base, err := b.store.Load(v.Base)
	if err != nil {
		return vscode.Theme{}, err
	}
	b.logger.Debugf("loaded base %s (%d colors, %d token rules)", v.Base, len(base.Colors), len(base.TokenColors))

	sources := make([]vscode.Theme, 0, len(v.Sources))
	for _, path := range v.Sources {
		src, err := b.store.Load(path)
		if err != nil {
			return vscode.Theme{}, err
		}
		b.logger.Debugf("loaded source %s (%d colors, %d token rules)", path, len(src.Colors), len(src.TokenColors))
		sources = append(sources, src)
	}

	theme := strategy.Merge(base, sources...)

	// terminal colors are always layered key by key, whatever the strategy
	if len(v.ANSI) > 0 {
		fragment, err := palette.TerminalFragment(v.ANSI)
		if err != nil {
			return vscode.Theme{}, fmt.Errorf("variant %s: %w", v.Name, err)
		}
		if theme.Colors == nil {
			theme.Colors = make(map[string]string, len(fragment.Colors))
		}
		for k, c := range fragment.Colors {
			theme.Colors[k] = c
		}
	}

	if _, ok := theme.ExtraString("type"); !ok {
		if bg, ok := theme.Colors["editor.background"]; ok {
			theme.SetExtraString("type", palette.DetectType(bg))
		}
	}
	if _, ok := theme.Extra["$schema"]; !ok {
		theme.SetExtraString("$schema", vscode.SchemaURL)
	}

	return theme, nil
}

// BuildVariant composes a variant and writes it to its output path. Lint
// issues are logged as warnings.
func (b *Builder) BuildVariant(ctx context.Context, v recipe.Variant) (vscode.Theme, error) {
	if err := ctx.Err(); err != nil {
		return vscode.Theme{}, err
	}

	theme, err := b.Compose(v)
	if err != nil {
		return vscode.Theme{}, err
	}

	for _, issue := range palette.Lint(theme) {
		b.logger.Warnf("%s: %s", v.Name, issue)
	}

	if err := b.store.Write(v.Output, theme); err != nil {
		return vscode.Theme{}, err
	}

	b.logger.Infof("Wrote %s (%s, %d sources, %d token rules)", v.Output, v.Strategy, len(v.Sources), len(theme.TokenColors))
	return theme, nil
}

// BuildAll builds every variant of r, at most r.Jobs at a time. The first
// failure stops variants that have not started yet.
func (b *Builder) BuildAll(ctx context.Context, r *recipe.Recipe) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Jobs, 1))

	for _, v := range r.Variants {
		v := v
		g.Go(func() error {
			if _, err := b.BuildVariant(ctx, v); err != nil {
				return fmt.Errorf("variant %s: %w", v.Name, err)
			}
			return nil
		})
	}

	return g.Wait()
}
