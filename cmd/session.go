package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/zjrosen/quill/internal/app"
	"github.com/zjrosen/quill/internal/cachemanager"
	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/document"
	"github.com/zjrosen/quill/internal/flags"
	"github.com/zjrosen/quill/internal/infrastructure/sqlite"
	"github.com/zjrosen/quill/internal/keys"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/rows"
	"github.com/zjrosen/quill/internal/tracing"
	"github.com/zjrosen/quill/internal/ui/styles"
	"github.com/zjrosen/quill/internal/watcher"
)

// session owns the editor model and the resources it borrows.
type session struct {
	model   app.Model
	tracing *tracing.Provider
	db      *sqlite.DB
	watcher *watcher.Watcher
	keep    int
}

// newSession builds everything the editor needs for path. Optional
// services that fail to start (position store, watcher) are logged and
// skipped.
func newSession(ctx context.Context, c config.Config, path string) (*session, error) {
	table, err := c.FiletypeTable()
	if err != nil {
		return nil, err
	}
	store := rows.New(rows.WithTabStop(c.TabStop), rows.WithTable(table))

	tc := c.Tracing
	if tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	provider, err := tracing.NewProvider(tc)
	if err != nil {
		return nil, fmt.Errorf("creating tracing provider: %w", err)
	}
	s := &session{tracing: provider, keep: c.Positions.Keep}

	doc := document.New(store, document.WithTracer(provider.Tracer()))
	if path != "" {
		if err := doc.Open(ctx, path); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}

	theme, err := styles.NewTheme(styles.ThemeConfig{
		Preset: c.Theme.Preset,
		Colors: c.Theme.FlattenedColors(),
	})
	if err != nil {
		_ = s.Close(ctx)
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	km := keys.DefaultKeyMap()
	if err := km.ApplyOverrides(c.Keys); err != nil {
		_ = s.Close(ctx)
		return nil, fmt.Errorf("invalid keys: %w", err)
	}

	fl := flags.WithDefaults(c.Flags)
	cache := cachemanager.NewInMemoryCacheManager[string, string]("lines", c.Cache.TTL, cachemanager.DefaultCleanupInterval)
	lines := cachemanager.NewLineCache(cache, c.Cache.TTL, fl.Enabled(flags.FlagRenderCache))

	var positions app.PositionStore
	if path != "" && fl.Enabled(flags.FlagRememberPosition) {
		if db, err := openPositions(c.Positions); err != nil {
			log.Warn(log.CatDB, "position store unavailable", "error", err)
		} else {
			s.db = db
			positions = db.Positions()
		}
	}

	var changes <-chan struct{}
	if path != "" && c.Watch.Enabled {
		if w, ch, err := startWatcher(path, c.Watch); err != nil {
			log.Warn(log.CatWatcher, "file watcher unavailable", "error", err)
		} else {
			s.watcher, changes = w, ch
		}
	}

	s.model = app.New(app.Config{
		Document:       doc,
		Theme:          theme,
		Keys:           km,
		Lines:          lines,
		Positions:      positions,
		Flags:          fl,
		Changes:        changes,
		ShowStatusBar:  c.UI.ShowStatusBar,
		MessageTimeout: c.UI.MessageTimeout,
		QuitTimes:      c.UI.QuitTimes,
	})
	return s, nil
}

func openPositions(pc config.PositionsConfig) (*sqlite.DB, error) {
	path := pc.Path
	if path == "" {
		path = config.DefaultPositionsPath()
	}
	if path == "" {
		return nil, errors.New("no positions path and no home directory")
	}
	return sqlite.NewDB(path)
}

func startWatcher(path string, wc config.WatchConfig) (*watcher.Watcher, <-chan struct{}, error) {
	w, err := watcher.New(watcher.Config{Path: path, Debounce: wc.Debounce})
	if err != nil {
		return nil, nil, err
	}
	ch, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return nil, nil, err
	}
	return w, ch, nil
}

// Close stops the watcher, prunes and closes the position store and flushes
// pending spans.
func (s *session) Close(ctx context.Context) error {
	var errs []error
	if s.watcher != nil {
		errs = append(errs, s.watcher.Stop())
	}
	if s.db != nil {
		if n, err := s.db.Positions().Prune(ctx, s.keep); err != nil {
			errs = append(errs, err)
		} else if n > 0 {
			log.Debug(log.CatDB, "pruned positions", "removed", n)
		}
		errs = append(errs, s.db.Close())
	}
	if s.tracing != nil {
		errs = append(errs, s.tracing.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
