package parser

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ukaji3/gradecell-go/pkg/gradecell/models"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/trace"
)

// Loader opens workbooks through a Cache.
type Loader struct {
	cache    *Cache
	observer trace.Observer
}

// NewLoader creates a Loader. A nil cache gets a private one with
// DefaultCacheEntries slots; a nil observer discards events.
func NewLoader(cache *Cache, observer trace.Observer) *Loader {
	if cache == nil {
		cache = NewCache(DefaultCacheEntries)
	}
	return &Loader{cache: cache, observer: trace.OrNoop(observer)}
}

// Cache returns the cache backing the loader.
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Load returns the parsed workbook at path. A second call for an unchanged
// file is served from the cache without reading the file again.
func (l *Loader) Load(path string) (*models.Workbook, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, loadError(path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, loadError(path, err)
	}
	if info.IsDir() {
		return nil, loadError(path, fmt.Errorf("%s is a directory", abs))
	}

	if wb, ok := l.cache.Get(abs, info.ModTime(), info.Size()); ok {
		l.observer.Observe(trace.Event{
			Name:   trace.WorkbookCacheHit,
			Level:  slog.LevelDebug,
			Fields: map[string]any{"path": abs},
		})
		return wb, nil
	}

	wb, err := ReadWorkbook(abs)
	if err != nil {
		return nil, loadError(path, err)
	}
	// Key on the stat taken before parsing so a file modified mid-read is
	// parsed again on the next call.
	evicted := l.cache.Put(abs, info.ModTime(), info.Size(), wb)
	l.observer.Observe(trace.Event{
		Name:   trace.WorkbookLoaded,
		Level:  slog.LevelDebug,
		Fields: map[string]any{"path": abs, "sheets": len(wb.SheetOrder)},
	})
	for _, p := range evicted {
		l.observer.Observe(trace.Event{
			Name:   trace.WorkbookEvicted,
			Level:  slog.LevelDebug,
			Fields: map[string]any{"path": p},
		})
	}
	return wb, nil
}

// Mapping returns the activity mapping of wb for spec, built once per cached
// workbook.
func (l *Loader) Mapping(wb *models.Workbook, spec HeaderSpec) (*models.ActivityMapping, error) {
	return l.cache.Mapping(wb, spec.key(), func() (*models.ActivityMapping, error) {
		return BuildMapping(wb, spec, l.observer)
	})
}

func loadError(path string, err error) error {
	return &LookupError{Op: OpLoad, Path: path, Err: fmt.Errorf("%w: %w", ErrFileLoad, err)}
}
