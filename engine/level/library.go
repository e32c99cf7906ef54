package level

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

//go:embed levels/*.level.toml
var embedded embed.FS

// Embedded returns the levels shipped with the game
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "levels")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return sub
}

// Discover lists level files in fsys in play order (lexical file name)
func Discover(fsys fs.FS) ([]string, error) {
	names, err := fs.Glob(fsys, "*"+FileSuffix)
	if err != nil {
		return nil, fmt.Errorf("discover levels: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

type entry struct {
	file   string
	def    *Definition
	err    error
	loaded bool
}

// Library is the ordered list of game levels. Levels are read in the
// background; until a level is read Level reports ErrNotLoaded.
type Library struct {
	mu      sync.RWMutex
	entries []entry
}

// NewLibrary creates a library for the given files, none loaded yet
func NewLibrary(files []string) *Library {
	l := &Library{entries: make([]entry, len(files))}
	for i, f := range files {
		l.entries[i].file = f
	}
	return l
}

// FromDefinitions builds an already loaded library, used by tests and the editor
func FromDefinitions(defs ...*Definition) *Library {
	l := &Library{entries: make([]entry, len(defs))}
	for i, d := range defs {
		l.entries[i] = entry{file: fmt.Sprintf("%02d%s", i, FileSuffix), def: d, loaded: true}
	}
	return l
}

// Open discovers the levels in fsys and loads them synchronously
func Open(ctx context.Context, fsys fs.FS) (*Library, error) {
	files, err := Discover(fsys)
	if err != nil {
		return nil, err
	}
	l := NewLibrary(files)
	if err := l.Load(ctx, fsys); err != nil {
		return nil, err
	}
	return l, nil
}

// Load reads every pending level concurrently. Malformed files are logged
// once and recorded; only cancellation is returned as an error.
func (l *Library) Load(ctx context.Context, fsys fs.FS) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, file := range l.files() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, file)
			var def *Definition
			if err == nil {
				def, err = Parse(data)
			} else {
				err = fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			if err != nil {
				slog.Error("level rejected", "file", file, "err", err)
			} else {
				slog.Debug("level loaded", "file", file, "creatures", len(def.Creatures))
			}
			l.set(i, def, err)
			return nil
		})
	}
	return g.Wait()
}

func (l *Library) files() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	files := make([]string, len(l.entries))
	for i, e := range l.entries {
		files[i] = e.file
	}
	return files
}

func (l *Library) set(i int, def *Definition, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[i].def = def
	l.entries[i].err = err
	l.entries[i].loaded = true
}

// Len returns the number of levels, loaded or not
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Name returns the display name of level i
func (l *Library) Name(i int) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.entries) {
		return ""
	}
	return DisplayName(l.entries[i].file)
}

// Level returns level i. Errors wrap ErrNoSuchLevel, ErrNotLoaded or
// ErrMalformed.
func (l *Library) Level(i int) (*Definition, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.entries) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchLevel, i)
	}
	e := l.entries[i]
	switch {
	case !e.loaded:
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, e.file)
	case e.err != nil:
		return nil, fmt.Errorf("%s: %w", e.file, e.err)
	}
	return e.def, nil
}
