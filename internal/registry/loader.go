package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ros2types/ros2types/internal/typedesc"
)

// descriptionExt is the extension of the description file that sits next to
// every definition file.
const descriptionExt = ".json"

// LoadSources loads every source in order and returns the number of records
// added. Sources may overlap; types already loaded with the same hash are
// skipped silently.
func (r *Registry) LoadSources(sources []Source) int {
	total := 0
	for _, src := range sources {
		total += r.LoadDir(src.BasePath)
	}
	r.log.Info().Int("loaded", total).Int("total", r.Len()).Int("sources", len(sources)).Msg("types loaded from all sources")
	return total
}

// LoadDir walks root, following symbolic links, and loads every .msg, .srv
// and .action file paired with a .json description. Failures are logged and
// skipped. It returns the number of records added.
func (r *Registry) LoadDir(root string) int {
	r.log.Debug().Str("root", root).Msg("loading types")

	count := 0
	w := &walker{
		visited: make(map[string]bool),
		onError: r.reportLoadError,
		onFile: func(path string, kind Kind) {
			rec, err := LoadFile(path, kind)
			if err != nil {
				r.reportLoadError(err)
				return
			}
			added, err := r.Insert(rec)
			if err != nil {
				r.reportLoadError(err)
				return
			}
			if !added {
				r.log.Debug().Str("type", rec.FullName).Str("path", rec.DescriptionPath).Msg("type already loaded with same hash")
				return
			}
			count++
			r.log.Debug().
				Str("type", rec.FullName).
				Str("description", rec.DescriptionPath).
				Str("definition", rec.DefinitionPath).
				Msg("type loaded")
		},
	}
	w.walk(root)

	r.obs.TypesLoaded(r.Len())
	r.log.Info().Int("count", count).Str("root", root).Msg("types loaded")
	return count
}

// LoadFile reads the definition at definitionPath and its sibling .json
// description and builds a TypeRecord. It does not touch any registry.
func LoadFile(definitionPath string, kind Kind) (*TypeRecord, error) {
	descPath := strings.TrimSuffix(definitionPath, filepath.Ext(definitionPath)) + descriptionExt

	data, err := os.ReadFile(descPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &AccessError{Path: descPath, Err: fmt.Errorf("no JSON description found for %s", definitionPath)}
		}
		return nil, &AccessError{Path: descPath, Err: err}
	}

	desc, err := typedesc.Parse(data)
	if err != nil {
		return nil, &ParseError{Path: descPath, Err: err}
	}

	text, err := os.ReadFile(definitionPath)
	if err != nil {
		return nil, &AccessError{Path: definitionPath, Err: err}
	}

	return NewTypeRecord(kind, desc, string(text), descPath, definitionPath)
}

func (r *Registry) reportLoadError(err error) {
	kind := errorKind(err)
	r.obs.LoadFailed(kind)
	r.log.Warn().Err(err).Str("kind", kind).Msg("skipping type")
}

// walker is a recursive directory walk that follows symbolic links to
// directories. Each real directory is visited at most once, so link cycles
// terminate.
type walker struct {
	visited map[string]bool
	onError func(error)
	onFile  func(path string, kind Kind)
}

func (w *walker) walk(dir string) {
	realDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		w.onError(&AccessError{Path: dir, Err: err})
		return
	}
	if w.visited[realDir] {
		return
	}
	w.visited[realDir] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.onError(&AccessError{Path: dir, Err: err})
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		info, err := os.Stat(path)
		if err != nil {
			w.onError(&AccessError{Path: path, Err: err})
			continue
		}

		switch {
		case info.IsDir():
			w.walk(path)
		case info.Mode().IsRegular():
			if kind, ok := KindFromExt(filepath.Ext(path)); ok {
				w.onFile(path, kind)
			}
		}
	}
}
