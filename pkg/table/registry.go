package table

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/logging"
)

// Registry finds tables by name across the builtin set and a list of
// directories, caching each table after its first load.
type Registry struct {
	dirs []string

	mu     sync.Mutex
	tables map[string]*Table
}

// NewRegistry creates a registry searching dirs in order, before the
// builtin tables.
func NewRegistry(dirs ...string) *Registry {
	return &Registry{
		dirs:   dirs,
		tables: make(map[string]*Table),
	}
}

// Get resolves ref, which is either a path to a table file or a table
// name looked up as <dir>/<name>.{toml,yaml,yml} and then among the
// builtin tables.
func (r *Registry) Get(ref string) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tables[ref]; ok {
		return t, nil
	}

	t, err := r.load(ref)
	if err != nil {
		return nil, err
	}
	r.tables[ref] = t
	return t, nil
}

func (r *Registry) load(ref string) (*Table, error) {
	log := logging.GetLogger("table.Registry")

	if _, ok := FormatForPath(ref); ok {
		if _, err := os.Stat(ref); err == nil {
			return LoadFile(ref)
		}
	}

	for _, dir := range r.dirs {
		for _, ext := range []string{".toml", ".yaml", ".yml"} {
			path := filepath.Join(dir, ref+ext)
			if _, err := os.Stat(path); err == nil {
				log.Debug().Str("ref", ref).Str("path", path).Msg("Resolved table from directory")
				return LoadFile(path)
			}
		}
	}

	t, err := Builtin(ref)
	if err != nil && !errors.IsErrorCode(err, errors.ErrTableNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, errors.Newf(errors.ErrTableNotFound, "table %q not found in %v or builtin tables", ref, r.dirs).
			WithDetail("table", ref)
	}
	return t, nil
}

// Names lists every table name reachable through the registry: files in
// the search directories followed by builtin tables not shadowed by them.
func (r *Registry) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, dir := range r.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, ok := FormatForPath(e.Name()); !ok {
				continue
			}
			name := e.Name()[:len(e.Name())-len(filepath.Ext(e.Name()))]
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	for _, name := range BuiltinNames() {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
