package resources

import (
	"reflect"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/emberengine/ember/engine/core"
)

// Importer converts raw resource bytes into a backend payload. Importers run
// on background workers and must not mutate shared state outside their
// return value.
type Importer interface {
	// Extensions lists the file extensions (lower case, no dot) this
	// importer claims.
	Extensions() []string
	// Import decodes data into a payload. baseDir is the directory of the
	// resolved resource, for formats that reference sibling files.
	Import(data []byte, baseDir string, options Options) (interface{}, error)
}

// Registry holds importers in reverse registration order: the most recently
// registered importer wins extension lookups, which lets applications
// override the built-in formats.
type Registry struct {
	mutex     sync.RWMutex
	importers []Importer
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register inserts the importer at the front of the search order. An
// importer of the identical concrete type registers only once.
func (r *Registry) Register(imp Importer) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	t := reflect.TypeOf(imp)
	for _, existing := range r.importers {
		if reflect.TypeOf(existing) == t {
			core.LogWarn("importer of type %s already registered, skipping", t)
			return false
		}
	}
	r.importers = append([]Importer{imp}, r.importers...)
	return true
}

// ForExtension returns the first importer claiming the extension.
func (r *Registry) ForExtension(ext string) (Importer, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, imp := range r.importers {
		if slices.Contains(imp.Extensions(), ext) {
			return imp, true
		}
	}
	return nil, false
}

// Len returns the number of registered importers.
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.importers)
}
