package resources

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Options carries importer-specific load parameters. Two requests with the
// same path and structurally equal options resolve to the same cache entry.
type Options map[string]string

// digest produces a canonical representation so that option maps hash
// structurally. A nil map digests the same as an empty one.
func (o Options) digest() string {
	if len(o) == 0 {
		return ""
	}
	keys := maps.Keys(o)
	slices.Sort(keys)
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(o[k])
		sb.WriteByte(';')
	}
	return sb.String()
}

// Key uniquely identifies a requested resource: either a (path, options)
// pair or a synthetically generated id ("$N") for resources constructed in
// memory. Keys are comparable values; equality is structural.
type Key struct {
	Path    string
	Options string
}

// Synthetic reports whether the key was generated for an in-memory resource.
// Synthetic keys are exempt from importer lookup and hot reload.
func (k Key) Synthetic() bool {
	return strings.HasPrefix(k.Path, "$")
}

func (k Key) String() string {
	if k.Options == "" {
		return k.Path
	}
	return k.Path + "?" + k.Options
}

// Request describes a resource to resolve.
type Request struct {
	Path    string
	Options Options
}

func (r Request) key() Key {
	return Key{Path: r.Path, Options: r.Options.digest()}
}
