package terminal

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// FeatureFile is the TOML layout accepted by Load:
//
//	[features]
//	orange = "38;5;208"
//
//	[aliases]
//	warning = ["orange", "bold"]
type FeatureFile struct {
	Features map[string]string   `toml:"features"`
	Aliases  map[string][]string `toml:"aliases"`
}

// LoadFile extends the registry from a TOML feature file
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load features: %w", err)
	}
	defer f.Close()
	return r.Load(f)
}

// Load extends the registry from TOML. Features are defined before aliases; aliases may
// reference each other in any order as long as no cycle exists.
func (r *Registry) Load(rd io.Reader) error {
	var ff FeatureFile
	if err := toml.NewDecoder(rd).Decode(&ff); err != nil {
		return fmt.Errorf("load features: %w", err)
	}

	names := make([]string, 0, len(ff.Features))
	for name := range ff.Features {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := r.Define(name, ff.Features[name]); err != nil {
			return fmt.Errorf("load features: define %q: %w", name, err)
		}
	}

	// Resolve aliases in passes until no progress
	pending := make([]string, 0, len(ff.Aliases))
	for name := range ff.Aliases {
		pending = append(pending, name)
	}
	sort.Strings(pending)

	for len(pending) > 0 {
		var next []string
		var lastErr error
		for _, name := range pending {
			if err := r.Alias(name, ff.Aliases[name]...); err != nil {
				next = append(next, name)
				lastErr = err
			}
		}
		if len(next) == len(pending) {
			return fmt.Errorf("load features: alias %q: %w", next[0], lastErr)
		}
		pending = next
	}
	return nil
}
