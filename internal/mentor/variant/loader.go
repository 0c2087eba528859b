package variant

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is a variant name and where it comes from.
type Entry struct {
	Name   string
	Source string // Directory path, or "builtin"
}

// Find resolves a variant by name. Files in dirs take precedence over
// built-ins, and later directories take precedence over earlier ones.
func Find(name string, dirs []string) (*Variant, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".toml")
	if name == "" {
		name = DefaultName
	}
	variantFile := name + ".toml"

	var variantPath string
	for _, dir := range dirs {
		candidatePath := filepath.Join(dir, variantFile)
		if _, err := os.Stat(candidatePath); err == nil {
			variantPath = candidatePath
			// Continue searching so later directories win
		}
	}

	var v *Variant
	if variantPath != "" {
		loaded, err := LoadFile(variantPath)
		if err != nil {
			return nil, fmt.Errorf("error loading variant file: %w", err)
		}
		v = loaded
	} else if builtin, ok := Builtin(name); ok {
		v = builtin
	} else {
		return nil, fmt.Errorf("%w: %s (searched %v and built-ins %v)", ErrNotFound, name, dirs, BuiltinNames())
	}

	v.Name = name
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// List returns every available variant, sorted by name. A name found in
// several places is reported once, with the source that Find would use.
func List(dirs []string) ([]Entry, error) {
	sources := make(map[string]string)
	for _, name := range BuiltinNames() {
		sources[name] = "builtin"
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}

		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || !strings.HasSuffix(info.Name(), ".toml") {
				return nil
			}

			relPath, err := filepath.Rel(dir, path)
			if err != nil {
				return nil
			}
			name := filepath.ToSlash(strings.TrimSuffix(relPath, ".toml"))
			sources[name] = dir
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking variant directory %s: %w", dir, err)
		}
	}

	entries := make([]Entry, 0, len(sources))
	for name, source := range sources {
		entries = append(entries, Entry{Name: name, Source: source})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}
