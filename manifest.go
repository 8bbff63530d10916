package stormext

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest declares the extensions of a package.
//
//	version = "0.9"
//
//	[[extension]]
//	name = "stormpy.core"
//	source_dir = "."
type Manifest struct {
	Version    string          `toml:"version"`
	Extensions []manifestEntry `toml:"extension"`
}

type manifestEntry struct {
	Name      string `toml:"name"`
	SourceDir string `toml:"source_dir"`
}

// LoadManifest reads the manifest at path and returns its extensions in
// declaration order together with the package version.
//
// Relative source directories are resolved against the manifest's
// directory; an empty one means the manifest's directory itself. Unknown
// keys are rejected so that a misspelled source_dir is not silently
// replaced by the default.
func LoadManifest(path string) ([]Extension, string, error) {
	var raw Manifest
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, "", fmt.Errorf("load manifest: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return nil, "", fmt.Errorf("load manifest %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	baseDir := filepath.Dir(path)
	extensions := make([]Extension, 0, len(raw.Extensions))
	for i, entry := range raw.Extensions {
		sourceDir := strings.TrimSpace(entry.SourceDir)
		if !filepath.IsAbs(sourceDir) {
			sourceDir = filepath.Join(baseDir, sourceDir)
		}

		ext, err := NewExtension(entry.Name, sourceDir)
		if err != nil {
			return nil, "", fmt.Errorf("manifest extension #%d: %w", i+1, err)
		}
		extensions = append(extensions, ext)
	}

	if err := validateExtensions(extensions); err != nil {
		return nil, "", fmt.Errorf("load manifest %s: %w", path, err)
	}

	return extensions, strings.TrimSpace(raw.Version), nil
}

// SelectExtensions returns the extensions named in names, in declaration
// order. An empty names selects everything.
func SelectExtensions(extensions []Extension, names []string) ([]Extension, error) {
	if len(names) == 0 {
		return extensions, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = false
	}

	var selected []Extension
	for _, ext := range extensions {
		if _, ok := wanted[ext.Name]; ok {
			wanted[ext.Name] = true
			selected = append(selected, ext)
		}
	}

	var unknown []string
	for name, found := range wanted {
		if !found {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown extension(s): %s", strings.Join(unknown, ", "))
	}

	return selected, nil
}
