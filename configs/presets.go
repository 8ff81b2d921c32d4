// Package configs embeds the built-in pattern tables.
package configs

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed *.yaml
var presets embed.FS

// Default is the preset used when no config or pattern is given.
const Default = "default"

// Names lists the embedded presets, sorted.
func Names() []string {
	entries, err := presets.ReadDir(".")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Load returns the raw YAML of a preset.
func Load(name string) ([]byte, error) {
	data, err := presets.ReadFile(name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return data, nil
}
