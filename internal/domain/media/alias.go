package media

import (
	"encoding/json"
	"fmt"
	"os"
)

var defaultFolderAliases = map[string]string{
	"ML38":         "MaxLine 38",
	"TL950":        "TopLine950",
	"TL850":        "TopLine850",
	"TL750":        "TopLine750",
	"TL650":        "TopLine650",
	"PL620":        "ProLine620",
	"PL550":        "ProLine550",
	"SL520":        "SportLine520",
	"SL480":        "SportLine480",
	"OP850":        "Open850",
	"OP750":        "Open750",
	"OP650":        "Open650",
	"Infinity 280": "Infinity 280",
	"Striker 330":  "Striker 330",
}

// FolderAliases maps short model codes to the display folder the model's
// images live in. The table is copied on construction and never mutated.
type FolderAliases struct {
	m map[string]string
}

func NewFolderAliases(m map[string]string) FolderAliases {
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return FolderAliases{m: cp}
}

func DefaultFolderAliases() FolderAliases {
	return NewFolderAliases(defaultFolderAliases)
}

// LoadFolderAliases reads a JSON object of code -> folder overrides and
// layers it over the default table. An empty path yields the defaults.
func LoadFolderAliases(path string) (FolderAliases, error) {
	if path == "" {
		return DefaultFolderAliases(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return FolderAliases{}, fmt.Errorf("read folder aliases: %w", err)
	}

	var overrides map[string]string
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return FolderAliases{}, fmt.Errorf("parse folder aliases %s: %w", path, err)
	}

	merged := make(map[string]string, len(defaultFolderAliases)+len(overrides))
	for k, v := range defaultFolderAliases {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return FolderAliases{m: merged}, nil
}

// Folder returns the display folder for code, or code itself on a miss.
func (a FolderAliases) Folder(code string) string {
	if folder, ok := a.m[code]; ok && folder != "" {
		return folder
	}
	return code
}

func (a FolderAliases) Len() int { return len(a.m) }
