package badger

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// VariableFile is one entry of a variables file:
//
//	[google_places_api_key]
//	value = "..."
//	description = "optional"
type VariableFile struct {
	Value       string `toml:"value"`
	Description string `toml:"description"`
}

// LoadVariablesFromFiles seeds the key/value store from dirPath/variables.toml
// and any *.toml files under dirPath/variables/. Unreadable files are logged and skipped.
func (m *Manager) LoadVariablesFromFiles(ctx context.Context, dirPath string) error {
	files := []string{}

	variablesFile := filepath.Join(dirPath, "variables.toml")
	if _, err := os.Stat(variablesFile); err == nil {
		files = append(files, variablesFile)
	}

	variablesDir := filepath.Join(dirPath, "variables")
	if entries, err := os.ReadDir(variablesDir); err == nil {
		names := []string{}
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".toml") {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			files = append(files, filepath.Join(variablesDir, name))
		}
	}

	loaded, skipped, failed := 0, 0, 0
	for _, file := range files {
		l, s, f := m.loadVariablesFromFile(ctx, file)
		loaded += l
		skipped += s
		failed += f
	}

	m.logger.Debug().
		Str("dir", dirPath).
		Int("files", len(files)).
		Int("loaded", loaded).
		Int("skipped", skipped).
		Int("errors", failed).
		Msg("Variables loaded")

	return nil
}

// loadVariablesFromFile stores every non-empty variable of one file
func (m *Manager) loadVariablesFromFile(ctx context.Context, filePath string) (loaded, skipped, failed int) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		m.logger.Warn().Err(err).Str("file", filePath).Msg("Failed to read variable file")
		return 0, 0, 1
	}

	var variables map[string]VariableFile
	if err := toml.Unmarshal(content, &variables); err != nil {
		m.logger.Warn().Err(err).Str("file", filePath).Msg("Failed to parse variable file")
		return 0, 0, 1
	}

	fileName := filepath.Base(filePath)
	for key, variable := range variables {
		if variable.Value == "" {
			m.logger.Warn().Str("file", fileName).Str("key", key).Msg("Skipping variable with empty value")
			skipped++
			continue
		}

		description := variable.Description
		if description == "" {
			description = "Loaded from " + fileName
		}

		if _, err := m.kv.Upsert(ctx, key, variable.Value, description); err != nil {
			m.logger.Error().Err(err).Str("key", key).Msg("Failed to store variable")
			failed++
			continue
		}
		loaded++
	}

	return loaded, skipped, failed
}
