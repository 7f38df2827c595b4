package home

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFile is the raw nanobot config.json payload.
type ConfigFile struct {
	Path    string
	Content string
	Exists  bool
}

// ReadConfigFile returns the nanobot config file as raw text. A missing
// file resolves to empty content with Exists false.
func (h *Home) ReadConfigFile() (ConfigFile, error) {
	path := h.ConfigPath()
	cf := ConfigFile{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cf, nil
		}
		return ConfigFile{}, fmt.Errorf("reading config: %w", err)
	}
	cf.Content = string(data)
	cf.Exists = true
	return cf, nil
}

// SaveConfigFile writes the nanobot config file. The payload must parse
// as a JSON object; it is written verbatim, preserving the caller's
// formatting.
func (h *Home) SaveConfigFile(content string) error {
	var parsed interface{}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if _, ok := parsed.(map[string]interface{}); !ok {
		return fmt.Errorf("config must be a JSON object")
	}

	path := h.ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ConfigExists reports whether the nanobot config file is present.
func (h *Home) ConfigExists() bool {
	_, err := os.Stat(h.ConfigPath())
	return err == nil
}
