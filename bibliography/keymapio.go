package bibliography

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"
)

// LoadKeymapFile reads a flat original->replacement key mapping from a JSON
// file, or a YAML file when the extension is .yaml or .yml.
func LoadKeymapFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m := make(map[string]string)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing keymap %s: %w", path, err)
	}
	return m, nil
}

// SaveKeymapFile writes the keymap's left-to-right mapping as tab-indented
// JSON with sorted keys, or as YAML when the extension is .yaml or .yml.
func SaveKeymapFile(path string, keymap *KeyMap) error {
	m := keymap.LTR().Items()

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(m)
	default:
		data, err = json.MarshalIndent(m, "", "\t")
	}
	if err != nil {
		return err
	}
	if !strings.HasSuffix(string(data), "\n") {
		data = append(data, '\n')
	}
	return os.WriteFile(path, data, 0o644)
}
