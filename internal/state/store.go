package state

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// Load reads the persisted id list. Any read or parse failure is treated as
// a first run: empty set, logged, never fatal.
func Load(path string) *SeenSet {
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[state] read %s: %v (starting empty)", path, err)
		}
		return NewSeenSet()
	}

	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		log.Printf("[state] corrupt %s: %v (starting empty)", path, err)
		return NewSeenSet()
	}
	return NewSeenSet(ids...)
}

// Save persists the retained ids as a pretty-printed UTF-8 JSON array,
// overwriting the previous state in full. The write goes through a temp file
// and rename so a killed process never leaves a half-written state.
func Save(path string, s *SeenSet) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.IDs()); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
