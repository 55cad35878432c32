package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// JSONStore keeps JSON documents under a root directory, addressed by relative path.
type JSONStore struct {
	Root string // e.g. ".cache/sleeper"
}

func NewJSONStore(root string) *JSONStore {
	return &JSONStore{Root: root}
}

// Path resolves rel under Root. It fails when rel would escape Root.
func (s *JSONStore) Path(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("store: path %q escapes root", rel)
	}
	return filepath.Join(s.Root, clean), nil
}

func (s *JSONStore) Exists(rel string) bool {
	path, err := s.Path(rel)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// WriteRaw writes body through a temp file and rename so readers never see half a document.
func (s *JSONStore) WriteRaw(rel string, body []byte, pretty bool) error {
	path, err := s.Path(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	if pretty {
		var v any
		if err := json.Unmarshal(body, &v); err == nil {
			buf := &bytes.Buffer{}
			enc := json.NewEncoder(buf)
			enc.SetIndent("", "  ")
			_ = enc.Encode(v)
			body = buf.Bytes()
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *JSONStore) ReadRaw(rel string) ([]byte, error) {
	path, err := s.Path(rel)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// WriteJSON encodes v as indented JSON at rel.
func (s *JSONStore) WriteJSON(rel string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return s.WriteRaw(rel, b, false)
}

// ReadJSON decodes the document at rel into v.
func (s *JSONStore) ReadJSON(rel string, v any) error {
	b, err := s.ReadRaw(rel)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("store: decode %s: %w", rel, err)
	}
	return nil
}
