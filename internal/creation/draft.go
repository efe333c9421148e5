package creation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	draftKey      = "jobDraft"
	draftFileName = "drafts.json"
)

// DraftStore keeps the draft in a JSON file on the local machine. Drafts are
// never sent to the server.
type DraftStore struct {
	path string
}

func NewDraftStore(dir string) *DraftStore {
	return &DraftStore{path: filepath.Join(dir, draftFileName)}
}

func (s *DraftStore) Path() string {
	return s.path
}

// Save overwrites the stored draft with form.
func (s *DraftStore) Save(form Form) error {
	entries, err := s.read()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	entries[draftKey] = raw

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode drafts: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create draft dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace draft: %w", err)
	}
	return nil
}

// Load returns the stored draft; ok is false when none was saved.
func (s *DraftStore) Load() (form Form, ok bool, err error) {
	entries, err := s.read()
	if err != nil {
		return Form{}, false, err
	}
	raw, found := entries[draftKey]
	if !found {
		return Form{}, false, nil
	}
	if err := json.Unmarshal(raw, &form); err != nil {
		return Form{}, false, fmt.Errorf("decode draft: %w", err)
	}
	return form, true, nil
}

func (s *DraftStore) read() (map[string]json.RawMessage, error) {
	entries := map[string]json.RawMessage{}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read drafts: %w", err)
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode drafts: %w", err)
	}
	return entries, nil
}
