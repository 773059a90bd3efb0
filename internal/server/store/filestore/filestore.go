// Package filestore is the file-backed Store backend. Every record lives in
// its own file, <dir>/<collection>/<id>.json, so the data directory can be
// inspected and fixed with ordinary tools. Updates go through a temp file
// and rename to avoid leaving half-written records behind.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/upcheck/internal/filex"
	"github.com/dmitrijs2005/upcheck/internal/server/store"
)

var ErrInvalidKey = errors.New("invalid collection or id")

type FileStore struct {
	dir string
}

// New prepares the backend rooted at dir, creating it if needed.
func New(dir string) (*FileStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	if err := filex.EnsureDir(abs); err != nil {
		return nil, err
	}
	return &FileStore{dir: abs}, nil
}

func (s *FileStore) path(collection, id string) (string, error) {
	if !validKey(collection) || !validKey(id) {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.dir, collection, id+".json"), nil
}

// validKey rejects anything that could escape the data directory.
func validKey(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\")
}

func (s *FileStore) Create(ctx context.Context, collection, id string, doc any) error {
	path, err := s.path(collection, id)
	if err != nil {
		return err
	}
	if err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o660)
	if err != nil {
		if os.IsExist(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := f.Write(raw); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func (s *FileStore) Read(ctx context.Context, collection, id string, out any) error {
	path, err := s.path(collection, id)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store.ErrNotFound
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) Update(ctx context.Context, collection, id string, doc any) error {
	path, err := s.path(collection, id)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return store.ErrNotFound
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o660); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, collection, id string) error {
	path, err := s.path(collection, id)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return store.ErrNotFound
		}
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
