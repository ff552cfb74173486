package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"

	appErrors "github.com/noah-isme/studyflow-api/pkg/errors"
)

type fileBackend interface {
	Save(filename string, data []byte) (string, error)
	Read(filename string) ([]byte, error)
}

// FileStore keeps one JSON document per key under a local directory.
type FileStore struct {
	files  fileBackend
	prefix string
}

// NewFileStore constructs a file-backed store writing under prefix.
func NewFileStore(files fileBackend, prefix string) *FileStore {
	if prefix == "" {
		prefix = "kv"
	}
	return &FileStore{files: files, prefix: prefix}
}

// Get reads the document stored for key.
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := s.files.Read(s.filename(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", appErrors.ErrStoreKeyMiss
		}
		return "", fmt.Errorf("file store get %s: %w", key, err)
	}
	return string(data), nil
}

// Set replaces the document stored for key.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.files.Save(s.filename(key), []byte(value)); err != nil {
		return fmt.Errorf("file store set %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) filename(key string) string {
	return path.Join(s.prefix, path.Base(key)+".json")
}
