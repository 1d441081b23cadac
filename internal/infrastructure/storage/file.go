package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/spf13/afero"

	"github.com/jhoicas/freshfruits-billing/internal/domain/repository"
)

var _ repository.KeyValueStore = (*FileStore)(nil)

// validKey evita que una clave escape del directorio base.
var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileStore guarda cada clave como <dir>/<clave>.json. La escritura pasa por un archivo
// temporal + rename para no dejar JSON a medias.
type FileStore struct {
	mu  sync.Mutex
	fs  afero.Fs
	dir string
}

// NewFileStore usa el sistema de archivos real.
func NewFileStore(dir string) (*FileStore, error) {
	return NewFileStoreFs(afero.NewOsFs(), dir)
}

// NewFileStoreFs permite inyectar otro afero.Fs (MemMapFs en tests).
func NewFileStoreFs(fs afero.Fs, dir string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio %s: %w", dir, err)
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

func (s *FileStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("storage: clave inválida %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get devuelve el contenido del archivo o nil si no existe.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: leer %s: %w", key, err)
	}
	return data, nil
}

// Set reemplaza el contenido de la clave.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp := p + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("storage: escribir %s: %w", key, err)
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		return fmt.Errorf("storage: renombrar %s: %w", key, err)
	}
	return nil
}

// Delete elimina la clave; no falla si no existe.
func (s *FileStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: borrar %s: %w", key, err)
	}
	return nil
}
