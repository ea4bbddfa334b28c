package service

import (
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// File Storage
// ============================================================

// FileStorage хранит файлы чертежа в <root>/<id>/.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) DrawingDir(id string) string {
	return filepath.Join(s.root, id)
}

func (s *FileStorage) RequestPath(id string) string {
	return filepath.Join(s.DrawingDir(id), "request.json")
}

func (s *FileStorage) ImagePath(id, format string) string {
	return filepath.Join(s.DrawingDir(id), "drawing."+format)
}

func (s *FileStorage) EnsureDir(id string) error {
	path := s.DrawingDir(id)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir drawing dir: %w", err)
	}
	return nil
}

func (s *FileStorage) SaveFile(id, target string, data []byte) error {
	if err := s.EnsureDir(id); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

// Remove удаляет все файлы чертежа. Отсутствующий каталог не ошибка.
func (s *FileStorage) Remove(id string) error {
	if id == "" || filepath.Base(id) != id {
		return fmt.Errorf("invalid drawing id %q", id)
	}
	if err := os.RemoveAll(s.DrawingDir(id)); err != nil {
		return fmt.Errorf("remove drawing dir: %w", err)
	}
	return nil
}
