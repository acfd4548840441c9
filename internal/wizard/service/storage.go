package service

import (
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// Export Storage
// ============================================================

type ExportStorage struct {
	root string
}

func NewExportStorage(root string) *ExportStorage {
	return &ExportStorage{root: root}
}

func (s *ExportStorage) SessionDir(sessionID string) string {
	return filepath.Join(s.root, sessionID)
}

func (s *ExportStorage) ExportPath(sessionID, filename string) string {
	return filepath.Join(s.SessionDir(sessionID), filepath.Base(filename))
}

func (s *ExportStorage) EnsureDir(sessionID string) error {
	path := s.SessionDir(sessionID)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir export dir: %w", err)
	}
	return nil
}

// Save пишет файл экспорта и возвращает путь к нему.
func (s *ExportStorage) Save(sessionID, filename string, data []byte) (string, error) {
	if err := s.EnsureDir(sessionID); err != nil {
		return "", err
	}
	path := s.ExportPath(sessionID, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
