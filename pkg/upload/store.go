package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyFilename       = errors.New("file name is empty after sanitizing")
	ErrExtensionNotAllowed = errors.New("file extension is not allowed")
	ErrTooLarge            = errors.New("file is too large")
)

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
	".svg":  {},
}

// Store - каталог с аватарами пользователей
type Store struct {
	dir      string
	maxBytes int64
}

func NewStore(dir string, maxBytes int64) *Store {
	return &Store{
		dir:      dir,
		maxBytes: maxBytes,
	}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// EnsureDefault создает каталог и кладет в него аватар по умолчанию, если его нет
func (s *Store) EnsureDefault(name string, content []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return s.write(path, content)
}

// StoredName - имя, под которым файл владельца будет сохранен: <id владельца>_<filename>
func StoredName(ownerID int, filename string) (string, error) {
	clean := SecureFilename(filename)
	if clean == "" {
		return "", ErrEmptyFilename
	}

	ext := strings.ToLower(filepath.Ext(clean))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrExtensionNotAllowed, ext)
	}

	return fmt.Sprintf("%d_%s", ownerID, clean), nil
}

// Save сохраняет файл владельца, возвращает имя сохраненного файла
func (s *Store) Save(ownerID int, filename string, content []byte) (string, error) {
	if s.maxBytes > 0 && int64(len(content)) > s.maxBytes {
		return "", ErrTooLarge
	}

	name, err := StoredName(ownerID, filename)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	if err := s.write(filepath.Join(s.dir, name), content); err != nil {
		return "", err
	}

	return name, nil
}

// Remove удаляет файл. Отсутствие файла ошибкой не считается
func (s *Store) Remove(name string) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid file name %q", name)
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// write пишет во временный файл и переименовывает, чтобы не оставить обрезанный файл
func (s *Store) write(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename file: %w", err)
	}
	return nil
}
