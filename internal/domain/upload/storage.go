package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage performs the filesystem side of uploads. Paths it receives
// are already confined to the media root by media.Resolver.
type LocalStorage struct {
	dirPerm  os.FileMode
	filePerm os.FileMode
}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{dirPerm: 0o755, filePerm: 0o644}
}

// EnsureDir creates dir and any missing parents. Safe to call concurrently
// and when dir already exists.
func (s *LocalStorage) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, s.dirPerm); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

// Stage copies at most limit bytes of r into a hidden temp file inside dir.
// It returns the temp path and bytes written; ErrLimitExceeded means the
// source had more than limit bytes and nothing was kept.
func (s *LocalStorage) Stage(dir string, r io.Reader, limit int64) (string, int64, error) {
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	tmpPath := tmp.Name()

	n, err := io.Copy(tmp, io.LimitReader(r, limit+1))
	if err == nil {
		// CreateTemp uses 0600; published files must be readable by the static server.
		err = tmp.Chmod(s.filePerm)
	}
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}
	if n > limit {
		_ = os.Remove(tmpPath)
		return "", 0, errLimitExceeded
	}
	return tmpPath, n, nil
}

// Commit moves a staged file to its final name. An existing file at dst is
// first moved aside and its temp path returned as backup ("" when dst was
// free), so the caller can Rollback or Discard it. A directory at dst is
// refused and nothing changes.
func (s *LocalStorage) Commit(tmpPath, dst string) (backup string, err error) {
	info, err := os.Lstat(dst)
	switch {
	case err == nil && !info.Mode().IsRegular():
		return "", fmt.Errorf("%w: %s exists and is not a regular file", ErrValidation, filepath.Base(dst))
	case err == nil:
		if backup, err = s.moveAside(dst); err != nil {
			return "", err
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("failed to stat file: %w", err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		if backup != "" {
			_ = os.Rename(backup, dst)
		}
		return "", fmt.Errorf("failed to store file: %w", err)
	}
	return backup, nil
}

func (s *LocalStorage) moveAside(dst string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(dst), ".replaced-*")
	if err != nil {
		return "", fmt.Errorf("failed to reserve backup: %w", err)
	}
	backup := f.Name()
	_ = f.Close()
	if err := os.Rename(dst, backup); err != nil {
		_ = os.Remove(backup)
		return "", fmt.Errorf("failed to move existing file aside: %w", err)
	}
	return backup, nil
}

// Rollback undoes a Commit: dst is removed and backup, if any, put back.
func (s *LocalStorage) Rollback(dst, backup string) error {
	if backup == "" {
		if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove file: %w", err)
		}
		return nil
	}
	if err := os.Rename(backup, dst); err != nil {
		return fmt.Errorf("failed to restore file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Discard(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}

// ListFiles returns the names of regular files in dir in directory order.
// A missing directory is an empty listing.
func (s *LocalStorage) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *LocalStorage) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Remove deletes a single regular file.
func (s *LocalStorage) Remove(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrValidation, filepath.Base(path))
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
