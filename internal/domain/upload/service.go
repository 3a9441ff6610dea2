package upload

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tigermarine/internal/domain/media"
)

// StoredFile describes one file written under the media root.
type StoredFile struct {
	Filename    string `json:"filename"`
	Path        string `json:"path"` // relative to the media root
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`

	absPath string
}

// AbsPath is the location of the file on disk.
func (f *StoredFile) AbsPath() string { return f.absPath }

// FileResult is the per-file outcome of a multi-file upload.
type FileResult struct {
	Filename string
	Stored   *StoredFile
	Err      error
}

// ListedFile is one entry of a directory listing.
type ListedFile struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// Service stores uploaded media under the folder taxonomy of media.Resolver.
//
// Multi-file uploads are all-or-nothing: every file is checked first, then
// all are staged to temp files concurrently and only renamed into place
// once every write succeeded. Replaced files are kept aside until the whole
// batch is committed and restored if any rename fails.
type Service struct {
	resolver    *media.Resolver
	paths       *media.PathBuilder
	storage     *LocalStorage
	maxFileSize int64
	maxFiles    int
	log         *zap.Logger
}

type Option func(*Service)

func WithMaxFileSize(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxFileSize = n
		}
	}
}

func WithMaxFiles(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxFiles = n
		}
	}
}

func NewService(resolver *media.Resolver, paths *media.PathBuilder, storage *LocalStorage, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		resolver:    resolver,
		paths:       paths,
		storage:     storage,
		maxFileSize: MaxFileSize,
		maxFiles:    MaxFilesPerCall,
		log:         log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) MaxFileSize() int64 { return s.maxFileSize }

// UploadSingle stores one file. See Upload.
func (s *Service) UploadSingle(ctx context.Context, folder string, raw media.RawContext, f FileInput) (*StoredFile, error) {
	stored, err := s.Upload(ctx, folder, raw, []FileInput{f})
	if err != nil {
		var batch *BatchError
		if errors.As(err, &batch) {
			return nil, batch.first
		}
		return nil, err
	}
	return stored[0], nil
}

// Upload validates the destination context, checks every file and writes
// them under the resolved directory keeping their original names. A
// *BatchError is returned when any file fails the checks or its write.
func (s *Service) Upload(ctx context.Context, folder string, raw media.RawContext, files []FileInput) ([]*StoredFile, error) {
	target, err := media.ParseTarget(folder, raw)
	if err != nil {
		return nil, err
	}
	dir, err := s.resolver.Dir(target)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > s.maxFiles {
		return nil, fmt.Errorf("%w: got %d, limit is %d", ErrTooManyFiles, len(files), s.maxFiles)
	}

	results := make([]FileResult, len(files))
	stored := make([]*StoredFile, len(files))
	var firstErr error
	for i, f := range files {
		name, ct, err := s.check(f)
		results[i] = FileResult{Filename: name, Err: err}
		if err != nil {
			if name == "" {
				results[i].Filename = f.Filename
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		stored[i] = &StoredFile{Filename: name, ContentType: ct}
	}
	if firstErr != nil {
		s.log.Warn("upload rejected",
			zap.String("folder", string(target.Kind())),
			zap.Int("files", len(files)),
			zap.Error(firstErr))
		return nil, &BatchError{Results: results, first: firstErr}
	}

	if err := s.storage.EnsureDir(dir); err != nil {
		return nil, err
	}

	staged := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			tmp, n, err := s.stageOne(dir, files[i])
			if err != nil {
				results[i].Err = err
				return err
			}
			staged[i] = tmp
			stored[i].Size = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.storage.Discard(staged...)
		s.log.Error("upload write failed", zap.String("dir", dir), zap.Error(err))
		return nil, &BatchError{Results: results, first: err}
	}

	backups := make([]string, 0, len(stored))
	for i, sf := range stored {
		sf.absPath = filepath.Join(dir, sf.Filename)
		backup, err := s.storage.Commit(staged[i], sf.absPath)
		if err != nil {
			results[i].Err = err
			s.storage.Discard(staged[i:]...)
			s.rollback(stored[:i], backups)
			s.log.Error("upload commit failed", zap.String("dir", dir), zap.Error(err))
			return nil, &BatchError{Results: results, first: err}
		}
		staged[i] = ""
		backups = append(backups, backup)
	}
	s.storage.Discard(backups...)

	for i, sf := range stored {
		sf.Path, _ = s.resolver.Rel(sf.absPath)
		sf.URL, _ = s.paths.ForTarget(target, sf.Filename)
		results[i].Stored = sf
	}

	s.log.Info("files uploaded",
		zap.String("folder", string(target.Kind())),
		zap.String("dir", dir),
		zap.Int("count", len(stored)))
	return stored, nil
}

// rollback reverts already committed files in reverse order so a name
// repeated in the batch ends up with its pre-upload content.
func (s *Service) rollback(committed []*StoredFile, backups []string) {
	for i := len(committed) - 1; i >= 0; i-- {
		if err := s.storage.Rollback(committed[i].absPath, backups[i]); err != nil {
			s.log.Error("upload rollback failed", zap.String("path", committed[i].absPath), zap.Error(err))
		}
	}
}

func (s *Service) stageOne(dir string, f FileInput) (string, int64, error) {
	rc, err := f.Open()
	if err != nil {
		return "", 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer rc.Close()

	tmp, n, err := s.storage.Stage(dir, rc, s.maxFileSize)
	if errors.Is(err, errLimitExceeded) {
		return "", 0, fmt.Errorf("%w: %s exceeds %d bytes", ErrPayloadTooLarge, f.Filename, s.maxFileSize)
	}
	return tmp, n, err
}

// List returns the media files in the directory of the given context.
// A directory that does not exist yields an empty list.
func (s *Service) List(ctx context.Context, folder string, raw media.RawContext) ([]ListedFile, error) {
	target, err := media.ParseTarget(folder, raw)
	if err != nil {
		return nil, err
	}
	dir, err := s.resolver.Dir(target)
	if err != nil {
		return nil, err
	}

	names, err := s.storage.ListFiles(dir)
	if err != nil {
		return nil, err
	}

	files := make([]ListedFile, 0, len(names))
	for _, name := range names {
		if !media.IsMedia(name) {
			continue
		}
		p, ok := s.paths.ForTarget(target, name)
		if !ok {
			continue
		}
		files = append(files, ListedFile{Filename: name, Path: p})
	}
	return files, nil
}

// MediaNames returns the sorted media filenames stored for t, split into
// images and videos. Used when (re)populating catalog records from disk.
func (s *Service) MediaNames(t media.Target) (images, videos []string, err error) {
	dir, err := s.resolver.Dir(t)
	if err != nil {
		return nil, nil, err
	}
	names, err := s.storage.ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(names)
	for _, name := range names {
		switch {
		case media.IsImage(name):
			images = append(images, name)
		case media.IsVideo(name) || media.Ext(name) == ".webm":
			videos = append(videos, name)
		}
	}
	return images, videos, nil
}

// Delete removes the file at relPath (relative to the media root; a leading
// "/" as in public URLs is accepted). Paths leaving the root are refused
// before the filesystem is consulted.
func (s *Service) Delete(ctx context.Context, relPath string) error {
	abs, err := s.resolver.File(relPath)
	if err != nil {
		return err
	}
	if err := s.storage.Remove(abs); err != nil {
		return err
	}
	s.log.Info("file deleted", zap.String("path", relPath))
	return nil
}
