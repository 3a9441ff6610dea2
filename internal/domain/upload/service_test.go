package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tigermarine/internal/domain/media"
)

func newTestService(t *testing.T, opts ...Option) (*Service, string) {
	t.Helper()
	root := t.TempDir()
	resolver, err := media.NewResolver(root)
	require.NoError(t, err)
	svc := NewService(resolver, media.NewPathBuilder(media.DefaultFolderAliases()), NewLocalStorage(), nil, opts...)
	return svc, resolver.Root()
}

func memFile(name, contentType string, data []byte) FileInput {
	return FileInput{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestUploadSingle_StoresUnderModelFolder(t *testing.T) {
	svc, root := newTestService(t)
	data := bytes.Repeat([]byte{0xAB}, 10*1024*1024)

	stored, err := svc.UploadSingle(context.Background(), "images",
		media.RawContext{ModelName: " TL950 "}, memFile("photo.jpg", "image/jpeg", data))
	require.NoError(t, err)

	assert.Equal(t, "photo.jpg", stored.Filename)
	assert.Equal(t, int64(len(data)), stored.Size)
	assert.Equal(t, "images/TL950/photo.jpg", stored.Path)
	assert.Equal(t, "/images/TL950/photo.jpg", stored.URL)
	assert.Equal(t, filepath.Join(root, "images", "TL950", "photo.jpg"), stored.AbsPath())

	info, err := os.Stat(filepath.Join(root, "images", "TL950", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), info.Size())
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	}
	assert.Equal(t, []string{"photo.jpg"}, dirEntries(t, filepath.Join(root, "images", "TL950")))
}

func TestUploadSingle_InteriorAndCustomizer(t *testing.T) {
	svc, root := newTestService(t)
	ctx := context.Background()

	_, err := svc.UploadSingle(ctx, "images",
		media.RawContext{ModelName: "TL950", Subfolder: "Interior"}, memFile("seat.png", "image/png", []byte("png")))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "images", "TL950", "Interior", "seat.png"))

	stored, err := svc.UploadSingle(ctx, "customizer",
		media.RawContext{ModelName: "TL950", PartName: "Hull"}, memFile("red.webp", "image/webp", []byte("webp")))
	require.NoError(t, err)
	assert.Equal(t, "/Customizer-images/TL950/Hull/red.webp", stored.URL)
	assert.FileExists(t, filepath.Join(root, "Customizer-images", "TL950", "Hull", "red.webp"))
}

func TestUpload_MissingContextFailsBeforeIO(t *testing.T) {
	svc, root := newTestService(t)

	opened := 0
	f := memFile("red.png", "image/png", []byte("x"))
	open := f.Open
	f.Open = func() (io.ReadCloser, error) {
		opened++
		return open()
	}

	_, err := svc.UploadSingle(context.Background(), "customizer", media.RawContext{ModelName: "TL950"}, f)
	require.Error(t, err)

	var missing *media.MissingContextFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "partName", missing.Field)
	assert.Zero(t, opened)
	assert.Empty(t, dirEntries(t, root))
}

func TestUpload_UnknownFolder(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UploadSingle(context.Background(), "docs", media.RawContext{ModelName: "TL950"},
		memFile("a.jpg", "image/jpeg", []byte("x")))
	assert.True(t, errors.Is(err, media.ErrUnknownFolderKind))
}

func TestUpload_RejectsDisallowedExtension(t *testing.T) {
	svc, root := newTestService(t)

	for _, ct := range []string{"image/jpeg", "application/x-msdownload", ""} {
		_, err := svc.UploadSingle(context.Background(), "images", media.RawContext{ModelName: "TL950"},
			memFile("malware.exe", ct, []byte("MZ")))
		assert.True(t, errors.Is(err, ErrUnsupportedMediaType), "content type %q", ct)
	}
	assert.Empty(t, dirEntries(t, filepath.Join(root, "images", "TL950")))
}

func TestUpload_RejectsDisallowedContentType(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UploadSingle(context.Background(), "images", media.RawContext{ModelName: "TL950"},
		memFile("photo.jpg", "text/html", []byte("<html>")))
	assert.True(t, errors.Is(err, ErrUnsupportedMediaType))
}

func TestUpload_AcceptsContainerVideoTypes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.UploadSingle(ctx, "images", media.RawContext{ModelName: "TL950"},
		memFile("tour.mov", "video/quicktime", []byte("moov")))
	require.NoError(t, err)

	_, err = svc.UploadSingle(ctx, "images", media.RawContext{ModelName: "TL950"},
		memFile("tour.avi", "video/x-msvideo", []byte("RIFF")))
	require.NoError(t, err)
}

func TestUpload_SniffsMissingContentType(t *testing.T) {
	svc, _ := newTestService(t)
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

	stored, err := svc.UploadSingle(context.Background(), "images", media.RawContext{ModelName: "TL950"},
		memFile("logo.png", "application/octet-stream", png))
	require.NoError(t, err)
	assert.Equal(t, "image/png", stored.ContentType)

	_, err = svc.UploadSingle(context.Background(), "images", media.RawContext{ModelName: "TL950"},
		memFile("fake.jpg", "", []byte("just some text")))
	assert.True(t, errors.Is(err, ErrUnsupportedMediaType))
}

func TestUpload_DeclaredSizeTooLarge(t *testing.T) {
	svc, root := newTestService(t)

	f := memFile("big.mp4", "video/mp4", []byte("x"))
	f.Size = 60 * 1024 * 1024

	_, err := svc.UploadSingle(context.Background(), "images", media.RawContext{ModelName: "TL950"}, f)
	assert.True(t, errors.Is(err, ErrPayloadTooLarge))
	assert.Empty(t, dirEntries(t, root))
}

func TestUpload_ActualSizeTooLarge(t *testing.T) {
	svc, root := newTestService(t, WithMaxFileSize(1024))

	f := memFile("big.jpg", "image/jpeg", bytes.Repeat([]byte{1}, 2048))
	f.Size = 10 // client lied

	_, err := svc.UploadSingle(context.Background(), "images", media.RawContext{ModelName: "TL950"}, f)
	assert.True(t, errors.Is(err, ErrPayloadTooLarge))
	assert.Empty(t, dirEntries(t, filepath.Join(root, "images", "TL950")))
}

func TestUpload_BatchIsAllOrNothing(t *testing.T) {
	svc, root := newTestService(t)

	files := []FileInput{
		memFile("a.jpg", "image/jpeg", []byte("a")),
		memFile("b.exe", "image/jpeg", []byte("b")),
		memFile("c.png", "image/png", []byte("c")),
	}

	_, err := svc.Upload(context.Background(), "images", media.RawContext{ModelName: "TL950"}, files)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedMediaType))

	var batch *BatchError
	require.True(t, errors.As(err, &batch))
	require.Len(t, batch.Results, 3)
	assert.NoError(t, batch.Results[0].Err)
	assert.Error(t, batch.Results[1].Err)
	assert.Equal(t, "b.exe", batch.Results[1].Filename)
	assert.NoError(t, batch.Results[2].Err)

	assert.Empty(t, dirEntries(t, filepath.Join(root, "images", "TL950")))
}

func TestUpload_BatchWriteFailureLeavesNothing(t *testing.T) {
	svc, root := newTestService(t)

	broken := memFile("b.jpg", "image/jpeg", []byte("b"))
	broken.Open = func() (io.ReadCloser, error) { return nil, errors.New("disk gone") }

	_, err := svc.Upload(context.Background(), "images", media.RawContext{ModelName: "TL950"},
		[]FileInput{memFile("a.jpg", "image/jpeg", []byte("a")), broken})
	require.Error(t, err)

	var batch *BatchError
	require.True(t, errors.As(err, &batch))
	assert.Empty(t, dirEntries(t, filepath.Join(root, "images", "TL950")))
}

func TestUpload_BatchCommitFailureRestoresEarlierFiles(t *testing.T) {
	svc, root := newTestService(t)
	dir := filepath.Join(root, "images", "TL950")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b.jpg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jpg", "keep.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("old"), 0o644))

	_, err := svc.Upload(context.Background(), "images", media.RawContext{ModelName: "TL950"},
		[]FileInput{
			memFile("a.jpg", "image/jpeg", []byte("new")),
			memFile("b.jpg", "image/jpeg", []byte("b")),
		})
	require.Error(t, err)

	var batch *BatchError
	require.True(t, errors.As(err, &batch))
	require.Len(t, batch.Results, 2)
	assert.NoError(t, batch.Results[0].Err)
	assert.Error(t, batch.Results[1].Err)
	assert.True(t, errors.Is(err, ErrValidation))

	data, err := os.ReadFile(filepath.Join(dir, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	names := dirEntries(t, dir)
	sort.Strings(names)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, names)
}

func TestUpload_BatchRollbackRemovesNewFiles(t *testing.T) {
	svc, root := newTestService(t)
	dir := filepath.Join(root, "images", "TL950")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "c.jpg", "sub"), 0o755))

	_, err := svc.Upload(context.Background(), "images", media.RawContext{ModelName: "TL950"},
		[]FileInput{
			memFile("a.jpg", "image/jpeg", []byte("a")),
			memFile("b.png", "image/png", []byte("b")),
			memFile("c.jpg", "image/jpeg", []byte("c")),
		})
	var batch *BatchError
	require.True(t, errors.As(err, &batch))
	assert.Error(t, batch.Results[2].Err)
	assert.Equal(t, []string{"c.jpg"}, dirEntries(t, dir))
}

func TestUpload_BatchSuccess(t *testing.T) {
	svc, root := newTestService(t)

	stored, err := svc.Upload(context.Background(), "categories", media.RawContext{CategoryName: "Open"},
		[]FileInput{
			memFile("a.jpg", "image/jpeg", []byte("aa")),
			memFile("b.gif", "image/gif", []byte("bbb")),
		})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, int64(2), stored[0].Size)
	assert.Equal(t, int64(3), stored[1].Size)
	assert.Equal(t, "/images/categories/Open/b.gif", stored[1].URL)

	names := dirEntries(t, filepath.Join(root, "images", "categories", "Open"))
	sort.Strings(names)
	assert.Equal(t, []string{"a.jpg", "b.gif"}, names)
}

func TestUpload_TooManyAndNoFiles(t *testing.T) {
	svc, _ := newTestService(t, WithMaxFiles(1))
	raw := media.RawContext{ModelName: "TL950"}

	_, err := svc.Upload(context.Background(), "images", raw, nil)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.Upload(context.Background(), "images", raw, []FileInput{
		memFile("a.jpg", "image/jpeg", []byte("a")),
		memFile("b.jpg", "image/jpeg", []byte("b")),
	})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestUpload_SameNameLastWriterWins(t *testing.T) {
	svc, root := newTestService(t)
	raw := media.RawContext{ModelName: "TL950"}

	_, err := svc.UploadSingle(context.Background(), "images", raw, memFile("a.jpg", "image/jpeg", []byte("first")))
	require.NoError(t, err)
	_, err = svc.UploadSingle(context.Background(), "images", raw, memFile("a.jpg", "image/jpeg", []byte("second")))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(root, "images", "TL950", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
	assert.Equal(t, []string{"a.jpg"}, dirEntries(t, filepath.Join(root, "images", "TL950")))
}

func TestList(t *testing.T) {
	svc, root := newTestService(t)

	files, err := svc.List(context.Background(), "images", media.RawContext{ModelName: "Nope"})
	require.NoError(t, err)
	assert.Empty(t, files)

	dir := filepath.Join(root, "Customizer-images", "TL950", "Hull")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.jpg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "red.png"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	files, err = svc.List(context.Background(), "customizer", media.RawContext{ModelName: "TL950", PartName: "Hull"})
	require.NoError(t, err)
	assert.Equal(t, []ListedFile{{Filename: "red.png", Path: "/Customizer-images/TL950/Hull/red.png"}}, files)

	_, err = svc.List(context.Background(), "customizer", media.RawContext{ModelName: "TL950"})
	assert.True(t, errors.Is(err, media.ErrMissingContextField))
}

func TestMediaNames(t *testing.T) {
	svc, root := newTestService(t)
	dir := filepath.Join(root, "images", "TopLine950")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, n := range []string{"c.jpg", "a.png", "tour.mp4", "b.webp", "promo.webm", "readme.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}

	images, videos, err := svc.MediaNames(media.ImagesTarget{ModelName: "TopLine950"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.webp", "c.jpg"}, images)
	assert.Equal(t, []string{"promo.webm", "tour.mp4"}, videos)
}

func TestDelete(t *testing.T) {
	svc, root := newTestService(t)
	ctx := context.Background()

	_, err := svc.UploadSingle(ctx, "images", media.RawContext{ModelName: "TL950"}, memFile("a.jpg", "image/jpeg", []byte("a")))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "/images/TL950/a.jpg"))
	assert.NoFileExists(t, filepath.Join(root, "images", "TL950", "a.jpg"))

	err = svc.Delete(ctx, "images/TL950/a.jpg")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDelete_RefusesTraversal(t *testing.T) {
	svc, root := newTestService(t)

	outside := filepath.Join(filepath.Dir(root), "keep-me.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
	t.Cleanup(func() { _ = os.Remove(outside) })

	err := svc.Delete(context.Background(), "../keep-me.txt")
	assert.True(t, errors.Is(err, ErrPathTraversal))

	err = svc.Delete(context.Background(), "/images/../../keep-me.txt")
	assert.True(t, errors.Is(err, ErrPathTraversal))

	assert.FileExists(t, outside)
}
