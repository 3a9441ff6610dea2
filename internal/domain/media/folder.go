package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

type FolderKind string

const (
	FolderCustomizer FolderKind = "customizer"
	FolderCategories FolderKind = "categories"
	FolderImages     FolderKind = "images"
)

// Directory names under the media root. They double as the public URL
// mount points of the static file server.
const (
	ImagesDir         = "images"
	CustomizerDir     = "Customizer-images"
	CategoriesDir     = "categories"
	InteriorSubfolder = "Interior"
)

// ParseFolderKind maps the form value to a FolderKind. Empty means images.
func ParseFolderKind(s string) (FolderKind, error) {
	switch FolderKind(s) {
	case "", FolderImages:
		return FolderImages, nil
	case FolderCustomizer:
		return FolderCustomizer, nil
	case FolderCategories:
		return FolderCategories, nil
	default:
		return "", &UnknownFolderKindError{Value: s}
	}
}

// RawContext is the loose set of naming fields a client sends with an upload
// or listing request. NewTarget turns it into a typed Target.
type RawContext struct {
	ModelName    string `form:"modelName"`
	PartName     string `form:"partName"`
	CategoryName string `form:"categoryName"`
	Subfolder    string `form:"subfolder"`
}

// Target is a resolved upload destination. Each variant carries exactly
// the fields its folder kind requires.
type Target interface {
	Kind() FolderKind
	// Segments returns the destination path below the media root.
	Segments() []string
}

type CustomizerTarget struct {
	ModelName string
	PartName  string
}

func (CustomizerTarget) Kind() FolderKind { return FolderCustomizer }

func (t CustomizerTarget) Segments() []string {
	return []string{CustomizerDir, t.ModelName, t.PartName}
}

type CategoryTarget struct {
	CategoryName string
}

func (CategoryTarget) Kind() FolderKind { return FolderCategories }

func (t CategoryTarget) Segments() []string {
	return []string{ImagesDir, CategoriesDir, t.CategoryName}
}

type ImagesTarget struct {
	ModelName string
	Interior  bool
}

func (ImagesTarget) Kind() FolderKind { return FolderImages }

func (t ImagesTarget) Segments() []string {
	if t.Interior {
		return []string{ImagesDir, t.ModelName, InteriorSubfolder}
	}
	return []string{ImagesDir, t.ModelName}
}

// NewTarget validates raw against the requirements of kind. It performs no I/O.
func NewTarget(kind FolderKind, raw RawContext) (Target, error) {
	switch kind {
	case FolderCustomizer:
		if isBlank(raw.ModelName) {
			return nil, &MissingContextFieldError{Field: "modelName"}
		}
		if isBlank(raw.PartName) {
			return nil, &MissingContextFieldError{Field: "partName"}
		}
		return CustomizerTarget{ModelName: raw.ModelName, PartName: raw.PartName}, nil
	case FolderCategories:
		if isBlank(raw.CategoryName) {
			return nil, &MissingContextFieldError{Field: "categoryName"}
		}
		return CategoryTarget{CategoryName: raw.CategoryName}, nil
	case FolderImages, "":
		model := strings.TrimSpace(raw.ModelName)
		if model == "" {
			return nil, &MissingContextFieldError{Field: "modelName"}
		}
		return ImagesTarget{ModelName: model, Interior: raw.Subfolder == InteriorSubfolder}, nil
	default:
		return nil, &UnknownFolderKindError{Value: string(kind)}
	}
}

// ParseTarget is ParseFolderKind followed by NewTarget.
func ParseTarget(folder string, raw RawContext) (Target, error) {
	kind, err := ParseFolderKind(folder)
	if err != nil {
		return nil, err
	}
	return NewTarget(kind, raw)
}

// Resolver turns targets and client-supplied relative paths into absolute
// paths confined to the media root.
type Resolver struct {
	root string
}

func NewResolver(root string) (*Resolver, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("media root must not be empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve media root: %w", err)
	}
	return &Resolver{root: abs}, nil
}

func (r *Resolver) Root() string { return r.root }

// Dir returns the absolute directory for t. Names that would climb out of
// the media root (e.g. a modelName of "../../etc") yield ErrPathTraversal.
func (r *Resolver) Dir(t Target) (string, error) {
	parts := append([]string{r.root}, t.Segments()...)
	dir := filepath.Join(parts...)
	if !r.contains(dir) {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, strings.Join(t.Segments(), "/"))
	}
	return dir, nil
}

// Resolve is the one-shot form of ParseTarget + Dir.
func (r *Resolver) Resolve(folder string, raw RawContext) (string, error) {
	t, err := ParseTarget(folder, raw)
	if err != nil {
		return "", err
	}
	return r.Dir(t)
}

// File maps a path relative to the media root (leading "/" allowed, as in
// public URLs) to an absolute file path. The root itself is not a file.
func (r *Resolver) File(rel string) (string, error) {
	if strings.TrimSpace(rel) == "" {
		return "", fmt.Errorf("%w: file path is required", ErrValidation)
	}
	p := filepath.Join(r.root, filepath.FromSlash(rel))
	if !r.contains(p) || p == r.root {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, rel)
	}
	return p, nil
}

// Rel returns p relative to the media root in slash form.
func (r *Resolver) Rel(p string) (string, error) {
	rel, err := filepath.Rel(r.root, p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func (r *Resolver) contains(p string) bool {
	rel, err := filepath.Rel(r.root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
