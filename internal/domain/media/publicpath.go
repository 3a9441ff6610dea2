package media

import "strings"

// PathBuilder composes the public URLs the static file server answers on.
// It never touches the filesystem.
type PathBuilder struct {
	aliases FolderAliases
}

func NewPathBuilder(aliases FolderAliases) *PathBuilder {
	return &PathBuilder{aliases: aliases}
}

func (b *PathBuilder) Aliases() FolderAliases { return b.aliases }

// ModelImage returns /images/<folder>/<filename> where folder is the alias
// of modelName. ok is false when raw has no usable filename.
func (b *PathBuilder) ModelImage(modelName, raw string) (string, bool) {
	name, ok := Canonicalize(raw)
	if !ok {
		return "", false
	}
	return join(ImagesDir, b.aliases.Folder(modelName), name), true
}

// ModelInterior is ModelImage for files kept in the model's Interior folder.
func (b *PathBuilder) ModelInterior(modelName, raw string) (string, bool) {
	name, ok := Canonicalize(raw)
	if !ok {
		return "", false
	}
	return join(ImagesDir, b.aliases.Folder(modelName), InteriorSubfolder, name), true
}

func (b *PathBuilder) Customizer(modelName, partName, raw string) (string, bool) {
	name, ok := Canonicalize(raw)
	if !ok {
		return "", false
	}
	return join(CustomizerDir, modelName, partName, name), true
}

func (b *PathBuilder) Category(categoryName, raw string) (string, bool) {
	name, ok := Canonicalize(raw)
	if !ok {
		return "", false
	}
	return join(ImagesDir, CategoriesDir, categoryName, name), true
}

// ForTarget builds the URL of a file stored in t's directory, using the
// directory names verbatim (no alias lookup).
func (b *PathBuilder) ForTarget(t Target, raw string) (string, bool) {
	name, ok := Canonicalize(raw)
	if !ok {
		return "", false
	}
	return join(append(t.Segments(), name)...), true
}

// ModelImagePtr adapts ModelImage to nullable columns: nil in, nil out.
func (b *PathBuilder) ModelImagePtr(modelName string, raw *string) *string {
	if raw == nil {
		return nil
	}
	if p, ok := b.ModelImage(modelName, *raw); ok {
		return &p
	}
	return nil
}

func (b *PathBuilder) CategoryPtr(categoryName string, raw *string) *string {
	if raw == nil {
		return nil
	}
	if p, ok := b.Category(categoryName, *raw); ok {
		return &p
	}
	return nil
}

func join(segments ...string) string {
	return "/" + strings.Join(segments, "/")
}
