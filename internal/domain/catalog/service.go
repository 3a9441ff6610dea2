package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"tigermarine/internal/domain/media"
)

// MediaLister reports the media files stored for an upload target.
type MediaLister interface {
	MediaNames(t media.Target) (images, videos []string, err error)
}

type Service struct {
	repo  *Repository
	paths *media.PathBuilder
	log   *zap.Logger
}

func NewService(repo *Repository, paths *media.PathBuilder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, paths: paths, log: log}
}

/* ---------- categories ---------- */

func (s *Service) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]CategoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, s.categoryResponse(&cats[i]))
	}
	return out, nil
}

func (s *Service) GetCategory(ctx context.Context, id uint) (*CategoryResponse, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.categoryResponse(c)
	return &resp, nil
}

func (s *Service) CreateCategory(ctx context.Context, req CategoryRequest) (*CategoryResponse, error) {
	name := trimmed(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	c := &Category{
		Name:        name,
		Description: deref(req.Description),
		ImageFile:   media.CanonicalPtr(req.ImageFile),
	}
	if req.Order != nil {
		c.Order = *req.Order
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info("category created", zap.Uint("id", c.ID), zap.String("name", c.Name))
	return s.GetCategory(ctx, c.ID)
}

func (s *Service) UpdateCategory(ctx context.Context, id uint, req CategoryRequest) (*CategoryResponse, error) {
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		fields["name"] = name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.ImageFile != nil {
		fields["image_file"] = media.CanonicalPtr(req.ImageFile)
	}
	if req.Order != nil {
		fields["sort_order"] = *req.Order
	}
	if err := s.repo.UpdateCategory(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.GetCategory(ctx, id)
}

func (s *Service) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.log.Info("category deleted", zap.Uint("id", id))
	return nil
}

/* ---------- models ---------- */

func (s *Service) ListModels(ctx context.Context) ([]ModelResponse, error) {
	models, err := s.repo.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	out := make([]ModelResponse, 0, len(models))
	for i := range models {
		out = append(out, s.modelResponse(&models[i]))
	}
	return out, nil
}

func (s *Service) GetModel(ctx context.Context, id uint) (*ModelResponse, error) {
	m, err := s.repo.GetModel(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.modelResponse(m)
	return &resp, nil
}

func (s *Service) CreateModel(ctx context.Context, req ModelRequest) (*ModelResponse, error) {
	if req.CategoryID == nil || *req.CategoryID == 0 {
		return nil, fmt.Errorf("%w: categoryId is required", ErrInvalidInput)
	}
	name := trimmed(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	catID := uint(*req.CategoryID)
	if err := s.requireCategory(ctx, catID); err != nil {
		return nil, err
	}

	m := &Model{
		CategoryID:          catID,
		Name:                name,
		Description:         deref(req.Description),
		ShortDescription:    deref(req.ShortDescription),
		ImageFile:           media.CanonicalPtr(req.ImageFile),
		HeroImageFile:       media.CanonicalPtr(req.HeroImageFile),
		ContentImageFile:    media.CanonicalPtr(req.ContentImageFile),
		Section2Title:       deref(req.Section2Title),
		Section2Description: deref(req.Section2Description),
	}
	ch := buildChildren(0, req)
	m.Specs = ch.Specs
	m.Features = ch.Features
	m.OptionalFeatures = ch.OptionalFeatures
	m.GalleryImages = ch.GalleryImages
	m.VideoFiles = ch.VideoFiles
	m.InteriorFiles = ch.InteriorFiles

	if err := s.repo.CreateModel(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info("model created", zap.Uint("id", m.ID), zap.String("name", m.Name))
	return s.GetModel(ctx, m.ID)
}

func (s *Service) UpdateModel(ctx context.Context, id uint, req ModelRequest) (*ModelResponse, error) {
	fields := map[string]any{}
	if req.CategoryID != nil {
		catID := uint(*req.CategoryID)
		if err := s.requireCategory(ctx, catID); err != nil {
			return nil, err
		}
		fields["category_id"] = catID
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		fields["name"] = name
	}
	setString(fields, "description", req.Description)
	setString(fields, "short_description", req.ShortDescription)
	setString(fields, "section2_title", req.Section2Title)
	setString(fields, "section2_description", req.Section2Description)
	setFile(fields, "image_file", req.ImageFile)
	setFile(fields, "hero_image_file", req.HeroImageFile)
	setFile(fields, "content_image_file", req.ContentImageFile)

	if err := s.repo.UpdateModel(ctx, id, fields, buildChildren(id, req)); err != nil {
		return nil, err
	}
	return s.GetModel(ctx, id)
}

func (s *Service) DeleteModel(ctx context.Context, id uint) error {
	if err := s.repo.DeleteModel(ctx, id); err != nil {
		return err
	}
	s.log.Info("model deleted", zap.Uint("id", id))
	return nil
}

/* ---------- bulk operations ---------- */

// UncategorizedName receives imported models that name no category.
const UncategorizedName = "Uncategorized"

// ImportModels creates the given models, creating any missing category by
// name. Models whose name already exists are skipped; a failing entry is
// logged and counted without aborting the run.
func (s *Service) ImportModels(ctx context.Context, items []ImportModel) (*ImportReport, error) {
	report := &ImportReport{CreatedCategories: []string{}}
	cache := map[string]uint{}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		name := trimmed(item.Name)
		if name == "" {
			s.log.Warn("import entry without name skipped")
			report.Failed++
			continue
		}
		catName := strings.TrimSpace(item.CategoryName)
		if catName == "" {
			catName = UncategorizedName
		}

		exists, err := s.repo.ModelNameExists(ctx, name)
		if err != nil {
			return report, fmt.Errorf("check model %q: %w", name, err)
		}
		if exists {
			report.Skipped++
			continue
		}

		catID, created, err := s.ensureCategory(ctx, cache, catName)
		if err != nil {
			return report, err
		}
		if created {
			report.CreatedCategories = append(report.CreatedCategories, catName)
		}

		req := item.ModelRequest
		id := FlexID(catID)
		req.CategoryID = &id
		if _, err := s.CreateModel(ctx, req); err != nil {
			s.log.Warn("import model failed", zap.String("name", name), zap.Error(err))
			report.Failed++
			continue
		}
		report.Imported++
	}
	return report, nil
}

func (s *Service) ensureCategory(ctx context.Context, cache map[string]uint, name string) (uint, bool, error) {
	if id, ok := cache[name]; ok {
		return id, false, nil
	}
	c, err := s.repo.FindCategoryByName(ctx, name)
	if err == nil {
		cache[name] = c.ID
		return c.ID, false, nil
	}
	if !errors.Is(err, ErrCategoryNotFound) {
		return 0, false, fmt.Errorf("find category %q: %w", name, err)
	}
	n, err := s.repo.CountCategories(ctx)
	if err != nil {
		return 0, false, err
	}
	c = &Category{Name: name, Description: name + " category", Order: int(n)}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return 0, false, fmt.Errorf("create category %q: %w", name, err)
	}
	cache[name] = c.ID
	return c.ID, true, nil
}

// PopulateMedia rewrites every model's filename fields from the files found
// in its image folder. The first image becomes the main and hero image, the
// second the content image. Models without images are left untouched.
func (s *Service) PopulateMedia(ctx context.Context, lister MediaLister) (*PopulateReport, error) {
	models, err := s.repo.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	report := &PopulateReport{Skipped: []string{}}
	aliases := s.paths.Aliases()

	for _, m := range models {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		folder := aliases.Folder(m.Name)
		images, videos, err := lister.MediaNames(media.ImagesTarget{ModelName: folder})
		if err != nil {
			return report, fmt.Errorf("scan %s: %w", folder, err)
		}
		if len(images) == 0 {
			s.log.Info("no images found, skipping", zap.String("model", m.Name), zap.String("folder", folder))
			report.Skipped = append(report.Skipped, m.Name)
			continue
		}
		interior, _, err := lister.MediaNames(media.ImagesTarget{ModelName: folder, Interior: true})
		if err != nil {
			return report, fmt.Errorf("scan %s/%s: %w", folder, media.InteriorSubfolder, err)
		}

		content := images[0]
		if len(images) > 1 {
			content = images[1]
		}
		fields := map[string]any{
			"image_file":         images[0],
			"hero_image_file":    images[0],
			"content_image_file": content,
		}
		ch := ModelChildren{GalleryImages: galleryRows(m.ID, images)}
		if len(videos) > 0 {
			ch.VideoFiles = videoRows(m.ID, videos)
		}
		if len(interior) > 0 {
			ch.InteriorFiles = interiorRows(m.ID, interior)
		}
		if err := s.repo.UpdateModel(ctx, m.ID, fields, ch); err != nil {
			return report, fmt.Errorf("update %s: %w", m.Name, err)
		}
		s.log.Info("media populated",
			zap.String("model", m.Name),
			zap.Int("images", len(images)),
			zap.Int("videos", len(videos)),
			zap.Int("interior", len(interior)),
		)
		report.Updated++
	}
	return report, nil
}

/* ---------- transforms ---------- */

func (s *Service) requireCategory(ctx context.Context, id uint) error {
	ok, err := s.repo.CategoryExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *Service) categoryResponse(c *Category) CategoryResponse {
	out := CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageFile:   s.paths.CategoryPtr(c.Name, c.ImageFile),
		Order:       c.Order,
		Models:      make([]ModelResponse, 0, len(c.Models)),
	}
	for i := range c.Models {
		m := c.Models[i]
		if m.Category == nil {
			m.Category = c
		}
		out.Models = append(out.Models, s.modelResponse(&m))
	}
	return out
}

func (s *Service) modelResponse(m *Model) ModelResponse {
	out := ModelResponse{
		ID:                  m.ID,
		Name:                m.Name,
		CategoryID:          m.CategoryID,
		Description:         m.Description,
		ShortDescription:    m.ShortDescription,
		ImageFile:           s.paths.ModelImagePtr(m.Name, m.ImageFile),
		HeroImageFile:       s.paths.ModelImagePtr(m.Name, m.HeroImageFile),
		ContentImageFile:    s.paths.ModelImagePtr(m.Name, m.ContentImageFile),
		Section2Title:       m.Section2Title,
		Section2Description: m.Section2Description,
		Specs:               make(map[string]string, len(m.Specs)),
		StandardFeatures:    make([]string, 0, len(m.Features)),
		OptionalFeatures:    make([]OptionalFeatureResponse, 0, len(m.OptionalFeatures)),
		GalleryFiles:        make([]string, 0, len(m.GalleryImages)),
		VideoFiles:          make([]string, 0, len(m.VideoFiles)),
		InteriorFiles:       make([]string, 0, len(m.InteriorFiles)),
	}
	if m.Category != nil {
		out.CategoryName = m.Category.Name
	}
	for _, sp := range m.Specs {
		out.Specs[sp.Key] = sp.Value
	}
	for _, f := range m.Features {
		out.StandardFeatures = append(out.StandardFeatures, f.Feature)
	}
	for _, f := range m.OptionalFeatures {
		out.OptionalFeatures = append(out.OptionalFeatures, OptionalFeatureResponse{
			Name:        f.Name,
			Description: f.Description,
			Category:    f.Category,
			Price:       f.Price,
		})
	}
	for _, g := range m.GalleryImages {
		if p, ok := s.paths.ModelImage(m.Name, g.Filename); ok {
			out.GalleryFiles = append(out.GalleryFiles, p)
		}
	}
	for _, v := range m.VideoFiles {
		if p, ok := s.paths.ModelImage(m.Name, v.Filename); ok {
			out.VideoFiles = append(out.VideoFiles, p)
		}
	}
	for _, f := range m.InteriorFiles {
		if p, ok := s.paths.ModelInterior(m.Name, f.Filename); ok {
			out.InteriorFiles = append(out.InteriorFiles, p)
		}
	}
	return out
}

// buildChildren converts the supplied collections of req into rows owned by
// modelID, canonicalizing filenames and dropping unusable entries.
func buildChildren(modelID uint, req ModelRequest) ModelChildren {
	var ch ModelChildren
	if req.Specs != nil {
		keys := make([]string, 0, len(req.Specs))
		for k := range req.Specs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ch.Specs = make([]Spec, 0, len(keys))
		for _, k := range keys {
			if strings.TrimSpace(k) == "" {
				continue
			}
			ch.Specs = append(ch.Specs, Spec{ModelID: modelID, Key: k, Value: stringify(req.Specs[k])})
		}
	}
	if req.StandardFeatures != nil {
		ch.Features = make([]Feature, 0, len(req.StandardFeatures))
		for _, f := range req.StandardFeatures {
			text := strings.TrimSpace(stringify(f))
			if text == "" {
				continue
			}
			ch.Features = append(ch.Features, Feature{ModelID: modelID, Feature: text, Order: len(ch.Features)})
		}
	}
	if req.OptionalFeatures != nil {
		ch.OptionalFeatures = make([]OptionalFeature, 0, len(req.OptionalFeatures))
		for _, o := range req.OptionalFeatures {
			if strings.TrimSpace(o.Name) == "" {
				continue
			}
			ch.OptionalFeatures = append(ch.OptionalFeatures, OptionalFeature{
				ModelID:     modelID,
				Name:        o.Name,
				Description: o.Description,
				Category:    o.Category,
				Price:       o.Price,
				Order:       len(ch.OptionalFeatures),
			})
		}
	}
	if req.GalleryFiles != nil {
		ch.GalleryImages = galleryRows(modelID, canonicalList(req.GalleryFiles))
	}
	if req.VideoFiles != nil {
		ch.VideoFiles = videoRows(modelID, canonicalList(req.VideoFiles))
	}
	if req.InteriorFiles != nil {
		ch.InteriorFiles = interiorRows(modelID, canonicalList(req.InteriorFiles))
	}
	return ch
}

func canonicalList(in []*string) []string {
	out := make([]string, 0, len(in))
	for _, raw := range in {
		if name, ok := media.CanonicalizePtr(raw); ok {
			out = append(out, name)
		}
	}
	return out
}

func galleryRows(modelID uint, names []string) []GalleryImage {
	rows := make([]GalleryImage, len(names))
	for i, n := range names {
		rows[i] = GalleryImage{ModelID: modelID, Filename: n, Order: i}
	}
	return rows
}

func videoRows(modelID uint, names []string) []VideoFile {
	rows := make([]VideoFile, len(names))
	for i, n := range names {
		rows[i] = VideoFile{ModelID: modelID, Filename: n, Order: i}
	}
	return rows
}

func interiorRows(modelID uint, names []string) []InteriorFile {
	rows := make([]InteriorFile, len(names))
	for i, n := range names {
		rows[i] = InteriorFile{ModelID: modelID, Filename: n, Order: i}
	}
	return rows
}

func setString(fields map[string]any, col string, v *string) {
	if v != nil {
		fields[col] = *v
	}
}

func setFile(fields map[string]any, col string, v *string) {
	if v != nil {
		fields[col] = media.CanonicalPtr(v)
	}
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
