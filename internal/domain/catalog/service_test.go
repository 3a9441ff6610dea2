package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tigermarine/internal/database"
	"tigermarine/internal/domain/media"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect("file:"+uuid.NewString()+"?mode=memory&cache=shared", nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, Entities()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	paths := media.NewPathBuilder(media.DefaultFolderAliases())
	return NewService(NewRepository(newTestDB(t)), paths, nil)
}

func strPtr(s string) *string { return &s }

func idPtr(id uint) *FlexID {
	v := FlexID(id)
	return &v
}

func mustCategory(t *testing.T, s *Service, name string) *CategoryResponse {
	t.Helper()
	cat, err := s.CreateCategory(context.Background(), CategoryRequest{Name: strPtr(name)})
	require.NoError(t, err)
	return cat
}

func TestCreateModel_TransformsFilenamesToURLs(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	cat := mustCategory(t, s, "TopLine")

	m, err := s.CreateModel(ctx, ModelRequest{
		CategoryID:       idPtr(cat.ID),
		Name:             strPtr("TL950"),
		ImageFile:        strPtr("/images/old/hero.jpg"),
		HeroImageFile:    strPtr("   "),
		Specs:            map[string]any{"Length": "9.5 m", "Engines": 2.0},
		StandardFeatures: []any{"Bimini top", "", "Teak deck"},
		OptionalFeatures: []OptionalFeatureInput{{Name: "Radar", Price: "1200"}, {Name: " "}},
		GalleryFiles:     []*string{strPtr("a.jpg"), nil, strPtr("x/b.png"), strPtr("")},
		VideoFiles:       []*string{strPtr("tour.mp4")},
		InteriorFiles:    []*string{strPtr("cabin.jpg")},
	})
	require.NoError(t, err)

	assert.Equal(t, "TL950", m.Name)
	assert.Equal(t, "TopLine", m.CategoryName)
	require.NotNil(t, m.ImageFile)
	assert.Equal(t, "/images/TopLine950/hero.jpg", *m.ImageFile)
	assert.Nil(t, m.HeroImageFile)
	assert.Equal(t, map[string]string{"Length": "9.5 m", "Engines": "2"}, m.Specs)
	assert.Equal(t, []string{"Bimini top", "Teak deck"}, m.StandardFeatures)
	require.Len(t, m.OptionalFeatures, 1)
	assert.Equal(t, "Radar", m.OptionalFeatures[0].Name)
	assert.Equal(t, []string{"/images/TopLine950/a.jpg", "/images/TopLine950/b.png"}, m.GalleryFiles)
	assert.Equal(t, []string{"/images/TopLine950/tour.mp4"}, m.VideoFiles)
	assert.Equal(t, []string{"/images/TopLine950/Interior/cabin.jpg"}, m.InteriorFiles)
}

func TestCreateModel_Validation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.CreateModel(ctx, ModelRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.CreateModel(ctx, ModelRequest{CategoryID: idPtr(1), Name: strPtr("  ")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.CreateModel(ctx, ModelRequest{CategoryID: idPtr(99), Name: strPtr("X")})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateModel_DuplicateName(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	cat := mustCategory(t, s, "Open")

	_, err := s.CreateModel(ctx, ModelRequest{CategoryID: idPtr(cat.ID), Name: strPtr("OP650")})
	require.NoError(t, err)
	_, err = s.CreateModel(ctx, ModelRequest{CategoryID: idPtr(cat.ID), Name: strPtr("OP650")})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = s.CreateCategory(ctx, CategoryRequest{Name: strPtr("Open")})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestUpdateModel_ReplacesOnlySuppliedCollections(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	cat := mustCategory(t, s, "ProLine")

	m, err := s.CreateModel(ctx, ModelRequest{
		CategoryID:       idPtr(cat.ID),
		Name:             strPtr("PL620"),
		Description:      strPtr("old"),
		StandardFeatures: []any{"one", "two"},
		GalleryFiles:     []*string{strPtr("1.jpg"), strPtr("2.jpg")},
	})
	require.NoError(t, err)

	updated, err := s.UpdateModel(ctx, m.ID, ModelRequest{
		Description:  strPtr("new"),
		GalleryFiles: []*string{strPtr("/images/ProLine620/3.jpg")},
	})
	require.NoError(t, err)

	assert.Equal(t, "new", updated.Description)
	assert.Equal(t, []string{"one", "two"}, updated.StandardFeatures)
	assert.Equal(t, []string{"/images/ProLine620/3.jpg"}, updated.GalleryFiles)

	cleared, err := s.UpdateModel(ctx, m.ID, ModelRequest{StandardFeatures: []any{}})
	require.NoError(t, err)
	assert.Empty(t, cleared.StandardFeatures)
	assert.Len(t, cleared.GalleryFiles, 1)
}

func TestUpdateModel_NotFound(t *testing.T) {
	s := newTestService(t)
	_, err := s.UpdateModel(context.Background(), 42, ModelRequest{Description: strPtr("x")})
	assert.ErrorIs(t, err, ErrModelNotFound)

	_, err = s.UpdateModel(context.Background(), 42, ModelRequest{})
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestDeleteCategory_RemovesModels(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	cat := mustCategory(t, s, "SportLine")
	m, err := s.CreateModel(ctx, ModelRequest{
		CategoryID:   idPtr(cat.ID),
		Name:         strPtr("SL480"),
		GalleryFiles: []*string{strPtr("a.jpg")},
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory(ctx, cat.ID))

	_, err = s.GetModel(ctx, m.ID)
	assert.ErrorIs(t, err, ErrModelNotFound)
	assert.ErrorIs(t, s.DeleteCategory(ctx, cat.ID), ErrCategoryNotFound)
}

func TestCategoryResponse_ImageAndModels(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	cat, err := s.CreateCategory(ctx, CategoryRequest{
		Name:      strPtr("MaxLine"),
		ImageFile: strPtr("/images/categories/MaxLine/cover.webp"),
		Order:     func() *int { v := 3; return &v }(),
	})
	require.NoError(t, err)
	_, err = s.CreateModel(ctx, ModelRequest{CategoryID: idPtr(cat.ID), Name: strPtr("ML38"), ImageFile: strPtr("m.jpg")})
	require.NoError(t, err)

	got, err := s.GetCategory(ctx, cat.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ImageFile)
	assert.Equal(t, "/images/categories/MaxLine/cover.webp", *got.ImageFile)
	assert.Equal(t, 3, got.Order)
	require.Len(t, got.Models, 1)
	assert.Equal(t, "MaxLine", got.Models[0].CategoryName)
	assert.Equal(t, "/images/MaxLine 38/m.jpg", *got.Models[0].ImageFile)
}

func TestImportModels(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	mustCategory(t, s, "TopLine")

	report, err := s.ImportModels(ctx, []ImportModel{
		{CategoryName: "TopLine", ModelRequest: ModelRequest{Name: strPtr("TL850")}},
		{CategoryName: "Open", ModelRequest: ModelRequest{Name: strPtr("OP750")}},
		{CategoryName: "Open", ModelRequest: ModelRequest{Name: strPtr("OP850")}},
		{CategoryName: "TopLine", ModelRequest: ModelRequest{Name: strPtr("TL850")}},
		{CategoryName: "Open", ModelRequest: ModelRequest{Name: strPtr("  ")}},
		{ModelRequest: ModelRequest{Name: strPtr("Striker 330")}},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Imported)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, []string{"Open", UncategorizedName}, report.CreatedCategories)

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
}

type stubLister map[string][2][]string

func (l stubLister) MediaNames(t media.Target) ([]string, []string, error) {
	key := ""
	for _, seg := range t.Segments() {
		key += "/" + seg
	}
	v := l[key]
	return v[0], v[1], nil
}

func TestPopulateMedia(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	cat := mustCategory(t, s, "TopLine")
	_, err := s.CreateModel(ctx, ModelRequest{CategoryID: idPtr(cat.ID), Name: strPtr("TL650")})
	require.NoError(t, err)
	_, err = s.CreateModel(ctx, ModelRequest{
		CategoryID:   idPtr(cat.ID),
		Name:         strPtr("TL750"),
		GalleryFiles: []*string{strPtr("keep.jpg")},
	})
	require.NoError(t, err)

	lister := stubLister{
		"/images/TopLine650":          {{"a.jpg", "b.jpg", "c.png"}, {"run.mp4"}},
		"/images/TopLine650/Interior": {{"seat.jpg"}, nil},
	}

	report, err := s.PopulateMedia(ctx, lister)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, []string{"TL750"}, report.Skipped)

	models, err := s.ListModels(ctx)
	require.NoError(t, err)
	require.Len(t, models, 2)

	tl650 := models[0]
	assert.Equal(t, "/images/TopLine650/a.jpg", *tl650.ImageFile)
	assert.Equal(t, "/images/TopLine650/a.jpg", *tl650.HeroImageFile)
	assert.Equal(t, "/images/TopLine650/b.jpg", *tl650.ContentImageFile)
	assert.Len(t, tl650.GalleryFiles, 3)
	assert.Equal(t, []string{"/images/TopLine650/run.mp4"}, tl650.VideoFiles)
	assert.Equal(t, []string{"/images/TopLine650/Interior/seat.jpg"}, tl650.InteriorFiles)

	tl750 := models[1]
	assert.Nil(t, tl750.ImageFile)
	assert.Equal(t, []string{"/images/TopLine750/keep.jpg"}, tl750.GalleryFiles)
}

func TestFlexIDAndOptionalFeatureDecoding(t *testing.T) {
	var req ModelRequest
	body := `{"categoryId":"7","optionalFeatures":["Radar",{"name":"Tower","price":1500}]}`
	require.NoError(t, jsonUnmarshal(body, &req))
	require.NotNil(t, req.CategoryID)
	assert.Equal(t, FlexID(7), *req.CategoryID)
	require.Len(t, req.OptionalFeatures, 2)
	assert.Equal(t, "Radar", req.OptionalFeatures[0].Name)
	assert.Equal(t, "1500", req.OptionalFeatures[1].Price)

	assert.Error(t, jsonUnmarshal(`{"categoryId":"abc"}`, &req))
}
