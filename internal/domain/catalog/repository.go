package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tigermarine/internal/database"
)

// ModelChildren carries the child collections of a model. A nil slice or map
// means the collection was not supplied.
type ModelChildren struct {
	Specs            []Spec
	Features         []Feature
	OptionalFeatures []OptionalFeature
	GalleryImages    []GalleryImage
	VideoFiles       []VideoFile
	InteriorFiles    []InteriorFile
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func ordered(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC").Order("id ASC") }

func withChildren(q *gorm.DB, prefix string) *gorm.DB {
	return q.
		Preload(prefix+"Specs", func(db *gorm.DB) *gorm.DB { return db.Order("spec_key ASC") }).
		Preload(prefix+"Features", ordered).
		Preload(prefix+"OptionalFeatures", ordered).
		Preload(prefix+"GalleryImages", ordered).
		Preload(prefix+"VideoFiles", ordered).
		Preload(prefix+"InteriorFiles", ordered)
}

/* ---------- categories ---------- */

func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	q := r.db.WithContext(ctx).
		Preload("Models", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") })
	err := withChildren(q, "Models.").
		Order("sort_order ASC").Order("name ASC").
		Find(&out).Error
	return out, err
}

func (r *Repository) GetCategory(ctx context.Context, id uint) (*Category, error) {
	var c Category
	q := r.db.WithContext(ctx).
		Preload("Models", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") })
	err := withChildren(q, "Models.").First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	return &c, err
}

func (r *Repository) FindCategoryByName(ctx context.Context, name string) (*Category, error) {
	var c Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	return &c, err
}

func (r *Repository) CategoryExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Category{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *Repository) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Category{}).Count(&n).Error
	return n, err
}

func (r *Repository) CreateCategory(ctx context.Context, c *Category) error {
	return mapWriteErr(r.db.WithContext(ctx).Create(c).Error)
}

func (r *Repository) UpdateCategory(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		ok, err := r.CategoryExists(ctx, id)
		if err == nil && !ok {
			err = ErrCategoryNotFound
		}
		return err
	}
	res := r.db.WithContext(ctx).Model(&Category{ID: id}).Updates(fields)
	if res.Error != nil {
		return mapWriteErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// DeleteCategory removes the category together with its models and their rows.
func (r *Repository) DeleteCategory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&Model{}).Where("category_id = ?", id).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) > 0 {
			if err := deleteChildren(tx, ids); err != nil {
				return err
			}
			if err := tx.Where("id IN ?", ids).Delete(&Model{}).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
}

/* ---------- models ---------- */

func (r *Repository) ListModels(ctx context.Context) ([]Model, error) {
	var out []Model
	err := withChildren(r.db.WithContext(ctx).Preload("Category"), "").
		Order("name ASC").
		Find(&out).Error
	return out, err
}

func (r *Repository) GetModel(ctx context.Context, id uint) (*Model, error) {
	var m Model
	err := withChildren(r.db.WithContext(ctx).Preload("Category"), "").First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrModelNotFound
	}
	return &m, err
}

func (r *Repository) ModelNameExists(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Model{}).Where("name = ?", name).Count(&n).Error
	return n > 0, err
}

// CreateModel inserts the model and every child collection set on it.
func (r *Repository) CreateModel(ctx context.Context, m *Model) error {
	return mapWriteErr(r.db.WithContext(ctx).Create(m).Error)
}

// UpdateModel applies scalar fields and then, per supplied collection,
// deletes the stored rows and inserts the new ones. Collections are not
// replaced atomically with each other.
func (r *Repository) UpdateModel(ctx context.Context, id uint, fields map[string]any, ch ModelChildren) error {
	db := r.db.WithContext(ctx)
	if len(fields) > 0 {
		res := db.Model(&Model{ID: id}).Updates(fields)
		if res.Error != nil {
			return mapWriteErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrModelNotFound
		}
	} else {
		var n int64
		if err := db.Model(&Model{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrModelNotFound
		}
	}

	if ch.Specs != nil {
		if err := replaceChildren(db, id, ch.Specs); err != nil {
			return fmt.Errorf("replace specs: %w", err)
		}
	}
	if ch.Features != nil {
		if err := replaceChildren(db, id, ch.Features); err != nil {
			return fmt.Errorf("replace features: %w", err)
		}
	}
	if ch.OptionalFeatures != nil {
		if err := replaceChildren(db, id, ch.OptionalFeatures); err != nil {
			return fmt.Errorf("replace optional features: %w", err)
		}
	}
	if ch.GalleryImages != nil {
		if err := replaceChildren(db, id, ch.GalleryImages); err != nil {
			return fmt.Errorf("replace gallery: %w", err)
		}
	}
	if ch.VideoFiles != nil {
		if err := replaceChildren(db, id, ch.VideoFiles); err != nil {
			return fmt.Errorf("replace videos: %w", err)
		}
	}
	if ch.InteriorFiles != nil {
		if err := replaceChildren(db, id, ch.InteriorFiles); err != nil {
			return fmt.Errorf("replace interior: %w", err)
		}
	}
	return nil
}

func (r *Repository) DeleteModel(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, []uint{id}); err != nil {
			return err
		}
		res := tx.Delete(&Model{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrModelNotFound
		}
		return nil
	})
}

func replaceChildren[T any](db *gorm.DB, modelID uint, rows []T) error {
	if err := db.Where("model_id = ?", modelID).Delete(new(T)).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}

func deleteChildren(tx *gorm.DB, modelIDs []uint) error {
	for _, e := range []any{&Spec{}, &Feature{}, &OptionalFeature{}, &GalleryImage{}, &VideoFile{}, &InteriorFile{}} {
		if err := tx.Where("model_id IN ?", modelIDs).Delete(e).Error; err != nil {
			return err
		}
	}
	return nil
}

func mapWriteErr(err error) error {
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateName, err)
	}
	return err
}
