package inquiry

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, inq *Inquiry) error {
	return r.db.WithContext(ctx).Create(inq).Error
}

// List returns one page of inquiries, newest first, and the total matching f.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]Inquiry, int64, error) {
	filtered := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&Inquiry{})
		if f.Type != "" {
			q = q.Where("type = ?", f.Type)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Inquiry
	err := filtered().Order("created_at DESC").Order("id DESC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&out).Error
	return out, total, err
}
