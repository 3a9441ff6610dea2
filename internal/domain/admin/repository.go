package admin

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *AdminUser) error
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
	TouchLogin(ctx context.Context, id uint, at time.Time) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *AdminUser) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*AdminUser, error) {
	var admin AdminUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) TouchLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&AdminUser{}).Where("id = ?", id).Update("last_login_at", at).Error
}
