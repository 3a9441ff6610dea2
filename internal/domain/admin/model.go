package admin

import "time"

// AdminUser is an account allowed to edit the catalog.
type AdminUser struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Name         string     `json:"name" gorm:"size:200"`
	Role         string     `json:"role" gorm:"size:32;not null;default:'admin'"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

func Entities() []any {
	return []any{&AdminUser{}}
}
