package database

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type widget struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

func TestConnect_SQLiteUniqueViolation(t *testing.T) {
	db, err := Connect("file:"+uuid.NewString()+"?mode=memory&cache=shared", nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db, &widget{}))

	require.NoError(t, db.Create(&widget{Name: "TL950"}).Error)
	err = db.Create(&widget{Name: "TL950"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(gorm.ErrRecordNotFound))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, isPostgres("postgres://u:p@localhost/tm"))
	assert.True(t, isPostgres("postgresql://localhost/tm"))
	assert.False(t, isPostgres("tigermarine.db"))
	assert.False(t, isPostgres("file::memory:"))
}
