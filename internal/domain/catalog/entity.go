package catalog

import "time"

// Category groups boat models (e.g. TopLine, Open). Order drives listing order.
type Category struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:191;uniqueIndex;not null"`
	Description string  `gorm:"type:text"`
	ImageFile   *string `gorm:"size:255"`
	Order       int     `gorm:"column:sort_order;not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Models []Model `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (Category) TableName() string { return "categories" }

// Model is one boat model. Filename fields hold bare filenames; public URLs
// are derived on read.
type Model struct {
	ID                  uint    `gorm:"primaryKey"`
	CategoryID          uint    `gorm:"index;not null"`
	Name                string  `gorm:"size:191;uniqueIndex;not null"`
	Description         string  `gorm:"type:text"`
	ShortDescription    string  `gorm:"type:text"`
	ImageFile           *string `gorm:"size:255"`
	HeroImageFile       *string `gorm:"size:255"`
	ContentImageFile    *string `gorm:"size:255"`
	Section2Title       string  `gorm:"column:section2_title;size:255"`
	Section2Description string  `gorm:"column:section2_description;type:text"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Category         *Category         `gorm:"foreignKey:CategoryID"`
	Specs            []Spec            `gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE"`
	Features         []Feature         `gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE"`
	OptionalFeatures []OptionalFeature `gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE"`
	GalleryImages    []GalleryImage    `gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE"`
	VideoFiles       []VideoFile       `gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE"`
	InteriorFiles    []InteriorFile    `gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE"`
}

func (Model) TableName() string { return "models" }

type Spec struct {
	ID      uint   `gorm:"primaryKey"`
	ModelID uint   `gorm:"index;not null"`
	Key     string `gorm:"column:spec_key;size:191;not null"`
	Value   string `gorm:"type:text"`
}

func (Spec) TableName() string { return "specs" }

type Feature struct {
	ID      uint   `gorm:"primaryKey"`
	ModelID uint   `gorm:"index;not null"`
	Feature string `gorm:"type:text"`
	Order   int    `gorm:"column:sort_order"`
}

func (Feature) TableName() string { return "features" }

type OptionalFeature struct {
	ID          uint   `gorm:"primaryKey"`
	ModelID     uint   `gorm:"index;not null"`
	Name        string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"size:255"`
	Price       string `gorm:"size:64"`
	Order       int    `gorm:"column:sort_order"`
}

func (OptionalFeature) TableName() string { return "optional_features" }

type GalleryImage struct {
	ID       uint   `gorm:"primaryKey"`
	ModelID  uint   `gorm:"index;not null"`
	Filename string `gorm:"size:255;not null"`
	Order    int    `gorm:"column:sort_order"`
}

func (GalleryImage) TableName() string { return "gallery_images" }

type VideoFile struct {
	ID       uint   `gorm:"primaryKey"`
	ModelID  uint   `gorm:"index;not null"`
	Filename string `gorm:"size:255;not null"`
	Order    int    `gorm:"column:sort_order"`
}

func (VideoFile) TableName() string { return "video_files" }

type InteriorFile struct {
	ID       uint   `gorm:"primaryKey"`
	ModelID  uint   `gorm:"index;not null"`
	Filename string `gorm:"size:255;not null"`
	Order    int    `gorm:"column:sort_order"`
}

func (InteriorFile) TableName() string { return "interior_files" }

// Entities lists the tables owned by this package, parents first.
func Entities() []any {
	return []any{
		&Category{},
		&Model{},
		&Spec{},
		&Feature{},
		&OptionalFeature{},
		&GalleryImage{},
		&VideoFile{},
		&InteriorFile{},
	}
}
