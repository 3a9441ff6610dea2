package inquiry

import "time"

const (
	TypeContact    = "contact"
	TypeCustomizer = "customizer"
)

// Inquiry is a contact form submission or a customizer build request.
type Inquiry struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	Type             string            `gorm:"size:32;index;not null" json:"type"`
	Name             string            `gorm:"size:200;not null" json:"name"`
	Email            string            `gorm:"size:254;not null" json:"email"`
	Phone            *string           `gorm:"size:64" json:"phone"`
	Subject          *string           `gorm:"size:255" json:"subject"`
	ModelName        *string           `gorm:"size:191" json:"modelName"`
	SelectedColors   map[string]string `gorm:"serializer:json;type:text" json:"selectedColors"`
	SelectedFeatures []string          `gorm:"serializer:json;type:text" json:"selectedFeatures"`
	Message          *string           `gorm:"type:text" json:"message"`
	EmailSent        bool              `gorm:"not null;default:false" json:"emailSent"`
	CreatedAt        time.Time         `gorm:"index" json:"createdAt"`
}

func (Inquiry) TableName() string { return "inquiries" }

func Entities() []any {
	return []any{&Inquiry{}}
}
