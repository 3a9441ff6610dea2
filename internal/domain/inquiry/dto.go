package inquiry

import "strings"

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"max=64"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required,max=10000"`
}

// Normalize trims every field so whitespace-only values count as missing.
func (r *ContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

type CustomizerRequest struct {
	Name             string            `json:"name" validate:"required,max=200"`
	Email            string            `json:"email" validate:"required,email,max=254"`
	Phone            string            `json:"phone" validate:"max=64"`
	ModelName        string            `json:"modelName" validate:"max=191"`
	SelectedColors   map[string]string `json:"selectedColors"`
	SelectedFeatures []string          `json:"selectedFeatures"`
	Message          string            `json:"message" validate:"max=10000"`
}

func (r *CustomizerRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.ModelName = strings.TrimSpace(r.ModelName)
	r.Message = strings.TrimSpace(r.Message)
}

type ListFilter struct {
	Type   string
	Limit  int
	Offset int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)
