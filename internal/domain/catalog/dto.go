package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexID accepts an identifier sent either as a JSON number or a numeric string.
type FlexID uint

func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", string(b))
	}
	*id = FlexID(v)
	return nil
}

// OptionalFeatureInput accepts either a bare name string or an object.
type OptionalFeatureInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"`
}

func (o *OptionalFeatureInput) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*o = OptionalFeatureInput{Name: s}
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("optional feature must be a string or an object: %w", err)
	}
	*o = OptionalFeatureInput{
		Name:        stringify(m["name"]),
		Description: stringify(m["description"]),
		Category:    stringify(m["category"]),
		Price:       stringify(m["price"]),
	}
	return nil
}

// ModelRequest is used for create, update and import. A nil collection means
// "not supplied" and leaves stored rows untouched on update.
type ModelRequest struct {
	CategoryID          *FlexID                `json:"categoryId"`
	Name                *string                `json:"name"`
	Description         *string                `json:"description"`
	ShortDescription    *string                `json:"shortDescription"`
	ImageFile           *string                `json:"imageFile"`
	HeroImageFile       *string                `json:"heroImageFile"`
	ContentImageFile    *string                `json:"contentImageFile"`
	Section2Title       *string                `json:"section2Title"`
	Section2Description *string                `json:"section2Description"`
	Specs               map[string]any         `json:"specs"`
	StandardFeatures    []any                  `json:"standardFeatures"`
	OptionalFeatures    []OptionalFeatureInput `json:"optionalFeatures"`
	GalleryFiles        []*string              `json:"galleryFiles"`
	VideoFiles          []*string              `json:"videoFiles"`
	InteriorFiles       []*string              `json:"interiorFiles"`
}

// ImportModel is one entry of a catalog import file.
type ImportModel struct {
	ModelRequest
	CategoryName string `json:"categoryName"`
}

type CategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageFile   *string `json:"imageFile"`
	Order       *int    `json:"order"`
}

type OptionalFeatureResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"`
}

// ModelResponse is the public shape of a model: filenames replaced by URLs.
type ModelResponse struct {
	ID                  uint                      `json:"id"`
	Name                string                    `json:"name"`
	CategoryID          uint                      `json:"categoryId"`
	CategoryName        string                    `json:"categoryName,omitempty"`
	Description         string                    `json:"description"`
	ShortDescription    string                    `json:"shortDescription"`
	ImageFile           *string                   `json:"imageFile"`
	HeroImageFile       *string                   `json:"heroImageFile"`
	ContentImageFile    *string                   `json:"contentImageFile"`
	Section2Title       string                    `json:"section2Title"`
	Section2Description string                    `json:"section2Description"`
	Specs               map[string]string         `json:"specs"`
	StandardFeatures    []string                  `json:"standardFeatures"`
	OptionalFeatures    []OptionalFeatureResponse `json:"optionalFeatures"`
	GalleryFiles        []string                  `json:"galleryFiles"`
	VideoFiles          []string                  `json:"videoFiles"`
	InteriorFiles       []string                  `json:"interiorFiles"`
}

type CategoryResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageFile   *string         `json:"imageFile"`
	Order       int             `json:"order"`
	Models      []ModelResponse `json:"models"`
}

// ImportReport summarizes a catalog import run.
type ImportReport struct {
	Imported          int      `json:"imported"`
	Skipped           int      `json:"skipped"`
	Failed            int      `json:"failed"`
	CreatedCategories []string `json:"createdCategories"`
}

// PopulateReport summarizes a media filename population run.
type PopulateReport struct {
	Updated int      `json:"updated"`
	Skipped []string `json:"skipped"`
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
