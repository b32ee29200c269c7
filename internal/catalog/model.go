package catalog

import "github.com/devNatanFrei/e-commerce/internal/model"

// Product types: variable products sell through their variations, simple
// products sell as-is.
const (
	TypeVariable = "V"
	TypeSimple   = "S"
)

type Product struct {
	model.Model
	Name             string
	ShortDescription string
	LongDescription  string
	Image            string
	Slug             string
	Price            float64
	PromoPrice       float64
	Type             string
	Variations       []Variation
}

type Variation struct {
	model.Model
	ProductID  string
	Name       string
	Price      float64
	PromoPrice float64
	Stock      int
}

// DisplayName returns the variation name, falling back to the owning
// product's name when the variation has none.
func (v Variation) DisplayName(productName string) string {
	if v.Name != "" {
		return v.Name
	}
	return productName
}
