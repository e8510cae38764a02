package product

import "strings"

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Img         string  `json:"img"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
}

type Patch struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Img         *string  `json:"img,omitempty"`
	Description *string  `json:"description,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

func (p Patch) Apply(pr Product) Product {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Price != nil {
		pr.Price = *p.Price
	}
	if p.Category != nil {
		pr.Category = *p.Category
	}
	if p.Img != nil {
		pr.Img = *p.Img
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.Stock != nil {
		pr.Stock = *p.Stock
	}
	return pr
}

// PatchFrom builds a patch that overwrites every field with the values of pr.
func PatchFrom(pr Product) Patch {
	return Patch{
		Name:        &pr.Name,
		Price:       &pr.Price,
		Category:    &pr.Category,
		Img:         &pr.Img,
		Description: &pr.Description,
		Stock:       &pr.Stock,
	}
}

type Filter struct {
	Category string
}

func (f Filter) Match(pr Product) bool {
	return f.Category == "" || strings.EqualFold(pr.Category, f.Category)
}

// Categories returns the distinct categories in first-seen order.
func Categories(products []Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}
