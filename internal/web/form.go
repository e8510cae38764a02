package web

import (
	"net/url"
	"strconv"
	"strings"

	"resto-app/internal/product"
)

func formInt(form url.Values, key string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(form.Get(key)))
	if err != nil {
		return 0, errInvalidForm
	}
	return n, nil
}

// productForm holds the admin form fields as typed by the user.
type productForm struct {
	ID          int
	Name        string
	Price       string
	Category    string
	Img         string
	Description string
	Stock       string
}

func productFormFrom(p product.Product) productForm {
	return productForm{
		ID:          p.ID,
		Name:        p.Name,
		Price:       strconv.FormatFloat(p.Price, 'f', 2, 64),
		Category:    p.Category,
		Img:         p.Img,
		Description: p.Description,
		Stock:       strconv.Itoa(p.Stock),
	}
}

func productFormFromValues(form url.Values) productForm {
	id, _ := strconv.Atoi(form.Get("id"))
	return productForm{
		ID:          id,
		Name:        form.Get("name"),
		Price:       form.Get("price"),
		Category:    form.Get("category"),
		Img:         form.Get("img"),
		Description: form.Get("description"),
		Stock:       form.Get("stock"),
	}
}

func (f productForm) Product() (product.Product, error) {
	p := product.Product{
		ID:          f.ID,
		Name:        strings.TrimSpace(f.Name),
		Category:    strings.TrimSpace(f.Category),
		Img:         strings.TrimSpace(f.Img),
		Description: strings.TrimSpace(f.Description),
	}
	if p.Name == "" || p.Category == "" {
		return p, errInvalidProduct
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil || price < 0 {
		return p, errInvalidProduct
	}
	p.Price = price

	if s := strings.TrimSpace(f.Stock); s != "" {
		stock, err := strconv.Atoi(s)
		if err != nil || stock < 0 {
			return p, errInvalidProduct
		}
		p.Stock = stock
	}
	return p, nil
}
