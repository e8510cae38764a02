package api

import (
	"net/http"

	"resto-app/internal/product"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), product.Filter{Category: r.URL.Query().Get("category")})
	if err != nil {
		respondRepoError(w, r, err, product.ErrProductNotFound)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		respondRepoError(w, r, err, product.ErrProductNotFound)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	if err := decodeJSON(w, r, &p); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	p.ID = 0

	created, err := h.products.Create(r.Context(), p)
	if err != nil {
		respondRepoError(w, r, err, product.ErrProductNotFound)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch product.Patch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.products.Update(r.Context(), id, patch)
	if err != nil {
		respondRepoError(w, r, err, product.ErrProductNotFound)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		respondRepoError(w, r, err, product.ErrProductNotFound)
		return
	}
	respondJSON(w, http.StatusOK, struct{}{})
}
