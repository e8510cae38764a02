package api

import (
	"net/http"
	"strconv"
	"time"

	"resto-app/internal/order"
)

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := order.Filter{Status: q.Get("status")}

	if raw := q.Get("userId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			respondError(w, http.StatusBadRequest, "invalid userId")
			return
		}
		filter.UserID = id
	}

	orders, err := h.orders.List(r.Context(), filter)
	if err != nil {
		respondRepoError(w, r, err, order.ErrOrderNotFound)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		respondRepoError(w, r, err, order.ErrOrderNotFound)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

// CreateOrder stores the order as sent. The total is not recomputed.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var o order.Order
	if err := decodeJSON(w, r, &o); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	o.ID = 0
	if o.Status == "" {
		o.Status = order.StatusPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	created, err := h.orders.Create(r.Context(), o)
	if err != nil {
		respondRepoError(w, r, err, order.ErrOrderNotFound)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch order.Patch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.orders.Update(r.Context(), id, patch)
	if err != nil {
		respondRepoError(w, r, err, order.ErrOrderNotFound)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		respondRepoError(w, r, err, order.ErrOrderNotFound)
		return
	}
	respondJSON(w, http.StatusOK, struct{}{})
}
