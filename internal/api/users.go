package api

import (
	"net/http"

	"resto-app/internal/user"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), user.Filter{Email: r.URL.Query().Get("email")})
	if err != nil {
		respondRepoError(w, r, err, user.ErrUserNotFound)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		respondRepoError(w, r, err, user.ErrUserNotFound)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var u user.User
	if err := decodeJSON(w, r, &u); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	u.ID = 0

	created, err := h.users.Create(r.Context(), u)
	if err != nil {
		respondRepoError(w, r, err, user.ErrUserNotFound)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch user.Patch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.users.Update(r.Context(), id, patch)
	if err != nil {
		respondRepoError(w, r, err, user.ErrUserNotFound)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		respondRepoError(w, r, err, user.ErrUserNotFound)
		return
	}
	respondJSON(w, http.StatusOK, struct{}{})
}
