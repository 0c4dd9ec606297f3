package controllers

import (
	"context"
	"net/http"
)

// CRUDService is the contract every CRM entity service satisfies.
type CRUDService[T, P any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, p P) (T, error)
	Update(ctx context.Context, id int64, p P) (T, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string) ([]T, error)
}

// CRUDController exposes a CRUDService over HTTP.
type CRUDController[T, P any] struct {
	Service CRUDService[T, P]
}

// NewCRUDController creates a new instance of CRUDController.
func NewCRUDController[T, P any](service CRUDService[T, P]) *CRUDController[T, P] {
	return &CRUDController[T, P]{Service: service}
}

// List handles GET /{entity}; ?q= searches.
func (c *CRUDController[T, P]) List(w http.ResponseWriter, r *http.Request) {
	var (
		items []T
		err   error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		items, err = c.Service.Search(r.Context(), q)
	} else {
		items, err = c.Service.List(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, items)
}

// Get handles GET /{entity}/{id}.
func (c *CRUDController[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /{entity}.
func (c *CRUDController[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	var patch P
	if !decode(w, r, &patch) {
		return
	}
	item, err := c.Service.Create(r.Context(), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /{entity}/{id}.
func (c *CRUDController[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch P
	if !decode(w, r, &patch) {
		return
	}
	item, err := c.Service.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /{entity}/{id}.
func (c *CRUDController[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}
