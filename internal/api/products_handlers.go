package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helpdesk-tools/inventory/internal/domain"
	"github.com/helpdesk-tools/inventory/internal/repository"
)

// Products groups stock-product handlers for testability
type Products struct {
	repo repository.ProductRepository
}

func NewProducts(repo repository.ProductRepository) *Products {
	return &Products{repo: repo}
}

// Routes mounts the product endpoints on r.
func (h *Products) Routes(r chi.Router) {
	r.Get("/", h.ListHandler)
	r.Post("/", h.CreateHandler)
	r.Get("/{id}", h.GetHandler)
	r.Put("/{id}", h.UpdateHandler)
	r.Delete("/{id}", h.DeleteHandler)
}

// productRequest carries the full product payload. Unlike the asset
// entities, updates replace the whole document, so create and update share
// the same required fields; zero is a valid quantity and price.
type productRequest struct {
	Name     *string  `json:"name"`
	Quantity *int64   `json:"quantity"`
	Price    *float64 `json:"price"`
}

func (req *productRequest) requireFields(w http.ResponseWriter) bool {
	switch {
	case req.Name == nil:
		writeError(w, http.StatusBadRequest, "name is required")
	case req.Quantity == nil:
		writeError(w, http.StatusBadRequest, "quantity is required")
	case req.Price == nil:
		writeError(w, http.StatusBadRequest, "price is required")
	default:
		return true
	}
	return false
}

func (h *Products) ListHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.FindAll(r.Context())
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Products) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !req.requireFields(w) {
		return
	}

	created, err := h.repo.Save(r.Context(), domain.Product{
		Name:     *req.Name,
		Quantity: *req.Quantity,
		Price:    *req.Price,
	})
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Products) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Products) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !req.requireFields(w) {
		return
	}

	updated, err := h.repo.Save(r.Context(), domain.Product{
		ID:       id,
		Name:     *req.Name,
		Quantity: *req.Quantity,
		Price:    *req.Price,
	})
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Products) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.repo.DeleteByID(r.Context(), id); err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Produto deletado"})
}
