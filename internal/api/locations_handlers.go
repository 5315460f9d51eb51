package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helpdesk-tools/inventory/internal/domain"
	"github.com/helpdesk-tools/inventory/internal/repository"
)

// Locations groups location handlers for testability
type Locations struct {
	repo repository.LocationRepository
}

func NewLocations(repo repository.LocationRepository) *Locations {
	return &Locations{repo: repo}
}

// Routes mounts the location endpoints on r.
func (h *Locations) Routes(r chi.Router) {
	r.Get("/", h.ListHandler)
	r.Post("/", h.CreateHandler)
	r.Get("/{id}", h.GetHandler)
	r.Put("/{id}", h.UpdateHandler)
	r.Delete("/{id}", h.DeleteHandler)
}

type locationRequest struct {
	Name *string `json:"name"`
}

func (h *Locations) ListHandler(w http.ResponseWriter, r *http.Request) {
	locations, err := h.repo.FindAll(r.Context())
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	if locations == nil {
		locations = []domain.Location{}
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *Locations) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var location domain.Location
	if err := decodeBody(r, &location); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	location.ID = 0

	created, err := h.repo.Save(r.Context(), location)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Locations) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid location ID")
		return
	}

	location, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, location)
}

func (h *Locations) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid location ID")
		return
	}

	var req locationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	location, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}

	if req.Name != nil {
		location.Name = *req.Name
	}

	updated, err := h.repo.Save(r.Context(), location)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Locations) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid location ID")
		return
	}

	if err := h.repo.DeleteByID(r.Context(), id); err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Local removido com sucesso"})
}
