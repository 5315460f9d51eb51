package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helpdesk-tools/inventory/internal/domain"
	"github.com/helpdesk-tools/inventory/internal/repository"
)

// Chips groups SIM chip handlers for testability
type Chips struct {
	repo repository.ChipRepository
}

func NewChips(repo repository.ChipRepository) *Chips {
	return &Chips{repo: repo}
}

// Routes mounts the chip endpoints on r.
func (h *Chips) Routes(r chi.Router) {
	r.Get("/", h.ListHandler)
	r.Post("/", h.CreateHandler)
	r.Get("/{id}", h.GetHandler)
	r.Put("/{id}", h.UpdateHandler)
	r.Delete("/{id}", h.DeleteHandler)
}

type updateChipRequest struct {
	IP         *string `json:"ip"`
	Number     *string `json:"number"`
	Carrier    *string `json:"carrier"`
	Consultant *string `json:"consultant"`
	Status     *string `json:"status"`
}

func (h *Chips) ListHandler(w http.ResponseWriter, r *http.Request) {
	chips, err := h.repo.FindAll(r.Context())
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	if chips == nil {
		chips = []domain.Chip{}
	}
	writeJSON(w, http.StatusOK, chips)
}

func (h *Chips) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var chip domain.Chip
	if err := decodeBody(r, &chip); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	chip.ID = 0

	created, err := h.repo.Save(r.Context(), chip)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Chips) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid chip ID")
		return
	}

	chip, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chip)
}

func (h *Chips) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid chip ID")
		return
	}

	var req updateChipRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	chip, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}

	if req.IP != nil {
		chip.IP = *req.IP
	}
	if req.Number != nil {
		chip.Number = *req.Number
	}
	if req.Carrier != nil {
		chip.Carrier = *req.Carrier
	}
	if req.Consultant != nil {
		chip.Consultant = *req.Consultant
	}
	if req.Status != nil {
		chip.Status = *req.Status
	}

	updated, err := h.repo.Save(r.Context(), chip)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Chips) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid chip ID")
		return
	}

	if err := h.repo.DeleteByID(r.Context(), id); err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Chip removido com sucesso"})
}
