package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helpdesk-tools/inventory/internal/domain"
	"github.com/helpdesk-tools/inventory/internal/repository"
)

// Machines groups machine handlers for testability
type Machines struct {
	repo repository.MachineRepository
}

func NewMachines(repo repository.MachineRepository) *Machines {
	return &Machines{repo: repo}
}

// Routes mounts the machine endpoints on r.
func (h *Machines) Routes(r chi.Router) {
	r.Get("/", h.ListHandler)
	r.Post("/", h.CreateHandler)
	r.Get("/{id}", h.GetHandler)
	r.Put("/{id}", h.UpdateHandler)
	r.Delete("/{id}", h.DeleteHandler)
}

// updateMachineRequest carries a partial update; nil fields are left as-is,
// empty strings clear optional fields.
type updateMachineRequest struct {
	Name        *string `json:"name"`
	MachineID   *int64  `json:"machineID"`
	AgentURL    *string `json:"agentUrl"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
	Processor   *string `json:"processor"`
	RAM         *string `json:"ram"`
	Storage     *string `json:"storage"`
	Location    *string `json:"location"`
	User        *string `json:"user"`
	Description *string `json:"description"`
}

func (h *Machines) ListHandler(w http.ResponseWriter, r *http.Request) {
	machines, err := h.repo.FindAll(r.Context())
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	if machines == nil {
		machines = []domain.Machine{}
	}
	writeJSON(w, http.StatusOK, machines)
}

func (h *Machines) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var machine domain.Machine
	if err := decodeBody(r, &machine); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	machine.ID = 0

	created, err := h.repo.Save(r.Context(), machine)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Machines) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid machine ID")
		return
	}

	machine, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, machine)
}

func (h *Machines) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid machine ID")
		return
	}

	var req updateMachineRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	machine, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}

	if req.Name != nil {
		machine.Name = *req.Name
	}
	if req.MachineID != nil {
		machine.MachineID = *req.MachineID
	}
	if req.AgentURL != nil {
		machine.AgentURL = req.AgentURL
	}
	if req.Category != nil {
		machine.Category = *req.Category
	}
	if req.Status != nil {
		machine.Status = *req.Status
	}
	if req.Processor != nil {
		machine.Processor = req.Processor
	}
	if req.RAM != nil {
		machine.RAM = req.RAM
	}
	if req.Storage != nil {
		machine.Storage = req.Storage
	}
	if req.Location != nil {
		machine.Location = req.Location
	}
	if req.User != nil {
		machine.User = req.User
	}
	if req.Description != nil {
		machine.Description = req.Description
	}

	updated, err := h.repo.Save(r.Context(), machine)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Machines) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid machine ID")
		return
	}

	if err := h.repo.DeleteByID(r.Context(), id); err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Item removido com sucesso"})
}
