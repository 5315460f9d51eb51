package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/helpdesk-tools/inventory/internal/domain"
	"github.com/helpdesk-tools/inventory/internal/repository"
)

// TelSystems groups phone-system handlers, including channel assignment and
// the QR pairing flow the mobile agent drives.
type TelSystems struct {
	repo repository.TelSystemRepository
}

func NewTelSystems(repo repository.TelSystemRepository) *TelSystems {
	return &TelSystems{repo: repo}
}

// Routes mounts the tel-system endpoints on r.
func (h *TelSystems) Routes(r chi.Router) {
	r.Get("/", h.ListHandler)
	r.Post("/", h.CreateHandler)
	r.Post("/assign", h.AssignHandler)
	r.Post("/session", h.SessionHandler)
	r.Post("/pair", h.PairHandler)
	r.Post("/unpair", h.UnpairHandler)
	r.Put("/battery", h.BatteryHandler)
	r.Get("/{id}", h.GetHandler)
	r.Put("/{id}", h.UpdateHandler)
	r.Delete("/{id}", h.DeleteHandler)
}

type updateTelSystemRequest struct {
	Number     *string `json:"number"`
	Type       *string `json:"type"`
	Consultant *string `json:"consultant"`
}

type assignRequest struct {
	Number     string  `json:"number"`
	Type       string  `json:"type"`
	Consultant *string `json:"consultant"`
}

type numberRequest struct {
	Number string `json:"number"`
}

type pairRequest struct {
	Number      string `json:"number"`
	SessionCode string `json:"sessionCode"`
}

type batteryRequest struct {
	Number       string `json:"number"`
	BatteryLevel *int64 `json:"batteryLevel"`
}

type sessionResponse struct {
	SessionCode string `json:"sessionCode"`
	ExpiresAt   string `json:"expiresAt"`
}

func (h *TelSystems) ListHandler(w http.ResponseWriter, r *http.Request) {
	systems, err := h.repo.FindAll(r.Context())
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	if systems == nil {
		systems = []domain.TelSystem{}
	}
	writeJSON(w, http.StatusOK, systems)
}

func (h *TelSystems) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var ts domain.TelSystem
	if err := decodeBody(r, &ts); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ts.ID = 0

	created, err := h.repo.Save(r.Context(), ts)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *TelSystems) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tel system ID")
		return
	}

	ts, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (h *TelSystems) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tel system ID")
		return
	}

	var req updateTelSystemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ts, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}

	if req.Number != nil {
		ts.Number = *req.Number
	}
	if req.Type != nil {
		ts.Type = req.Type
	}
	if req.Consultant != nil {
		ts.Consultant = req.Consultant
	}

	updated, err := h.repo.Save(r.Context(), ts)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *TelSystems) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tel system ID")
		return
	}

	if err := h.repo.DeleteByID(r.Context(), id); err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Registro removido com sucesso"})
}

// AssignHandler creates or updates the (number, type) channel in one atomic
// store operation.
func (h *TelSystems) AssignHandler(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ts, err := h.repo.AssignByNumberType(r.Context(), req.Number, req.Type, req.Consultant)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

// SessionHandler issues a short-lived pairing session code for a number.
// The dashboard renders it as a QR code and polls the list until the phone
// reports in.
func (h *TelSystems) SessionHandler(w http.ResponseWriter, r *http.Request) {
	var req numberRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ts, err := h.repo.CreateSession(r.Context(), req.Number)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}

	resp := sessionResponse{}
	if ts.SessionCode != nil {
		resp.SessionCode = *ts.SessionCode
	}
	if ts.SessionExpiresAt != nil {
		resp.ExpiresAt = *ts.SessionExpiresAt
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *TelSystems) PairHandler(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.SessionCode) == "" {
		writeError(w, http.StatusBadRequest, "sessionCode is required")
		return
	}

	ts, err := h.repo.Pair(r.Context(), req.Number, req.SessionCode)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (h *TelSystems) UnpairHandler(w http.ResponseWriter, r *http.Request) {
	var req numberRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ts, err := h.repo.Unpair(r.Context(), req.Number)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (h *TelSystems) BatteryHandler(w http.ResponseWriter, r *http.Request) {
	var req batteryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.BatteryLevel == nil {
		writeError(w, http.StatusBadRequest, "batteryLevel is required")
		return
	}

	ts, err := h.repo.UpdateBattery(r.Context(), req.Number, *req.BatteryLevel)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}
