package api

import (
	"net/http"
	"strings"

	"github.com/helpdesk-tools/inventory/internal/wol"
)

type wolRequest struct {
	MAC       string `json:"mac"`
	Broadcast string `json:"broadcast"`
}

type wolResponse struct {
	OK      bool   `json:"ok"`
	MAC     string `json:"mac"`
	Address string `json:"address"`
}

// wakeOnLANHandler broadcasts a magic packet so the dashboard can power
// machines on without reaching their agent.
func (a *API) wakeOnLANHandler(w http.ResponseWriter, r *http.Request) {
	var req wolRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.MAC = strings.TrimSpace(req.MAC)
	if req.MAC == "" {
		writeError(w, http.StatusBadRequest, "mac is required")
		return
	}

	address, err := wol.Send(req.MAC, strings.TrimSpace(req.Broadcast))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, wolResponse{OK: true, MAC: req.MAC, Address: address})
}
