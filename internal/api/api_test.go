package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/helpdesk-tools/inventory/internal/domain"
	"github.com/helpdesk-tools/inventory/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestAPI(t *testing.T, testName string) *chi.Mux {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, testName)
	t.Cleanup(cleanup)

	r := chi.NewRouter()
	api := NewAPI(db)
	api.RegisterRoutes(r)

	return r
}

func postJSON(t *testing.T, r *chi.Mux, path string, payload any) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func putJSON(t *testing.T, r *chi.Mux, path string, payload any) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func strp(s string) *string { return &s }

func testMachineBody(machineID int64) domain.Machine {
	return domain.Machine{
		Name:      "PC Suporte",
		MachineID: machineID,
		Category:  domain.CategoryMachine,
		Status:    domain.StatusAvailable,
	}
}

func TestHealthRoot(t *testing.T) {
	r := setupTestAPI(t, "TestHealthRoot")

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Inventory API is running\n", w.Body.String())
}

func TestListMachines_Empty(t *testing.T) {
	r := setupTestAPI(t, "TestListMachines_Empty")

	req := httptest.NewRequest("GET", "/api/machines", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.Machine
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Len(t, response, 0)
}

func TestCreateMachine(t *testing.T) {
	r := setupTestAPI(t, "TestCreateMachine")

	w := postJSON(t, r, "/api/machines", testMachineBody(1))
	assert.Equal(t, http.StatusCreated, w.Code)

	var response domain.Machine
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotZero(t, response.ID)
	assert.Equal(t, "PC Suporte", response.Name)
	assert.Equal(t, int64(1), response.MachineID)
	assert.Equal(t, domain.CategoryMachine, response.Category)
}

func TestCreateMachine_InvalidJSON(t *testing.T) {
	r := setupTestAPI(t, "TestCreateMachine_InvalidJSON")

	req := httptest.NewRequest("POST", "/api/machines", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateMachine_MissingFields(t *testing.T) {
	r := setupTestAPI(t, "TestCreateMachine_MissingFields")

	w := postJSON(t, r, "/api/machines", domain.Machine{Name: "sem número"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "machineID")
}

func TestCreateMachine_DuplicateMachineID(t *testing.T) {
	r := setupTestAPI(t, "TestCreateMachine_DuplicateMachineID")

	w := postJSON(t, r, "/api/machines", testMachineBody(7))
	assert.Equal(t, http.StatusCreated, w.Code)

	w2 := postJSON(t, r, "/api/machines", testMachineBody(7))
	assert.Equal(t, http.StatusConflict, w2.Code)
}

func TestGetMachine_NotFound(t *testing.T) {
	r := setupTestAPI(t, "TestGetMachine_NotFound")

	req := httptest.NewRequest("GET", "/api/machines/99999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMachine_InvalidID(t *testing.T) {
	r := setupTestAPI(t, "TestGetMachine_InvalidID")

	req := httptest.NewRequest("GET", "/api/machines/invalid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMachine_PartialUpdate(t *testing.T) {
	r := setupTestAPI(t, "TestUpdateMachine_PartialUpdate")

	body := testMachineBody(3)
	body.User = strp("joão")
	w := postJSON(t, r, "/api/machines", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Machine
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

	// Only status changes; the assigned user must survive untouched.
	update, err := json.Marshal(map[string]string{"status": domain.StatusInUse})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/api/machines/"+strconv.FormatInt(created.ID, 10), bytes.NewReader(update))
	req.Header.Set("Content-Type", "application/json")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusOK, w2.Code)

	var updated domain.Machine
	require.NoError(t, json.NewDecoder(w2.Body).Decode(&updated))
	assert.Equal(t, domain.StatusInUse, updated.Status)
	require.NotNil(t, updated.User)
	assert.Equal(t, "joão", *updated.User)
}

func TestUpdateMachine_ClearOptionalField(t *testing.T) {
	r := setupTestAPI(t, "TestUpdateMachine_ClearOptionalField")

	body := testMachineBody(4)
	body.Description = strp("velha")
	w := postJSON(t, r, "/api/machines", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Machine
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

	update, err := json.Marshal(map[string]string{"description": ""})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/api/machines/"+strconv.FormatInt(created.ID, 10), bytes.NewReader(update))
	req.Header.Set("Content-Type", "application/json")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusOK, w2.Code)

	var updated domain.Machine
	require.NoError(t, json.NewDecoder(w2.Body).Decode(&updated))
	assert.Nil(t, updated.Description)
}

func TestDeleteMachine(t *testing.T) {
	r := setupTestAPI(t, "TestDeleteMachine")

	w := postJSON(t, r, "/api/machines", testMachineBody(5))
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Machine
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

	req := httptest.NewRequest("DELETE", "/api/machines/"+strconv.FormatInt(created.ID, 10), nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "Item removido com sucesso")

	req2 := httptest.NewRequest("GET", "/api/machines/"+strconv.FormatInt(created.ID, 10), nil)
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req2)
	assert.Equal(t, http.StatusNotFound, w3.Code)
}

func TestDeleteMachine_NotFound(t *testing.T) {
	r := setupTestAPI(t, "TestDeleteMachine_NotFound")

	req := httptest.NewRequest("DELETE", "/api/machines/99999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPartsAlias_ServesMachines(t *testing.T) {
	r := setupTestAPI(t, "TestPartsAlias_ServesMachines")

	w := postJSON(t, r, "/api/parts", testMachineBody(9))
	assert.Equal(t, http.StatusCreated, w.Code)

	// Created through the legacy alias, visible through the canonical path.
	req := httptest.NewRequest("GET", "/api/machines", nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusOK, w2.Code)

	var response []domain.Machine
	require.NoError(t, json.NewDecoder(w2.Body).Decode(&response))
	require.Len(t, response, 1)
	assert.Equal(t, int64(9), response[0].MachineID)
}

func TestCreateChip(t *testing.T) {
	r := setupTestAPI(t, "TestCreateChip")

	chip := domain.Chip{
		IP:         "42",
		Number:     "+55 79 99999-0001",
		Carrier:    "Vivo",
		Consultant: "maria",
		Status:     "Ativo",
	}
	w := postJSON(t, r, "/api/chips", chip)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response domain.Chip
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotZero(t, response.ID)
	assert.Equal(t, "42", response.IP)
}

func TestCreateChip_InvalidCarrier(t *testing.T) {
	r := setupTestAPI(t, "TestCreateChip_InvalidCarrier")

	chip := domain.Chip{
		IP:         "42",
		Number:     "+55 79 99999-0001",
		Carrier:    "Nextel",
		Consultant: "maria",
		Status:     "Ativo",
	}
	w := postJSON(t, r, "/api/chips", chip)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateLocation_Duplicate(t *testing.T) {
	r := setupTestAPI(t, "TestCreateLocation_Duplicate")

	w := postJSON(t, r, "/api/locations", domain.Location{Name: "COMERCIAL"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w2 := postJSON(t, r, "/api/locations", domain.Location{Name: "COMERCIAL"})
	assert.Equal(t, http.StatusConflict, w2.Code)
}

func TestListLocations_SortedByName(t *testing.T) {
	r := setupTestAPI(t, "TestListLocations_SortedByName")

	for _, name := range []string{"RH", "COMERCIAL", "FINANCEIRO"} {
		w := postJSON(t, r, "/api/locations", domain.Location{Name: name})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest("GET", "/api/locations", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.Location
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response, 3)
	assert.Equal(t, "COMERCIAL", response[0].Name)
	assert.Equal(t, "FINANCEIRO", response[1].Name)
	assert.Equal(t, "RH", response[2].Name)
}

func TestCreateUser_NormalizesEmail(t *testing.T) {
	r := setupTestAPI(t, "TestCreateUser_NormalizesEmail")

	w := postJSON(t, r, "/api/users", domain.User{Name: "maria", Email: strp(" Maria@Example.COM ")})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response domain.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.NotNil(t, response.Email)
	assert.Equal(t, "maria@example.com", *response.Email)
}

func TestMigrateUsersFromMachines(t *testing.T) {
	r := setupTestAPI(t, "TestMigrateUsersFromMachines")

	first := testMachineBody(1)
	first.User = strp("joão")
	second := testMachineBody(2)
	second.User = strp(" maria ")
	third := testMachineBody(3)
	third.User = strp("joão")
	for _, m := range []domain.Machine{first, second, third} {
		w := postJSON(t, r, "/api/machines", m)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest("POST", "/api/users/migrate-from-machines", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response migrationResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.OK)
	assert.Equal(t, 2, response.Inserted)
	assert.Equal(t, 0, response.Matched)

	// Re-running matches everything, inserts nothing.
	req2 := httptest.NewRequest("POST", "/api/users/migrate-from-machines", nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)

	assert.Equal(t, http.StatusOK, w2.Code)
	require.NoError(t, json.NewDecoder(w2.Body).Decode(&response))
	assert.Equal(t, 0, response.Inserted)
	assert.Equal(t, 2, response.Matched)
}

func TestWakeOnLAN_MissingMAC(t *testing.T) {
	r := setupTestAPI(t, "TestWakeOnLAN_MissingMAC")

	w := postJSON(t, r, "/api/wol", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "mac is required")
}

func TestWakeOnLAN_InvalidMAC(t *testing.T) {
	r := setupTestAPI(t, "TestWakeOnLAN_InvalidMAC")

	w := postJSON(t, r, "/api/wol", map[string]string{"mac": "not-a-mac"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWakeOnLAN_SendsToLoopback(t *testing.T) {
	r := setupTestAPI(t, "TestWakeOnLAN_SendsToLoopback")

	w := postJSON(t, r, "/api/wol", map[string]string{
		"mac":       "AA:BB:CC:DD:EE:FF",
		"broadcast": "127.0.0.1:9999",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response wolResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.OK)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", response.MAC)
	assert.Equal(t, "127.0.0.1:9999", response.Address)
}
