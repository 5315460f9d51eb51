package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/helpdesk-tools/inventory/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelSystems_CreateAndList(t *testing.T) {
	r := setupTestAPI(t, "TestTelSystems_CreateAndList")

	ts := domain.TelSystem{
		Number:     "+55 79 99999-0001",
		Type:       strp("Wtt1"),
		Consultant: strp("maria"),
	}
	w := postJSON(t, r, "/api/telsystems", ts)
	assert.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest("GET", "/api/telsystems", nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusOK, w2.Code)

	var response []domain.TelSystem
	require.NoError(t, json.NewDecoder(w2.Body).Decode(&response))
	require.Len(t, response, 1)
	assert.Equal(t, "+55 79 99999-0001", response[0].Number)
}

func TestTelSystems_Create_DuplicateChannel(t *testing.T) {
	r := setupTestAPI(t, "TestTelSystems_Create_DuplicateChannel")

	ts := domain.TelSystem{Number: "+55 79 99999-0001", Type: strp("Wtt1")}
	w := postJSON(t, r, "/api/telsystems", ts)
	assert.Equal(t, http.StatusCreated, w.Code)

	w2 := postJSON(t, r, "/api/telsystems", ts)
	assert.Equal(t, http.StatusConflict, w2.Code)
}

func TestTelSystems_Create_InvalidType(t *testing.T) {
	r := setupTestAPI(t, "TestTelSystems_Create_InvalidType")

	ts := domain.TelSystem{Number: "+55 79 99999-0001", Type: strp("Telegram")}
	w := postJSON(t, r, "/api/telsystems", ts)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTelSystems_Assign_UpsertsChannel(t *testing.T) {
	r := setupTestAPI(t, "TestTelSystems_Assign_UpsertsChannel")

	body := assignRequest{Number: "+55 79 99999-0001", Type: "Wtt1", Consultant: strp("maria")}
	w := postJSON(t, r, "/api/telsystems/assign", body)
	assert.Equal(t, http.StatusOK, w.Code)

	var first domain.TelSystem
	require.NoError(t, json.NewDecoder(w.Body).Decode(&first))
	require.NotNil(t, first.Consultant)
	assert.Equal(t, "maria", *first.Consultant)

	// Re-assigning the same channel updates in place rather than duplicating.
	body.Consultant = strp("joão")
	w2 := postJSON(t, r, "/api/telsystems/assign", body)
	assert.Equal(t, http.StatusOK, w2.Code)

	var second domain.TelSystem
	require.NoError(t, json.NewDecoder(w2.Body).Decode(&second))
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Consultant)
	assert.Equal(t, "joão", *second.Consultant)
}

func TestTelSystems_PairingFlow(t *testing.T) {
	r := setupTestAPI(t, "TestTelSystems_PairingFlow")

	number := "+55 79 99999-0001"

	w := postJSON(t, r, "/api/telsystems/session", numberRequest{Number: number})
	require.Equal(t, http.StatusCreated, w.Code)

	var session sessionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&session))
	require.NotEmpty(t, session.SessionCode)
	require.NotEmpty(t, session.ExpiresAt)

	// Wrong code never pairs.
	w2 := postJSON(t, r, "/api/telsystems/pair", pairRequest{Number: number, SessionCode: "wrong"})
	assert.Equal(t, http.StatusBadRequest, w2.Code)

	// Right code pairs and consumes the session.
	w3 := postJSON(t, r, "/api/telsystems/pair", pairRequest{Number: number, SessionCode: session.SessionCode})
	assert.Equal(t, http.StatusOK, w3.Code)

	var paired domain.TelSystem
	require.NoError(t, json.NewDecoder(w3.Body).Decode(&paired))
	assert.NotNil(t, paired.PairedAt)
	assert.Nil(t, paired.SessionCode)

	// Replaying the consumed code fails.
	w4 := postJSON(t, r, "/api/telsystems/pair", pairRequest{Number: number, SessionCode: session.SessionCode})
	assert.Equal(t, http.StatusBadRequest, w4.Code)
}

func TestTelSystems_Pair_UnknownNumber(t *testing.T) {
	r := setupTestAPI(t, "TestTelSystems_Pair_UnknownNumber")

	w := postJSON(t, r, "/api/telsystems/pair", pairRequest{Number: "+55 79 0000-0000", SessionCode: "abc"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTelSystems_Pair_MissingCode(t *testing.T) {
	r := setupTestAPI(t, "TestTelSystems_Pair_MissingCode")

	w := postJSON(t, r, "/api/telsystems/pair", pairRequest{Number: "+55 79 99999-0001"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "sessionCode is required")
}

func TestTelSystems_Unpair(t *testing.T) {
	r := setupTestAPI(t, "TestTelSystems_Unpair")

	number := "+55 79 99999-0001"

	w := postJSON(t, r, "/api/telsystems/session", numberRequest{Number: number})
	require.Equal(t, http.StatusCreated, w.Code)

	var session sessionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&session))

	w2 := postJSON(t, r, "/api/telsystems/pair", pairRequest{Number: number, SessionCode: session.SessionCode})
	require.Equal(t, http.StatusOK, w2.Code)

	w3 := postJSON(t, r, "/api/telsystems/unpair", numberRequest{Number: number})
	assert.Equal(t, http.StatusOK, w3.Code)

	var unpaired domain.TelSystem
	require.NoError(t, json.NewDecoder(w3.Body).Decode(&unpaired))
	assert.Nil(t, unpaired.PairedAt)
	assert.Nil(t, unpaired.SessionCode)
}

func TestTelSystems_Battery(t *testing.T) {
	r := setupTestAPI(t, "TestTelSystems_Battery")

	number := "+55 79 99999-0001"
	level := int64(87)

	w := putJSON(t, r, "/api/telsystems/battery", batteryRequest{Number: number, BatteryLevel: &level})
	assert.Equal(t, http.StatusOK, w.Code)

	var ts domain.TelSystem
	require.NoError(t, json.NewDecoder(w.Body).Decode(&ts))
	require.NotNil(t, ts.BatteryLevel)
	assert.Equal(t, int64(87), *ts.BatteryLevel)
	assert.NotNil(t, ts.BatteryUpdatedAt)
}

func TestTelSystems_Battery_OutOfRange(t *testing.T) {
	r := setupTestAPI(t, "TestTelSystems_Battery_OutOfRange")

	level := int64(150)
	w := putJSON(t, r, "/api/telsystems/battery", batteryRequest{Number: "+55 79 99999-0001", BatteryLevel: &level})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTelSystems_Battery_MissingLevel(t *testing.T) {
	r := setupTestAPI(t, "TestTelSystems_Battery_MissingLevel")

	w := putJSON(t, r, "/api/telsystems/battery", batteryRequest{Number: "+55 79 99999-0001"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "batteryLevel is required")
}
